package intervals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// Activity is a recorded, completed training session with measured metrics.
type Activity struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name,omitempty"`
	Type           string  `json:"type,omitempty"`
	StartDateLocal string  `json:"start_date_local,omitempty"`
	MovingTime     int     `json:"moving_time,omitempty"`
	ElapsedTime    int     `json:"elapsed_time,omitempty"`
	Distance       float64 `json:"distance,omitempty"`
	ElevationGain  float64 `json:"total_elevation_gain,omitempty"`
	AverageHR      int     `json:"average_heartrate,omitempty"`
	MaxHR          int     `json:"max_heartrate,omitempty"`
	AverageWatts   int     `json:"average_watts,omitempty"`
	Calories       int     `json:"calories,omitempty"`
	TrainingLoad   int     `json:"icu_training_load,omitempty"`
	Description    string  `json:"description,omitempty"`
}

// Stream is one time-series channel of an activity (heart rate, watts,
// latlng, ...). Data stays raw JSON since the element shape depends on the
// stream type.
type Stream struct {
	Type string          `json:"type"`
	Name string          `json:"name,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Interval is one detected or manually created interval within an activity.
type Interval struct {
	ID          int     `json:"id,omitempty"`
	Type        string  `json:"type,omitempty"`
	Label       string  `json:"label,omitempty"`
	StartIndex  int     `json:"start_index,omitempty"`
	EndIndex    int     `json:"end_index,omitempty"`
	MovingTime  int     `json:"moving_time,omitempty"`
	ElapsedTime int     `json:"elapsed_time,omitempty"`
	Distance    float64 `json:"distance,omitempty"`
	AverageHR   int     `json:"average_heartrate,omitempty"`
	MaxHR       int     `json:"max_heartrate,omitempty"`
	AvgWatts    int     `json:"average_watts,omitempty"`
	MaxWatts    int     `json:"max_watts,omitempty"`
}

// ActivityIntervals is the interval analysis of one activity: the flat
// interval list plus any interval groups.
type ActivityIntervals struct {
	ID        string          `json:"id,omitempty"`
	Intervals []Interval      `json:"icu_intervals,omitempty"`
	Groups    json.RawMessage `json:"icu_groups,omitempty"`
}

// SplitIntervalRequest describes where to split an existing interval,
// either at an absolute time offset (seconds) or a stream index.
type SplitIntervalRequest struct {
	IntervalID int `json:"interval_id,omitempty"`
	Time       int `json:"time,omitempty"`
	Index      int `json:"index,omitempty"`
}

// ActivityService handles communication with the recorded activity methods.
type ActivityService struct {
	client  *Client
	athlete string
}

// ForAthlete returns a copy of the service bound to the given athlete id
// instead of the client default. Only the athlete-scoped list/get/update
// paths use the athlete id; the /activity/{id} sub-resources do not.
func (s *ActivityService) ForAthlete(id string) *ActivityService {
	return &ActivityService{client: s.client, athlete: id}
}

func (s *ActivityService) athleteID() string {
	if s.athlete != "" {
		return s.athlete
	}
	return s.client.athleteID
}

// List fetches the athlete's recorded activities, filtered by the given
// options.
func (s *ActivityService) List(ctx context.Context, opts *ListOptions) ([]Activity, error) {
	var activities []Activity
	path := fmt.Sprintf("/athlete/%s/activities", s.athleteID())
	if err := s.client.call(ctx, http.MethodGet, path, opts.values(), nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// Get fetches a single activity by its id.
func (s *ActivityService) Get(ctx context.Context, activityID string) (*Activity, error) {
	var activity Activity
	path := fmt.Sprintf("/athlete/%s/activities/%s", s.athleteID(), activityID)
	if err := s.client.call(ctx, http.MethodGet, path, nil, nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// Update modifies an activity and returns the updated activity.
func (s *ActivityService) Update(ctx context.Context, activityID string, activity *Activity) (*Activity, error) {
	var updated Activity
	path := fmt.Sprintf("/athlete/%s/activities/%s", s.athleteID(), activityID)
	if err := s.client.call(ctx, http.MethodPut, path, nil, activity, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an activity.
func (s *ActivityService) Delete(ctx context.Context, activityID string) error {
	path := fmt.Sprintf("/athlete/%s/activities/%s", s.athleteID(), activityID)
	return s.client.call(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Streams fetches the activity's time-series channels. types restricts the
// channels returned; nil fetches all of them.
func (s *ActivityService) Streams(ctx context.Context, activityID string, types []string) ([]Stream, error) {
	q := url.Values{}
	if len(types) > 0 {
		q.Set("types", strings.Join(types, ","))
	}

	var streams []Stream
	path := fmt.Sprintf("/activity/%s/streams", activityID)
	if err := s.client.call(ctx, http.MethodGet, path, q, nil, &streams); err != nil {
		return nil, err
	}
	return streams, nil
}

// UpdateStreams replaces custom stream channels on the activity and
// returns the stored streams.
func (s *ActivityService) UpdateStreams(ctx context.Context, activityID string, streams []Stream) ([]Stream, error) {
	var updated []Stream
	path := fmt.Sprintf("/activity/%s/streams", activityID)
	if err := s.client.call(ctx, http.MethodPut, path, nil, streams, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// StreamsCSV fetches the activity's streams as raw CSV.
func (s *ActivityService) StreamsCSV(ctx context.Context, activityID string) ([]byte, error) {
	path := fmt.Sprintf("/activity/%s/streams.csv", activityID)
	return s.client.callRaw(ctx, http.MethodGet, path, nil, nil, "")
}

// UploadStreamsCSV replaces the activity's streams from a CSV document,
// sent as a multipart form file.
func (s *ActivityService) UploadStreamsCSV(ctx context.Context, activityID string, csv []byte) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "streams.csv")
	if err != nil {
		return err
	}
	if _, err := fw.Write(csv); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	path := fmt.Sprintf("/activity/%s/streams.csv", activityID)
	_, err = s.client.callRaw(ctx, http.MethodPut, path, nil, &buf, mw.FormDataContentType())
	return err
}

// Intervals fetches the interval analysis of an activity.
func (s *ActivityService) Intervals(ctx context.Context, activityID string) (*ActivityIntervals, error) {
	var result ActivityIntervals
	path := fmt.Sprintf("/activity/%s/intervals", activityID)
	if err := s.client.call(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateIntervals replaces the activity's intervals and returns the new
// analysis.
func (s *ActivityService) UpdateIntervals(ctx context.Context, activityID string, intervals []Interval) (*ActivityIntervals, error) {
	var result ActivityIntervals
	path := fmt.Sprintf("/activity/%s/intervals", activityID)
	if err := s.client.call(ctx, http.MethodPut, path, nil, intervals, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateInterval modifies a single interval and returns the updated
// interval.
func (s *ActivityService) UpdateInterval(ctx context.Context, activityID string, intervalID int, interval *Interval) (*Interval, error) {
	var updated Interval
	path := fmt.Sprintf("/activity/%s/intervals/%d", activityID, intervalID)
	if err := s.client.call(ctx, http.MethodPut, path, nil, interval, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteIntervals removes the given intervals from the activity.
func (s *ActivityService) DeleteIntervals(ctx context.Context, activityID string, intervalIDs []int) error {
	body := struct {
		IDs []int `json:"ids"`
	}{IDs: intervalIDs}

	path := fmt.Sprintf("/activity/%s/delete-intervals", activityID)
	return s.client.call(ctx, http.MethodPut, path, nil, body, nil)
}

// SplitInterval splits an existing interval at the requested point and
// returns the resulting analysis.
func (s *ActivityService) SplitInterval(ctx context.Context, activityID string, req *SplitIntervalRequest) (*ActivityIntervals, error) {
	var result ActivityIntervals
	path := fmt.Sprintf("/activity/%s/split-interval", activityID)
	if err := s.client.call(ctx, http.MethodPut, path, nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
