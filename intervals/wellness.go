package intervals

import (
	"context"
	"fmt"
	"net/http"
)

// Wellness is a daily health and recovery record keyed by its local date
// ("2024-01-20"), which the API uses as the entry id.
type Wellness struct {
	ID           string  `json:"id"`
	Weight       float64 `json:"weight,omitempty"`
	RestingHR    int     `json:"restingHR,omitempty"`
	HRV          float64 `json:"hrv,omitempty"`
	HRVSDNN      float64 `json:"hrvSDNN,omitempty"`
	SleepSecs    int     `json:"sleepSecs,omitempty"`
	SleepScore   float64 `json:"sleepScore,omitempty"`
	SleepQuality int     `json:"sleepQuality,omitempty"`
	Soreness     int     `json:"soreness,omitempty"`
	Fatigue      int     `json:"fatigue,omitempty"`
	Stress       int     `json:"stress,omitempty"`
	Mood         int     `json:"mood,omitempty"`
	Motivation   int     `json:"motivation,omitempty"`
	SpO2         float64 `json:"spO2,omitempty"`
	Systolic     int     `json:"systolic,omitempty"`
	Diastolic    int     `json:"diastolic,omitempty"`
	Steps        int     `json:"steps,omitempty"`
	KcalConsumed int     `json:"kcalConsumed,omitempty"`
	Comments     string  `json:"comments,omitempty"`
}

// WellnessService handles communication with the daily wellness methods.
type WellnessService struct {
	client  *Client
	athlete string
}

// ForAthlete returns a copy of the service bound to the given athlete id
// instead of the client default.
func (s *WellnessService) ForAthlete(id string) *WellnessService {
	return &WellnessService{client: s.client, athlete: id}
}

func (s *WellnessService) athleteID() string {
	if s.athlete != "" {
		return s.athlete
	}
	return s.client.athleteID
}

func (s *WellnessService) basePath() string {
	return fmt.Sprintf("/athlete/%s/wellness", s.athleteID())
}

// List fetches wellness entries, filtered by the given options.
func (s *WellnessService) List(ctx context.Context, opts *ListOptions) ([]Wellness, error) {
	var entries []Wellness
	if err := s.client.call(ctx, http.MethodGet, s.basePath(), opts.values(), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Create records a wellness entry and returns the stored entry.
func (s *WellnessService) Create(ctx context.Context, entry *Wellness) (*Wellness, error) {
	var created Wellness
	if err := s.client.call(ctx, http.MethodPost, s.basePath(), nil, entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update modifies the wellness entry for the given local date and returns
// the updated entry.
func (s *WellnessService) Update(ctx context.Context, date string, entry *Wellness) (*Wellness, error) {
	var updated Wellness
	path := fmt.Sprintf("%s/%s", s.basePath(), date)
	if err := s.client.call(ctx, http.MethodPut, path, nil, entry, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the wellness entry for the given local date.
func (s *WellnessService) Delete(ctx context.Context, date string) error {
	path := fmt.Sprintf("%s/%s", s.basePath(), date)
	return s.client.call(ctx, http.MethodDelete, path, nil, nil, nil)
}

// BulkUpdate upserts multiple wellness entries in one call.
func (s *WellnessService) BulkUpdate(ctx context.Context, entries []Wellness) error {
	path := fmt.Sprintf("/athlete/%s/wellness-bulk", s.athleteID())
	return s.client.call(ctx, http.MethodPut, path, nil, entries, nil)
}
