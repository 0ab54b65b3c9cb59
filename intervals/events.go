package intervals

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Event represents a calendar entry: a planned workout, a race, or a note.
// StartDateLocal is the defining field; everything else is optional.
type Event struct {
	ID             int     `json:"id,omitempty"`
	StartDateLocal string  `json:"start_date_local"`
	EndDateLocal   string  `json:"end_date_local,omitempty"`
	Name           string  `json:"name,omitempty"`
	Description    string  `json:"description,omitempty"`
	Category       string  `json:"category,omitempty"`
	Type           string  `json:"type,omitempty"`
	Color          string  `json:"color,omitempty"`
	MovingTime     int     `json:"moving_time,omitempty"`
	Distance       float64 `json:"distance,omitempty"`
	TrainingLoad   int     `json:"icu_training_load,omitempty"`
}

// Event categories recognized by the calendar.
const (
	EventCategoryWorkout = "WORKOUT"
	EventCategoryRaceA   = "RACE_A"
	EventCategoryRaceB   = "RACE_B"
	EventCategoryRaceC   = "RACE_C"
	EventCategoryNote    = "NOTE"
)

// EventService handles communication with the calendar event methods.
type EventService struct {
	client  *Client
	athlete string
}

// ForAthlete returns a copy of the service bound to the given athlete id
// instead of the client default.
func (s *EventService) ForAthlete(id string) *EventService {
	return &EventService{client: s.client, athlete: id}
}

func (s *EventService) athleteID() string {
	if s.athlete != "" {
		return s.athlete
	}
	return s.client.athleteID
}

func (s *EventService) basePath() string {
	return fmt.Sprintf("/athlete/%s/events", s.athleteID())
}

// List fetches calendar events, filtered by the given options.
func (s *EventService) List(ctx context.Context, opts *ListOptions) ([]Event, error) {
	var events []Event
	if err := s.client.call(ctx, http.MethodGet, s.basePath(), opts.values(), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Get fetches a single calendar event by its id.
func (s *EventService) Get(ctx context.Context, eventID int) (*Event, error) {
	var event Event
	path := fmt.Sprintf("%s/%d", s.basePath(), eventID)
	if err := s.client.call(ctx, http.MethodGet, path, nil, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create adds a calendar event and returns it with its server-assigned id.
func (s *EventService) Create(ctx context.Context, event *Event) (*Event, error) {
	var created Event
	if err := s.client.call(ctx, http.MethodPost, s.basePath(), nil, event, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update modifies a calendar event and returns the updated event.
func (s *EventService) Update(ctx context.Context, eventID int, event *Event) (*Event, error) {
	var updated Event
	path := fmt.Sprintf("%s/%d", s.basePath(), eventID)
	if err := s.client.call(ctx, http.MethodPut, path, nil, event, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a calendar event.
func (s *EventService) Delete(ctx context.Context, eventID int) error {
	path := fmt.Sprintf("%s/%d", s.basePath(), eventID)
	return s.client.call(ctx, http.MethodDelete, path, nil, nil, nil)
}

// BulkDelete removes the given events in one call.
func (s *EventService) BulkDelete(ctx context.Context, eventIDs []int) error {
	path := s.basePath() + "/bulk-delete"
	return s.client.call(ctx, http.MethodPut, path, nil, eventIDs, nil)
}

// DeleteRange removes all events between oldest and newest (inclusive
// local dates). An optional category restricts the deletion.
func (s *EventService) DeleteRange(ctx context.Context, oldest, newest, category string) error {
	q := url.Values{}
	q.Set("oldest", oldest)
	q.Set("newest", newest)
	if category != "" {
		q.Set("category", category)
	}
	return s.client.call(ctx, http.MethodDelete, s.basePath(), q, nil, nil)
}

// UpdateRange applies the set fields of event to all events between oldest
// and newest (inclusive local dates) and returns the updated events.
func (s *EventService) UpdateRange(ctx context.Context, oldest, newest string, event *Event) ([]Event, error) {
	q := url.Values{}
	q.Set("oldest", oldest)
	q.Set("newest", newest)

	var updated []Event
	if err := s.client.call(ctx, http.MethodPut, s.basePath(), q, event, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}
