package intervals

import (
	"context"
	"fmt"
	"net/http"
)

// Workout is a planned training session definition stored in the athlete's
// workout library.
type Workout struct {
	ID           int     `json:"id,omitempty"`
	FolderID     int     `json:"folder_id,omitempty"`
	Day          int     `json:"day,omitempty"`
	Name         string  `json:"name,omitempty"`
	Description  string  `json:"description,omitempty"`
	Type         string  `json:"type,omitempty"`
	Indoor       bool    `json:"indoor,omitempty"`
	MovingTime   int     `json:"moving_time,omitempty"`
	Distance     float64 `json:"distance,omitempty"`
	TrainingLoad int     `json:"icu_training_load,omitempty"`
}

// WorkoutService handles communication with the workout library methods.
type WorkoutService struct {
	client  *Client
	athlete string
}

// ForAthlete returns a copy of the service bound to the given athlete id
// instead of the client default.
func (s *WorkoutService) ForAthlete(id string) *WorkoutService {
	return &WorkoutService{client: s.client, athlete: id}
}

func (s *WorkoutService) athleteID() string {
	if s.athlete != "" {
		return s.athlete
	}
	return s.client.athleteID
}

func (s *WorkoutService) basePath() string {
	return fmt.Sprintf("/athlete/%s/workouts", s.athleteID())
}

// List fetches the athlete's workout library.
func (s *WorkoutService) List(ctx context.Context, opts *ListOptions) ([]Workout, error) {
	var workouts []Workout
	if err := s.client.call(ctx, http.MethodGet, s.basePath(), opts.values(), nil, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Get fetches a single workout by its id.
func (s *WorkoutService) Get(ctx context.Context, workoutID int) (*Workout, error) {
	var workout Workout
	path := fmt.Sprintf("%s/%d", s.basePath(), workoutID)
	if err := s.client.call(ctx, http.MethodGet, path, nil, nil, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

// Create adds a workout to the library and returns it with its
// server-assigned id.
func (s *WorkoutService) Create(ctx context.Context, workout *Workout) (*Workout, error) {
	var created Workout
	if err := s.client.call(ctx, http.MethodPost, s.basePath(), nil, workout, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update modifies a workout and returns the updated workout.
func (s *WorkoutService) Update(ctx context.Context, workoutID int, workout *Workout) (*Workout, error) {
	var updated Workout
	path := fmt.Sprintf("%s/%d", s.basePath(), workoutID)
	if err := s.client.call(ctx, http.MethodPut, path, nil, workout, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a workout from the library.
func (s *WorkoutService) Delete(ctx context.Context, workoutID int) error {
	path := fmt.Sprintf("%s/%d", s.basePath(), workoutID)
	return s.client.call(ctx, http.MethodDelete, path, nil, nil, nil)
}
