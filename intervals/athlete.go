package intervals

import (
	"context"
	"fmt"
	"net/http"
)

// Athlete represents the account profile all other resources are scoped
// under. Fields mirror the remote JSON; the server owns validation.
type Athlete struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name,omitempty"`
	Email     string  `json:"email,omitempty"`
	Sex       string  `json:"sex,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Country   string  `json:"country,omitempty"`
	Timezone  string  `json:"timezone,omitempty"`
	Bio       string  `json:"bio,omitempty"`
	Website   string  `json:"website,omitempty"`
	Weight    float64 `json:"icu_weight,omitempty"`
	RestingHR int     `json:"icu_resting_hr,omitempty"`
}

// SportSettings holds the athlete's per-sport configuration (zones,
// thresholds, defaults).
type SportSettings struct {
	ID           int      `json:"id,omitempty"`
	Types        []string `json:"types,omitempty"`
	FTP          int      `json:"ftp,omitempty"`
	IndoorFTP    int      `json:"indoor_ftp,omitempty"`
	LTHR         int      `json:"lthr,omitempty"`
	MaxHR        int      `json:"max_hr,omitempty"`
	WarmupTime   int      `json:"warmup_time,omitempty"`
	CooldownTime int      `json:"cooldown_time,omitempty"`
}

// AthleteService handles communication with the athlete profile methods.
type AthleteService struct {
	client  *Client
	athlete string
}

// ForAthlete returns a copy of the service bound to the given athlete id
// instead of the client default.
func (s *AthleteService) ForAthlete(id string) *AthleteService {
	return &AthleteService{client: s.client, athlete: id}
}

func (s *AthleteService) athleteID() string {
	if s.athlete != "" {
		return s.athlete
	}
	return s.client.athleteID
}

// Get fetches the athlete profile.
func (s *AthleteService) Get(ctx context.Context) (*Athlete, error) {
	var athlete Athlete
	path := fmt.Sprintf("/athlete/%s", s.athleteID())
	if err := s.client.call(ctx, http.MethodGet, path, nil, nil, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// Update modifies the athlete profile and returns the updated profile.
func (s *AthleteService) Update(ctx context.Context, athlete *Athlete) (*Athlete, error) {
	var updated Athlete
	path := fmt.Sprintf("/athlete/%s", s.athleteID())
	if err := s.client.call(ctx, http.MethodPut, path, nil, athlete, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SportSettings fetches the athlete's per-sport settings.
func (s *AthleteService) SportSettings(ctx context.Context) ([]SportSettings, error) {
	var settings []SportSettings
	path := fmt.Sprintf("/athlete/%s/sport-settings", s.athleteID())
	if err := s.client.call(ctx, http.MethodGet, path, nil, nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}
