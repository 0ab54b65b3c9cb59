package intervals

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newMockServer creates an httptest.Server configured to respond
// dynamically to specific intervals.icu API routes with literal mock JSON
// payloads.
func newMockServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	// 1. Athlete - Get/Update Mock (with quota headers)
	mux.HandleFunc("/athlete/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPut {
			t.Errorf("expected GET or PUT, got %s", r.Method)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-RateLimit-Remaining", "98")
		w.Header().Set("X-RateLimit-Reset", "1705752000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"id": "i1",
			"name": "A",
			"email": "athlete@example.com",
			"timezone": "America/Sao_Paulo",
			"icu_weight": 70.5
		}`))
	})

	// 2. Athlete - SportSettings Mock
	mux.HandleFunc("/athlete/me/sport-settings", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "types": ["Ride", "VirtualRide"], "ftp": 250, "lthr": 165, "max_hr": 190},
			{"id": 2, "types": ["Run"], "lthr": 172, "max_hr": 192}
		]`))
	})

	// 3. Events - List/Create/RangeUpdate/RangeDelete Mock
	mux.HandleFunc("/athlete/me/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodGet:
			if r.URL.Query().Get("oldest") == "" {
				t.Errorf("expected oldest query parameter on event list")
			}
			_, _ = w.Write([]byte(`[
				{"id": 100, "start_date_local": "2024-01-20", "name": "X", "category": "WORKOUT"},
				{"id": 101, "start_date_local": "2024-01-21", "name": "Long ride", "category": "WORKOUT"}
			]`))
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			var event map[string]any
			if err := json.Unmarshal(body, &event); err != nil {
				t.Errorf("event create body is not valid JSON: %v", err)
			}
			event["id"] = 100
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(event)
		case http.MethodPut:
			_, _ = w.Write([]byte(`[{"id": 100, "start_date_local": "2024-01-20", "category": "NOTE"}]`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s for /athlete/me/events", r.Method)
		}
	})

	// 4. Events - Get/Update/Delete by id, plus the canonical missing event
	mux.HandleFunc("/athlete/me/events/42", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet, http.MethodPut:
			_, _ = w.Write([]byte(`{"id": 42, "start_date_local": "2024-01-22", "name": "Race day", "category": "RACE_A"}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("/athlete/me/events/99999", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "event not found"}`))
	})

	// 5. Events - BulkDelete Mock
	mux.HandleFunc("/athlete/me/events/bulk-delete", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT for bulk-delete, got %s", r.Method)
		}
		var ids []int
		if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
			t.Errorf("bulk-delete body is not an id array: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	// 6. Wellness - List/Create Mock
	mux.HandleFunc("/athlete/me/wellness", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[
				{"id": "2024-01-20", "weight": 70.5, "restingHR": 48, "sleepSecs": 27000},
				{"id": "2024-01-21", "weight": 70.3, "restingHR": 50, "sleepSecs": 28800}
			]`))
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			_, _ = w.Write(body)
		}
	})

	// 7. Wellness - Update/Delete by date
	mux.HandleFunc("/athlete/me/wellness/2024-01-20", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPut:
			_, _ = w.Write([]byte(`{"id": "2024-01-20", "weight": 70.1, "restingHR": 47}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})

	// 8. Wellness - Bulk upsert
	mux.HandleFunc("/athlete/me/wellness-bulk", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT for wellness-bulk, got %s", r.Method)
		}
		var entries []map[string]any
		if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
			t.Errorf("wellness-bulk body is not an entry array: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	// 9. Workouts - List/Create and by id
	mux.HandleFunc("/athlete/me/workouts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"id": 7, "name": "2x20 threshold", "type": "Ride", "moving_time": 4500}]`))
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			var workout map[string]any
			_ = json.Unmarshal(body, &workout)
			workout["id"] = 8
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(workout)
		}
	})
	mux.HandleFunc("/athlete/me/workouts/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet, http.MethodPut:
			_, _ = w.Write([]byte(`{"id": 7, "name": "2x20 threshold", "type": "Ride", "moving_time": 4500}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})

	// 10. Activities - List and by id
	mux.HandleFunc("/athlete/me/activities", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "a1", "name": "Morning Ride", "type": "Ride", "moving_time": 3600, "distance": 30000.0}
		]`))
	})
	mux.HandleFunc("/athlete/me/activities/a1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet, http.MethodPut:
			_, _ = w.Write([]byte(`{"id": "a1", "name": "Morning Ride", "type": "Ride", "average_watts": 210}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})

	// 11. Activity streams (JSON and CSV)
	mux.HandleFunc("/activity/a1/streams", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet && r.URL.Query().Get("types") != "" {
			_, _ = w.Write([]byte(`[{"type": "watts", "data": [200, 210, 215]}]`))
			return
		}
		_, _ = w.Write([]byte(`[
			{"type": "watts", "data": [200, 210, 215]},
			{"type": "heartrate", "data": [140, 142, 145]}
		]`))
	})
	mux.HandleFunc("/activity/a1/streams.csv", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("time,watts,heartrate\n0,200,140\n1,210,142\n"))
		case http.MethodPut:
			ct := r.Header.Get("Content-Type")
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("streams.csv upload is not multipart (Content-Type %q): %v", ct, err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if _, _, err := r.FormFile("file"); err != nil {
				t.Errorf("streams.csv upload missing file field: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}
	})

	// 12. Activity intervals and interval editing
	mux.HandleFunc("/activity/a1/intervals", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "a1",
			"icu_intervals": [
				{"id": 1, "type": "WORK", "moving_time": 1200, "average_watts": 250},
				{"id": 2, "type": "RECOVERY", "moving_time": 300, "average_watts": 120}
			]
		}`))
	})
	mux.HandleFunc("/activity/a1/intervals/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 1, "type": "WORK", "label": "Rep 1", "moving_time": 1200}`))
	})
	mux.HandleFunc("/activity/a1/delete-intervals", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT for delete-intervals, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/activity/a1/split-interval", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "a1",
			"icu_intervals": [
				{"id": 1, "type": "WORK", "moving_time": 600},
				{"id": 3, "type": "WORK", "moving_time": 600}
			]
		}`))
	})

	// 13. Failure generators
	mux.HandleFunc("/429-generator", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "1705752000")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "Too Many Requests"}`))
	})
	mux.HandleFunc("/401-generator", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Unauthorized"}`))
	})
	mux.HandleFunc("/500-generator", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "database exploded"}`))
	})

	// 14. Context cancellation delay mock
	mux.HandleFunc("/delay", func(w http.ResponseWriter, r *http.Request) {
		// Blocks until the handler context is canceled.
		<-r.Context().Done()
	})

	return httptest.NewServer(mux)
}

// newMockClient builds a client with a test API key connected directly to
// the mock server base URL.
func newMockClient(ts *httptest.Server, opts ...Option) *Client {
	defaultOpts := []Option{
		WithBaseURL(ts.URL),
	}
	defaultOpts = append(defaultOpts, opts...)
	return NewClient("k", defaultOpts...)
}
