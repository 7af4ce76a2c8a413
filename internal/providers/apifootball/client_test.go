package apifootball

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

func cleanEnvelope(response []interface{}) map[string]interface{} {
	return map[string]interface{}{
		"get":      "fixtures",
		"errors":   []interface{}{},
		"results":  len(response),
		"response": response,
	}
}

func TestFixturesByDate(t *testing.T) {
	var gotKey, gotDate string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-apisports-key")
		gotDate = r.URL.Query().Get("date")
		json.NewEncoder(w).Encode(cleanEnvelope([]interface{}{
			map[string]interface{}{
				"fixture": map[string]interface{}{"id": 868123, "date": "2025-09-01T16:00:00+00:00"},
				"teams": map[string]interface{}{
					"home": map[string]interface{}{"id": 42, "name": "Arsenal"},
					"away": map[string]interface{}{"id": 49, "name": "Chelsea"},
				},
				"goals": map[string]interface{}{"home": nil, "away": nil},
			},
		}))
	}))
	defer upstream.Close()

	client := New(upstream.URL, "secret-key")
	resp := client.Call(context.Background(), models.IntentEventsList, map[string]interface{}{"date": "2025-09-01"})

	if !resp.OK {
		t.Fatalf("unexpected failure: %+v", resp.Error)
	}
	if gotKey != "secret-key" {
		t.Errorf("x-apisports-key = %q, want secret-key", gotKey)
	}
	if gotDate != "2025-09-01" {
		t.Errorf("date param = %q, want 2025-09-01", gotDate)
	}
	payload := resp.Data.(map[string]interface{})
	if response := payload["response"].([]interface{}); len(response) != 1 {
		t.Errorf("response has %d entries, want 1", len(response))
	}
}

func TestErrorsEnvelopeBecomesUpstreamError(t *testing.T) {
	tests := []struct {
		name   string
		errors interface{}
	}{
		{name: "map errors", errors: map[string]interface{}{"token": "invalid api key"}},
		{name: "list errors", errors: []interface{}{"rate limit reached"}},
		{name: "string error", errors: "something broke"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"errors":   tt.errors,
					"results":  0,
					"response": []interface{}{},
				})
			}))
			defer upstream.Close()

			client := New(upstream.URL, "secret-key")
			resp := client.Call(context.Background(), models.IntentLivescores, nil)

			if resp.OK {
				t.Fatal("expected failure for non-empty errors envelope")
			}
			if resp.Error.Code != models.ErrUpstream {
				t.Errorf("code = %s, want UPSTREAM_ERROR", resp.Error.Code)
			}
		})
	}
}

func TestEmptyResponsePassesThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(cleanEnvelope([]interface{}{}))
	}))
	defer upstream.Close()

	client := New(upstream.URL, "secret-key")
	resp := client.Call(context.Background(), models.IntentLivescores, nil)

	if !resp.OK {
		t.Fatalf("unexpected failure: %+v", resp.Error)
	}
	payload := resp.Data.(map[string]interface{})
	if response := payload["response"].([]interface{}); len(response) != 0 {
		t.Errorf("response = %v, want empty list preserved", response)
	}
}

func TestHeadToHeadCompound(t *testing.T) {
	var gotH2H string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotH2H = r.URL.Query().Get("h2h")
		json.NewEncoder(w).Encode(cleanEnvelope([]interface{}{}))
	}))
	defer upstream.Close()

	client := New(upstream.URL, "secret-key")
	resp := client.Call(context.Background(), models.IntentH2H, map[string]interface{}{
		"teamAId": "42",
		"teamBId": "49",
	})

	if !resp.OK {
		t.Fatalf("unexpected failure: %+v", resp.Error)
	}
	if gotH2H != "42-49" {
		t.Errorf("h2h param = %q, want 42-49", gotH2H)
	}
	if resp.ArgsResolved["h2h"] != "42-49" {
		t.Errorf("resolved h2h = %v, want 42-49", resp.ArgsResolved["h2h"])
	}
}

func TestOddsRequiresFixtureID(t *testing.T) {
	client := New("http://unused", "secret-key")
	resp := client.Call(context.Background(), models.IntentOddsList, nil)
	if resp.OK || resp.Error.Code != models.ErrMissingArg {
		t.Fatalf("resp = %+v, want MISSING_ARG", resp)
	}
}

func TestSeasonFor(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2025-09-01", "2025"},
		{"2026-02-15", "2025"},
		{"2025-07-01", "2025"},
		{"2025-06-30", "2024"},
	}
	for _, tt := range tests {
		if got := seasonFor(tt.date); got != tt.want {
			t.Errorf("seasonFor(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}
