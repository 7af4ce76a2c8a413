package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/SYNCODE-SLIIT/sports-analysis/internal/summary"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

type fakeRouter struct {
	lastIntent string
	lastArgs   map[string]interface{}
	resp       *models.Response
}

func (f *fakeRouter) Handle(_ context.Context, intent string, args map[string]interface{}) *models.Response {
	f.lastIntent = intent
	f.lastArgs = args
	return f.resp
}

type fakeGames struct {
	games []models.Event
}

func (f *fakeGames) ListGamesForDate(_ context.Context, _ string) []models.Event {
	return f.games
}

type fakeEstimator struct {
	probs *models.WinProbabilities
	err   *models.ErrorInfo
}

func (f *fakeEstimator) EstimateWinProbabilities(_ context.Context, _ string) (*models.WinProbabilities, *models.ErrorInfo) {
	return f.probs, f.err
}

func newTestServer(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/v1/handle", h.HandleIntent)
	r.Get("/v1/games", h.GetGames)
	r.Get("/v1/probabilities/{eventID}", h.GetProbabilities)
	r.Get("/v1/summary/{eventID}", h.GetSummary)
	r.Get("/health", h.HealthCheck)
	return r
}

func TestHandleIntent(t *testing.T) {
	router := &fakeRouter{resp: models.Success(models.IntentLivescores, map[string]interface{}{
		"result": []interface{}{},
	})}
	h := NewHandler(router, &fakeGames{}, &fakeEstimator{}, summary.NewService(nil), nil, nil)
	srv := newTestServer(h)

	body := bytes.NewBufferString(`{"intent":"livescores","args":{"leagueId":"152"}}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/handle", body)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if router.lastIntent != "livescores" {
		t.Errorf("intent = %q, want livescores", router.lastIntent)
	}
	if router.lastArgs["leagueId"] != "152" {
		t.Errorf("args = %v, want leagueId 152", router.lastArgs)
	}

	var envelope models.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !envelope.OK {
		t.Errorf("envelope.OK = false, want true")
	}
}

func TestHandleIntentFailureStillHTTP200(t *testing.T) {
	router := &fakeRouter{resp: models.Failure("nope", models.ErrUnknownIntent, "unknown intent", nil)}
	h := NewHandler(router, &fakeGames{}, &fakeEstimator{}, summary.NewService(nil), nil, nil)
	srv := newTestServer(h)

	req := httptest.NewRequest(http.MethodPost, "/v1/handle", bytes.NewBufferString(`{"intent":"nope"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with failed envelope", rec.Code)
	}
	var envelope models.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.OK || envelope.Error == nil || envelope.Error.Code != models.ErrUnknownIntent {
		t.Errorf("envelope = %+v, want UNKNOWN_INTENT failure", envelope)
	}
}

func TestHandleIntentRejectsBadJSON(t *testing.T) {
	h := NewHandler(&fakeRouter{}, &fakeGames{}, &fakeEstimator{}, summary.NewService(nil), nil, nil)
	srv := newTestServer(h)

	req := httptest.NewRequest(http.MethodPost, "/v1/handle", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetGames(t *testing.T) {
	games := &fakeGames{games: []models.Event{
		{EventID: "1", HomeTeamName: "Arsenal", AwayTeamName: "Chelsea", Date: "2025-09-01", Providers: []string{"allsports"}},
	}}
	h := NewHandler(&fakeRouter{}, games, &fakeEstimator{}, summary.NewService(nil), nil, nil)
	srv := newTestServer(h)

	req := httptest.NewRequest(http.MethodGet, "/v1/games?date=2025-09-01", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload struct {
		Date  string         `json:"date"`
		Count int            `json:"count"`
		Games []models.Event `json:"games"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Date != "2025-09-01" || payload.Count != 1 || len(payload.Games) != 1 {
		t.Errorf("payload = %+v, want one game for the date", payload)
	}
}

type fakeRecorder struct {
	recorded []models.Event
}

func (f *fakeRecorder) RecordFinishedEvents(_ context.Context, events []models.Event) (int, error) {
	f.recorded = append(f.recorded, events...)
	return len(events), nil
}

func TestGetGamesRecordsResults(t *testing.T) {
	two, one := 2, 1
	games := &fakeGames{games: []models.Event{
		{EventID: "1", HomeTeamID: "10", AwayTeamID: "20", HomeTeamName: "Arsenal", AwayTeamName: "Chelsea",
			Date: "2025-09-01", Status: "Finished", HomeScore: &two, AwayScore: &one},
	}}
	recorder := &fakeRecorder{}
	h := NewHandler(&fakeRouter{}, games, &fakeEstimator{}, summary.NewService(nil), nil, recorder)
	srv := newTestServer(h)

	req := httptest.NewRequest(http.MethodGet, "/v1/games?date=2025-09-01", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(recorder.recorded) != 1 {
		t.Errorf("recorded %d events, want 1", len(recorder.recorded))
	}
}

func TestGetGamesRejectsBadDate(t *testing.T) {
	h := NewHandler(&fakeRouter{}, &fakeGames{}, &fakeEstimator{}, summary.NewService(nil), nil, nil)
	srv := newTestServer(h)

	req := httptest.NewRequest(http.MethodGet, "/v1/games?date=09-01-2025", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetProbabilities(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		est := &fakeEstimator{probs: &models.WinProbabilities{Home: 0.5, Draw: 0.3, Away: 0.2, Method: "odds_implied"}}
		h := NewHandler(&fakeRouter{}, &fakeGames{}, est, summary.NewService(nil), nil, nil)
		srv := newTestServer(h)

		req := httptest.NewRequest(http.MethodGet, "/v1/probabilities/555", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var probs models.WinProbabilities
		if err := json.Unmarshal(rec.Body.Bytes(), &probs); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if probs.Method != "odds_implied" {
			t.Errorf("Method = %q, want odds_implied", probs.Method)
		}
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		est := &fakeEstimator{err: &models.ErrorInfo{Code: models.ErrNotFound, Message: "no data"}}
		h := NewHandler(&fakeRouter{}, &fakeGames{}, est, summary.NewService(nil), nil, nil)
		srv := newTestServer(h)

		req := httptest.NewRequest(http.MethodGet, "/v1/probabilities/999", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestGetSummary(t *testing.T) {
	eventResp := models.Success(models.IntentEventGet, map[string]interface{}{
		"result": []interface{}{
			map[string]interface{}{
				"event_key":       "555",
				"event_home_team": "Arsenal",
				"event_away_team": "Chelsea",
				"league_name":     "Premier League",
				"event_date":      "2025-09-01",
			},
		},
	})
	eventResp.Meta.Source = &models.Source{Primary: "allsports"}

	h := NewHandler(&fakeRouter{resp: eventResp}, &fakeGames{}, &fakeEstimator{
		probs: &models.WinProbabilities{Home: 0.5, Draw: 0.3, Away: 0.2, Method: "odds_implied"},
	}, summary.NewService(nil), nil, nil)
	srv := newTestServer(h)

	req := httptest.NewRequest(http.MethodGet, "/v1/summary/555", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var brief summary.Brief
	if err := json.Unmarshal(rec.Body.Bytes(), &brief); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if brief.Source != "template" {
		t.Errorf("Source = %q, want template without a generator", brief.Source)
	}
	if brief.Headline == "" {
		t.Errorf("brief missing headline: %+v", brief)
	}
}

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{models.ErrBadRequest, http.StatusBadRequest},
		{models.ErrMissingArg, http.StatusBadRequest},
		{models.ErrUnknownIntent, http.StatusBadRequest},
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrUpstreamEmpty, http.StatusNotFound},
		{models.ErrAmbiguous, http.StatusConflict},
		{models.ErrUpstream, http.StatusBadGateway},
		{models.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusForCode(tt.code); got != tt.want {
			t.Errorf("statusForCode(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
