// Package handlers wires the routing core, the aggregator, the
// estimator and the summary service to HTTP. Handlers stay thin: argument
// extraction, envelope passthrough and status mapping only.
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SYNCODE-SLIIT/sports-analysis/internal/aggregate"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/cache"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/summary"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

// IntentRouter dispatches one intent call.
type IntentRouter interface {
	Handle(ctx context.Context, intent string, args map[string]interface{}) *models.Response
}

// GamesLister produces the merged fixture list for a date.
type GamesLister interface {
	ListGamesForDate(ctx context.Context, date string) []models.Event
}

// ProbabilityEstimator computes outcome probabilities for an event.
type ProbabilityEstimator interface {
	EstimateWinProbabilities(ctx context.Context, eventID string) (*models.WinProbabilities, *models.ErrorInfo)
}

// BriefGenerator produces a match brief from structured context.
type BriefGenerator interface {
	Generate(ctx context.Context, match summary.MatchContext) summary.Brief
}

// ResultsRecorder persists finished matches for later form queries.
type ResultsRecorder interface {
	RecordFinishedEvents(ctx context.Context, events []models.Event) (int, error)
}

// Handler serves the public API.
type Handler struct {
	router    IntentRouter
	games     GamesLister
	estimator ProbabilityEstimator
	briefs    BriefGenerator
	snapshots *cache.RedisWriter // nil when Redis is not configured
	results   ResultsRecorder    // nil when Postgres is not configured
}

// NewHandler creates the API handler. snapshots and results may be nil.
func NewHandler(router IntentRouter, games GamesLister, estimator ProbabilityEstimator, briefs BriefGenerator, snapshots *cache.RedisWriter, results ResultsRecorder) *Handler {
	return &Handler{
		router:    router,
		games:     games,
		estimator: estimator,
		briefs:    briefs,
		snapshots: snapshots,
		results:   results,
	}
}

// handleRequest is the POST /v1/handle body.
type handleRequest struct {
	Intent string                 `json:"intent"`
	Args   map[string]interface{} `json:"args"`
}

// HandleIntent serves POST /v1/handle. The envelope carries its own
// success flag, so the HTTP status is 200 whenever routing ran at all.
func (h *Handler) HandleIntent(w http.ResponseWriter, r *http.Request) {
	var req handleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	resp := h.router.Handle(r.Context(), req.Intent, req.Args)
	respondJSON(w, http.StatusOK, resp)
}

// GetGames serves GET /v1/games?date=YYYY-MM-DD, defaulting to today
// (UTC). The merged list is snapshotted in Redis when configured.
func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrBadRequest, "date must be YYYY-MM-DD")
		return
	}

	ctx := r.Context()
	if h.snapshots != nil {
		if games, err := h.snapshots.ReadGamesForDate(ctx, date); err != nil {
			log.Printf("handlers: games snapshot read failed: %v", err)
		} else if games != nil {
			respondGames(w, date, games)
			return
		}
	}

	games := h.games.ListGamesForDate(ctx, date)
	if h.results != nil {
		if n, err := h.results.RecordFinishedEvents(ctx, games); err != nil {
			log.Printf("handlers: recording finished results: %v", err)
		} else if n > 0 {
			log.Printf("handlers: recorded %d finished results for %s", n, date)
		}
	}
	if h.snapshots != nil {
		allFinal := len(games) > 0
		for _, game := range games {
			if !aggregate.IsFinished(game.Status) {
				allFinal = false
				break
			}
		}
		if err := h.snapshots.WriteGamesForDate(ctx, date, games, allFinal); err != nil {
			log.Printf("handlers: games snapshot write failed: %v", err)
		}
	}
	respondGames(w, date, games)
}

// GetProbabilities serves GET /v1/probabilities/{eventID}.
func (h *Handler) GetProbabilities(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	if eventID == "" {
		respondError(w, http.StatusBadRequest, models.ErrBadRequest, "eventID is required")
		return
	}

	ctx := r.Context()
	if h.snapshots != nil {
		if probs, err := h.snapshots.ReadProbabilities(ctx, eventID); err != nil {
			log.Printf("handlers: probabilities snapshot read failed: %v", err)
		} else if probs != nil {
			respondJSON(w, http.StatusOK, probs)
			return
		}
	}

	probs, errInfo := h.estimator.EstimateWinProbabilities(ctx, eventID)
	if errInfo != nil {
		respondError(w, statusForCode(errInfo.Code), errInfo.Code, errInfo.Message)
		return
	}

	if h.snapshots != nil {
		if err := h.snapshots.WriteProbabilities(ctx, eventID, probs); err != nil {
			log.Printf("handlers: probabilities snapshot write failed: %v", err)
		}
	}
	respondJSON(w, http.StatusOK, probs)
}

// GetSummary serves GET /v1/summary/{eventID}.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	if eventID == "" {
		respondError(w, http.StatusBadRequest, models.ErrBadRequest, "eventID is required")
		return
	}

	ctx := r.Context()
	resp := h.router.Handle(ctx, string(models.IntentEventGet), map[string]interface{}{"eventId": eventID})
	if !resp.OK {
		respondError(w, statusForCode(resp.Error.Code), resp.Error.Code, resp.Error.Message)
		return
	}
	events := aggregate.EventsFromEnvelope(resp)
	if len(events) == 0 {
		respondError(w, http.StatusNotFound, models.ErrNotFound, "event "+eventID+" not found")
		return
	}
	event := events[0]

	match := summary.MatchContext{
		EventID:   eventID,
		HomeTeam:  event.HomeTeamName,
		AwayTeam:  event.AwayTeamName,
		League:    event.LeagueName,
		Date:      event.Date,
		Status:    event.Status,
		HomeScore: event.HomeScore,
		AwayScore: event.AwayScore,
	}
	// Probabilities enrich the brief but are not required for it.
	if probs, errInfo := h.estimator.EstimateWinProbabilities(ctx, eventID); errInfo == nil {
		match.Probabilities = probs
	}

	respondJSON(w, http.StatusOK, h.briefs.Generate(ctx, match))
}

// HealthCheck serves GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func respondGames(w http.ResponseWriter, date string, games []models.Event) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":  date,
		"count": len(games),
		"games": games,
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("handlers: encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// statusForCode maps envelope error codes onto HTTP statuses for the
// non-envelope endpoints.
func statusForCode(code string) int {
	switch code {
	case models.ErrBadRequest, models.ErrMissingArg, models.ErrUnknownIntent:
		return http.StatusBadRequest
	case models.ErrNotFound, models.ErrUpstreamEmpty:
		return http.StatusNotFound
	case models.ErrAmbiguous:
		return http.StatusConflict
	case models.ErrUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
