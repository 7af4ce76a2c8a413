package estimator

import (
	"context"
	"log"
	"strconv"

	"github.com/SYNCODE-SLIIT/sports-analysis/internal/aggregate"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/providers/allsports"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

// formMatches is how many recent results feed the form rating.
const formMatches = 5

// RouterClient is the slice of the router the estimator needs; tests
// substitute fakes.
type RouterClient interface {
	Handle(ctx context.Context, intent string, args map[string]interface{}) *models.Response
}

// FormSource supplies recent-form summaries, typically backed by the
// results store. Optional.
type FormSource interface {
	RecentForm(ctx context.Context, teamID string, n int) (models.RecentFormSummary, error)
}

// Service orchestrates probability estimation for an event: it pulls
// the event through the router, gathers whatever signal is available
// (bookmaker odds, stored form, head-to-head history) and picks the
// strongest computation path.
type Service struct {
	router  RouterClient
	forms   FormSource
	h2hOpts H2HOptions
}

// NewService creates the estimator service. forms may be nil; the
// service then leans on head-to-head history from the providers.
func NewService(router RouterClient, forms FormSource) *Service {
	return &Service{
		router:  router,
		forms:   forms,
		h2hOpts: DefaultH2HOptions(),
	}
}

// EstimateWinProbabilities produces the outcome triple for an event.
// The returned ErrorInfo is nil on success.
func (s *Service) EstimateWinProbabilities(ctx context.Context, eventID string) (*models.WinProbabilities, *models.ErrorInfo) {
	resp := s.router.Handle(ctx, string(models.IntentEventGet), map[string]interface{}{"eventId": eventID})
	if !resp.OK {
		return nil, resp.Error
	}

	events := aggregate.EventsFromEnvelope(resp)
	if len(events) == 0 || events[0].HomeTeamID == "" || events[0].AwayTeamID == "" {
		// Providers use inconsistent field names; when none of the
		// aliases yields both team IDs we refuse to guess.
		return nil, &models.ErrorInfo{
			Code:    models.ErrNotFound,
			Message: "cannot determine home/away team IDs for event " + eventID,
		}
	}
	event := events[0]

	var oddsProbs *models.WinProbabilities
	oddsResp := s.router.Handle(ctx, string(models.IntentOddsList), map[string]interface{}{"matchId": eventID})
	if oddsResp.OK {
		if home, draw, away, found := decimalOddsFromPayload(oddsResp.Data); found {
			if implied, err := ImpliedFromDecimalOdds(home, draw, away); err == nil {
				oddsProbs = &implied
			} else {
				log.Printf("estimator: invalid odds for event %s: %v", eventID, err)
			}
		}
	}

	formProbs := s.formProbabilities(ctx, event)

	switch {
	case oddsProbs != nil && formProbs != nil:
		blended := Blend(*oddsProbs, *formProbs)
		return &blended, nil
	case oddsProbs != nil:
		return oddsProbs, nil
	case formProbs != nil:
		return formProbs, nil
	}

	if meetings := s.headToHead(ctx, event); len(meetings) > 0 {
		probs := H2HProbabilities(event.HomeTeamID, event.AwayTeamID, meetings, s.h2hOpts)
		return &probs, nil
	}

	return nil, &models.ErrorInfo{
		Code:    models.ErrNotFound,
		Message: "no odds, form or head-to-head data available for event " + eventID,
	}
}

func (s *Service) formProbabilities(ctx context.Context, event models.Event) *models.WinProbabilities {
	if s.forms == nil {
		return nil
	}

	homeForm, err := s.forms.RecentForm(ctx, event.HomeTeamID, formMatches)
	if err != nil {
		log.Printf("estimator: form lookup failed for team %s: %v", event.HomeTeamID, err)
		return nil
	}
	awayForm, err := s.forms.RecentForm(ctx, event.AwayTeamID, formMatches)
	if err != nil {
		log.Printf("estimator: form lookup failed for team %s: %v", event.AwayTeamID, err)
		return nil
	}
	if homeForm.Matches == 0 && awayForm.Matches == 0 {
		return nil
	}

	probs := FormProbabilities(homeForm, awayForm)
	return &probs
}

func (s *Service) headToHead(ctx context.Context, event models.Event) []models.Event {
	resp := s.router.Handle(ctx, string(models.IntentH2H), map[string]interface{}{
		"teamAId": event.HomeTeamID,
		"teamBId": event.AwayTeamID,
	})
	if !resp.OK {
		return nil
	}
	return h2hEventsFromResponse(resp)
}

// h2hEventsFromResponse extracts past meetings. The AllSports H2H
// payload nests the shared history under result.H2H; API-Football
// answers with a plain fixtures list, which the generic envelope path
// handles.
func h2hEventsFromResponse(resp *models.Response) []models.Event {
	if payload, ok := resp.Data.(map[string]interface{}); ok {
		if result, ok := payload["result"].(map[string]interface{}); ok {
			if list, ok := result["H2H"].([]interface{}); ok {
				reshaped := map[string]interface{}{"result": list}
				return aggregate.EventsFromPayload(allsports.ProviderName, reshaped)
			}
		}
	}
	return aggregate.EventsFromEnvelope(resp)
}

// decimalOddsFromPayload digs 1X2 decimal odds out of an odds payload.
// The raw provider keys them odd_1/odd_x/odd_2 per bookmaker, under a
// result that is either a match-ID-keyed map or a flat list.
func decimalOddsFromPayload(data interface{}) (home, draw, away float64, found bool) {
	payload, ok := data.(map[string]interface{})
	if !ok {
		return 0, 0, 0, false
	}

	var entries []interface{}
	switch result := payload["result"].(type) {
	case []interface{}:
		entries = result
	case map[string]interface{}:
		for _, value := range result {
			if list, ok := value.([]interface{}); ok {
				entries = append(entries, list...)
			}
		}
	}

	for _, raw := range entries {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		h, okH := parseOdd(entry["odd_1"])
		d, okD := parseOdd(entry["odd_x"])
		a, okA := parseOdd(entry["odd_2"])
		if okH && okD && okA {
			return h, d, a, true
		}
	}
	return 0, 0, 0, false
}

func parseOdd(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, v > 0
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil && f > 0
	}
	return 0, false
}
