package aggregate

import (
	"testing"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

func TestEventsFromPayloadSportsDB(t *testing.T) {
	payload := map[string]interface{}{
		"events": []interface{}{
			map[string]interface{}{
				"idEvent":      "602100",
				"strHomeTeam":  "Arsenal",
				"strAwayTeam":  "Chelsea",
				"strLeague":    "Premier League",
				"dateEvent":    "2025-09-01",
				"strTime":      "16:00:00",
				"intHomeScore": "2",
				"intAwayScore": "1",
				"strVenue":     "Emirates Stadium",
			},
		},
	}

	events := EventsFromPayload("sportsdb", payload)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	event := events[0]
	if event.EventID != "602100" || event.HomeTeamName != "Arsenal" || event.AwayTeamName != "Chelsea" {
		t.Errorf("identity fields wrong: %+v", event)
	}
	if event.Date != "2025-09-01T16:00:00" {
		t.Errorf("Date = %q, want date and time joined", event.Date)
	}
	if event.HomeScore == nil || *event.HomeScore != 2 || event.AwayScore == nil || *event.AwayScore != 1 {
		t.Errorf("scores wrong: %+v", event)
	}
}

func TestEventsFromPayloadAllSports(t *testing.T) {
	payload := map[string]interface{}{
		"success": float64(1),
		"result": []interface{}{
			map[string]interface{}{
				"event_key":       float64(86392),
				"event_home_team": "Real Madrid",
				"event_away_team": "Barcelona",
				"home_team_key":   float64(76),
				"away_team_key":   float64(97),
				"event_date":      "2025-10-26",
				"event_status":    "Finished",
			},
		},
	}

	events := EventsFromPayload("allsports", payload)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	event := events[0]
	if event.EventID != "86392" {
		t.Errorf("EventID = %q, want numeric key coerced to string", event.EventID)
	}
	if event.HomeTeamID != "76" || event.AwayTeamID != "97" {
		t.Errorf("team IDs = %q/%q, want 76/97", event.HomeTeamID, event.AwayTeamID)
	}
}

func TestEventsFromPayloadAPIFootballFlattens(t *testing.T) {
	payload := map[string]interface{}{
		"response": []interface{}{
			map[string]interface{}{
				"fixture": map[string]interface{}{
					"id":      float64(868123),
					"date":    "2025-09-01T16:00:00+00:00",
					"referee": "M. Oliver",
					"venue":   map[string]interface{}{"name": "Emirates Stadium"},
					"status":  map[string]interface{}{"long": "Match Finished", "short": "FT"},
				},
				"league": map[string]interface{}{"id": float64(39), "name": "Premier League"},
				"teams": map[string]interface{}{
					"home": map[string]interface{}{"id": float64(42), "name": "Arsenal"},
					"away": map[string]interface{}{"id": float64(49), "name": "Chelsea"},
				},
				"goals": map[string]interface{}{"home": float64(2), "away": float64(1)},
			},
		},
	}

	events := EventsFromPayload("apifootball", payload)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	event := events[0]
	if event.EventID != "868123" || event.HomeTeamID != "42" || event.AwayTeamID != "49" {
		t.Errorf("identity fields wrong: %+v", event)
	}
	if event.Status != "FT" {
		t.Errorf("Status = %q, want the short code", event.Status)
	}
	if event.LeagueName != "Premier League" || event.Venue != "Emirates Stadium" || event.Referee != "M. Oliver" {
		t.Errorf("context fields wrong: %+v", event)
	}
	if event.HomeScore == nil || *event.HomeScore != 2 {
		t.Errorf("HomeScore = %v, want 2", event.HomeScore)
	}
}

func TestEventsFromPayloadDropsNamelessRecords(t *testing.T) {
	payload := map[string]interface{}{
		"result": []interface{}{
			map[string]interface{}{"event_key": float64(1)},
			map[string]interface{}{"event_key": float64(2), "event_home_team": "Arsenal", "event_away_team": "Chelsea"},
		},
	}
	events := EventsFromPayload("allsports", payload)
	if len(events) != 1 || events[0].EventID != "2" {
		t.Errorf("events = %+v, want only the named record", events)
	}
}

func TestEventsFromEnvelope(t *testing.T) {
	payload := map[string]interface{}{
		"result": []interface{}{
			map[string]interface{}{
				"event_key":       float64(7),
				"event_home_team": "Ajax",
				"event_away_team": "PSV",
			},
		},
	}

	t.Run("uses the source hint", func(t *testing.T) {
		resp := models.Success(models.IntentEventGet, payload)
		resp.Meta.Source = &models.Source{Primary: "allsports"}
		events := EventsFromEnvelope(resp)
		if len(events) != 1 || events[0].EventID != "7" {
			t.Errorf("events = %+v, want the allsports record", events)
		}
	})

	t.Run("probes shapes without a hint", func(t *testing.T) {
		resp := models.Success(models.IntentEventGet, payload)
		events := EventsFromEnvelope(resp)
		if len(events) != 1 {
			t.Errorf("events = %+v, want one record via probing", events)
		}
	})

	t.Run("prefers the fallback provider when set", func(t *testing.T) {
		fallback := "allsports"
		resp := models.Success(models.IntentEventGet, payload)
		resp.Meta.Source = &models.Source{Primary: "sportsdb", Fallback: &fallback}
		events := EventsFromEnvelope(resp)
		if len(events) != 1 {
			t.Errorf("events = %+v, want the fallback's shape parsed", events)
		}
	})

	t.Run("failed envelope yields nothing", func(t *testing.T) {
		resp := models.Failure(models.IntentEventGet, models.ErrNotFound, "gone", nil)
		if events := EventsFromEnvelope(resp); events != nil {
			t.Errorf("events = %+v, want nil", events)
		}
	})
}
