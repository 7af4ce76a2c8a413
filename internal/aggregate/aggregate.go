// Package aggregate fans one logical query out to every configured
// provider and merges the answers. Unlike the router's primary/fallback
// pair, aggregation queries all providers because they cover mostly
// disjoint leagues and competitions.
package aggregate

import (
	"context"
	"log"
	"sync"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/contracts"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

// Aggregator queries all providers for the same logical query. Provider
// order fixes merge priority: earlier providers win field conflicts.
type Aggregator struct {
	providers []contracts.Provider
}

// New creates an aggregator. Provider order is the merge priority.
func New(provs ...contracts.Provider) *Aggregator {
	return &Aggregator{providers: provs}
}

// ListGamesForDate independently queries every provider for the date's
// fixtures concurrently (the calls share no mutable state) and
// returns one deduplicated, ordered list. Provider failures are logged
// and skipped; one provider's outage never empties the whole answer.
func (a *Aggregator) ListGamesForDate(ctx context.Context, date string) []models.Event {
	lists := make([][]models.Event, len(a.providers))
	args := map[string]interface{}{"date": date}

	var wg sync.WaitGroup
	for i, provider := range a.providers {
		wg.Add(1)
		go func(i int, provider contracts.Provider) {
			defer wg.Done()
			resp := provider.Call(ctx, models.IntentEventsList, args)
			if !resp.OK {
				log.Printf("aggregate: %s events.list failed: %s", provider.Name(), resp.Error.Message)
				return
			}
			lists[i] = EventsFromPayload(provider.Name(), resp.Data)
		}(i, provider)
	}
	wg.Wait()

	return MergeEvents(lists...)
}
