// Package resolve turns human names (league, team, country) into
// provider-native IDs. Resolution is a read-through cache over the
// provider's own search: exact case-insensitive match first, then
// substring match, then a small hand-curated alias table of well-known
// names. Zero or multiple non-exact candidates are signaled distinctly
// (NOT_FOUND vs AMBIGUOUS) so callers can disambiguate.
package resolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SYNCODE-SLIIT/sports-analysis/internal/cache"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

// Resolution TTL: league and team IDs change essentially never, but a
// bounded TTL keeps a bad resolution from sticking forever.
const resolutionTTL = time.Hour

// Candidate is one search hit from the provider.
type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchFunc queries the provider for candidates matching a name.
type SearchFunc func(ctx context.Context, name string) ([]Candidate, error)

// Resolver resolves one kind of entity (league, team, ...) for one
// provider. Safe for concurrent use.
type Resolver struct {
	kind    string
	search  SearchFunc
	aliases map[string]string
	cache   *cache.TTLCache
}

// New creates a resolver. aliases maps lowercase well-known names to
// provider-native IDs and may be nil.
func New(kind string, search SearchFunc, aliases map[string]string) *Resolver {
	normalized := make(map[string]string, len(aliases))
	for name, id := range aliases {
		normalized[strings.ToLower(strings.TrimSpace(name))] = id
	}
	return &Resolver{
		kind:    kind,
		search:  search,
		aliases: normalized,
		cache:   cache.NewTTLCache(),
	}
}

// Resolve maps a name to a provider-native ID. The returned ErrorInfo is
// nil on success; otherwise its code is NOT_FOUND, AMBIGUOUS or
// UPSTREAM_ERROR, with AMBIGUOUS carrying the candidate list under
// details["choices"].
func (r *Resolver) Resolve(ctx context.Context, name string) (string, *models.ErrorInfo) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return "", &models.ErrorInfo{
			Code:    models.ErrMissingArg,
			Message: fmt.Sprintf("%s name is required", r.kind),
		}
	}

	cacheKey := r.kind + ":" + query
	if cached, fresh := r.cache.Get(cacheKey); fresh {
		return cached.(string), nil
	}

	candidates, err := r.search(ctx, name)
	if err != nil {
		// Search failed outright: the alias table is the last resort.
		if id, ok := r.aliases[query]; ok {
			r.cache.Put(cacheKey, id, resolutionTTL)
			return id, nil
		}
		return "", &models.ErrorInfo{
			Code:    models.ErrUpstream,
			Message: fmt.Sprintf("%s search failed: %v", r.kind, err),
		}
	}

	// Exact case-insensitive match wins outright, even when other
	// candidates exist.
	for _, c := range candidates {
		if strings.ToLower(strings.TrimSpace(c.Name)) == query {
			r.cache.Put(cacheKey, c.ID, resolutionTTL)
			return c.ID, nil
		}
	}

	// Substring matches: unique hit resolves, multiple hits are
	// ambiguous and must be surfaced with the choices.
	var partial []Candidate
	for _, c := range candidates {
		lower := strings.ToLower(c.Name)
		if strings.Contains(lower, query) || strings.Contains(query, lower) {
			partial = append(partial, c)
		}
	}

	switch {
	case len(partial) == 1:
		r.cache.Put(cacheKey, partial[0].ID, resolutionTTL)
		return partial[0].ID, nil
	case len(partial) > 1:
		choices := make([]map[string]interface{}, 0, len(partial))
		for _, c := range partial {
			choices = append(choices, map[string]interface{}{"id": c.ID, "name": c.Name})
		}
		return "", &models.ErrorInfo{
			Code:    models.ErrAmbiguous,
			Message: fmt.Sprintf("%s name %q matches %d candidates", r.kind, name, len(partial)),
			Details: map[string]interface{}{"choices": choices},
		}
	}

	if id, ok := r.aliases[query]; ok {
		r.cache.Put(cacheKey, id, resolutionTTL)
		return id, nil
	}

	return "", &models.ErrorInfo{
		Code:    models.ErrNotFound,
		Message: fmt.Sprintf("%s %q not found", r.kind, name),
	}
}
