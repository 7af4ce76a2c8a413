package contracts

import (
	"context"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

// Provider is the per-upstream adapter interface. Call never panics and
// never returns a nil response: whatever the upstream does (network
// failure, non-2xx status, malformed JSON, provider-native failure flag)
// is normalized into the common envelope. A single call does not retry
// against the same provider; the router's fallback is the retry
// mechanism.
type Provider interface {
	// Name returns the provider key used in routing policy and traces.
	Name() string

	// Call executes one intent against the upstream. Args are read-only;
	// any name-to-ID resolution performed is surfaced via ArgsResolved on
	// the response.
	Call(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response
}
