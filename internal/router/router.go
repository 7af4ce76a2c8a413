// Package router is the provider routing and fallback core. Given an
// intent and arguments it selects a primary provider per a static
// policy table, judges whether the primary's answer is usable, and
// falls back to a secondary provider when it is not. A failed or empty
// primary never surfaces as an error if the fallback succeeds; when
// both are unusable the primary's result wins, since it is the intent's
// canonically-expected provider.
package router

import (
	"context"
	"fmt"
	"log"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/contracts"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
	"github.com/google/uuid"
)

// Router dispatches intents to providers. It is stateless across calls;
// per-call state is only the accumulating trace.
type Router struct {
	providers     map[string]contracts.Provider
	policies      map[models.Intent]Policy
	defaultPolicy Policy
}

// New creates a router over the given providers using the default
// policy table.
func New(provs ...contracts.Provider) *Router {
	return NewWithPolicies(DefaultPolicies(), DefaultPolicy(), provs...)
}

// NewWithPolicies creates a router with an explicit policy table. Used
// by tests and by callers with non-standard provider sets.
func NewWithPolicies(policies map[models.Intent]Policy, defaultPolicy Policy, provs ...contracts.Provider) *Router {
	byName := make(map[string]contracts.Provider, len(provs))
	for _, p := range provs {
		byName[p.Name()] = p
	}
	return &Router{
		providers:     byName,
		policies:      policies,
		defaultPolicy: defaultPolicy,
	}
}

// Handle is the single entry point. It always returns a well-formed
// envelope, never panics across the boundary.
func (rt *Router) Handle(ctx context.Context, intent string, args map[string]interface{}) (resp *models.Response) {
	requestID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("router: recovered panic handling %q: %v", intent, r)
			resp = models.Failure(models.Intent(intent), models.ErrInternal,
				fmt.Sprintf("internal error: %v", r), nil)
			resp.Meta.RequestID = requestID
		}
	}()

	if intent == "" {
		resp = models.Failure("", models.ErrBadRequest, "intent must be a non-empty string", nil)
		resp.Meta.RequestID = requestID
		return resp
	}
	if args == nil {
		args = map[string]interface{}{}
	}

	in := models.Intent(intent)
	if !models.KnownIntent(in) {
		resp = models.Failure(in, models.ErrUnknownIntent,
			fmt.Sprintf("unknown intent %q", intent), nil)
		resp.Meta.RequestID = requestID
		return resp
	}

	policy, ok := rt.policies[in]
	if !ok {
		policy = rt.defaultPolicy
	}

	primary, ok := rt.providers[policy.Primary]
	if !ok {
		resp = models.Failure(in, models.ErrInternal,
			fmt.Sprintf("provider %q is not registered", policy.Primary), nil)
		resp.Meta.RequestID = requestID
		return resp
	}

	primaryResp := primary.Call(ctx, in, args)
	primaryEmpty := IsEmpty(primaryResp.Data)
	trace := append([]models.TraceStep(nil), primaryResp.Meta.Trace...)
	trace = append(trace, models.TraceStep{
		"step":     "primary",
		"provider": primary.Name(),
		"ok":       primaryResp.OK,
		"empty":    primaryEmpty,
	})

	if primaryResp.OK && !primaryEmpty {
		return finish(primaryResp, requestID, trace, primary.Name(), nil)
	}

	// No fallback configured: the primary's answer is final, empty
	// success included. Never synthesize a fallback that doesn't exist.
	if policy.Fallback == "" {
		return finish(primaryResp, requestID, trace, primary.Name(), nil)
	}

	fallback, ok := rt.providers[policy.Fallback]
	if !ok {
		log.Printf("router: fallback provider %q for intent %s is not registered", policy.Fallback, in)
		return finish(primaryResp, requestID, trace, primary.Name(), nil)
	}

	fallbackResp := fallback.Call(ctx, in, args)
	fallbackEmpty := IsEmpty(fallbackResp.Data)
	trace = append(trace, fallbackResp.Meta.Trace...)
	trace = append(trace, models.TraceStep{
		"step":     "fallback",
		"provider": fallback.Name(),
		"ok":       fallbackResp.OK,
		"empty":    fallbackEmpty,
	})

	if fallbackResp.OK && !fallbackEmpty {
		name := fallback.Name()
		return finish(fallbackResp, requestID, trace, primary.Name(), &name)
	}

	// Both unusable: the primary's original result takes precedence,
	// with the full trace retained.
	return finish(primaryResp, requestID, trace, primary.Name(), nil)
}

func finish(resp *models.Response, requestID string, trace []models.TraceStep, primary string, fallback *string) *models.Response {
	resp.Meta.RequestID = requestID
	resp.Meta.Trace = trace
	resp.Meta.Source = &models.Source{Primary: primary, Fallback: fallback}
	return resp
}
