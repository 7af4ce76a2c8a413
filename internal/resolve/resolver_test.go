package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

func staticSearch(candidates []Candidate) SearchFunc {
	return func(ctx context.Context, name string) ([]Candidate, error) {
		return candidates, nil
	}
}

func TestResolveExactMatchWins(t *testing.T) {
	r := New("team", staticSearch([]Candidate{
		{ID: "100", Name: "Arsenal"},
		{ID: "101", Name: "Arsenal Tula"},
	}), nil)

	id, errInfo := r.Resolve(context.Background(), "arsenal")
	if errInfo != nil {
		t.Fatalf("unexpected error: %+v", errInfo)
	}
	if id != "100" {
		t.Errorf("id = %s, want 100 (exact match must beat substring candidates)", id)
	}
}

func TestResolveUniqueSubstring(t *testing.T) {
	r := New("league", staticSearch([]Candidate{
		{ID: "4328", Name: "English Premier League"},
		{ID: "4335", Name: "Spanish La Liga"},
	}), nil)

	id, errInfo := r.Resolve(context.Background(), "premier league")
	if errInfo != nil {
		t.Fatalf("unexpected error: %+v", errInfo)
	}
	if id != "4328" {
		t.Errorf("id = %s, want 4328", id)
	}
}

func TestResolveAmbiguous(t *testing.T) {
	r := New("team", staticSearch([]Candidate{
		{ID: "200", Name: "Manchester United"},
		{ID: "201", Name: "Manchester City"},
	}), nil)

	_, errInfo := r.Resolve(context.Background(), "manchester")
	if errInfo == nil {
		t.Fatal("expected AMBIGUOUS error")
	}
	if errInfo.Code != models.ErrAmbiguous {
		t.Fatalf("code = %s, want %s", errInfo.Code, models.ErrAmbiguous)
	}
	choices, ok := errInfo.Details["choices"].([]map[string]interface{})
	if !ok {
		t.Fatalf("details.choices missing or wrong type: %#v", errInfo.Details)
	}
	if len(choices) < 2 {
		t.Errorf("len(choices) = %d, want >= 2", len(choices))
	}
}

func TestResolveNotFound(t *testing.T) {
	r := New("team", staticSearch(nil), nil)

	_, errInfo := r.Resolve(context.Background(), "atlantis rovers")
	if errInfo == nil || errInfo.Code != models.ErrNotFound {
		t.Fatalf("errInfo = %+v, want code NOT_FOUND", errInfo)
	}
}

func TestResolveAliasFallback(t *testing.T) {
	r := New("league", staticSearch(nil), map[string]string{
		"premier league": "4328",
	})

	id, errInfo := r.Resolve(context.Background(), "Premier League")
	if errInfo != nil {
		t.Fatalf("unexpected error: %+v", errInfo)
	}
	if id != "4328" {
		t.Errorf("id = %s, want 4328 from alias table", id)
	}
}

func TestResolveAliasOnSearchFailure(t *testing.T) {
	failing := func(ctx context.Context, name string) ([]Candidate, error) {
		return nil, errors.New("upstream down")
	}

	r := New("league", failing, map[string]string{"premier league": "4328"})

	id, errInfo := r.Resolve(context.Background(), "premier league")
	if errInfo != nil {
		t.Fatalf("unexpected error: %+v", errInfo)
	}
	if id != "4328" {
		t.Errorf("id = %s, want 4328", id)
	}

	// A name missing from the alias table surfaces the upstream failure.
	_, errInfo = r.Resolve(context.Background(), "bundesliga")
	if errInfo == nil || errInfo.Code != models.ErrUpstream {
		t.Fatalf("errInfo = %+v, want code UPSTREAM_ERROR", errInfo)
	}
}

func TestResolveCachesResults(t *testing.T) {
	calls := 0
	search := func(ctx context.Context, name string) ([]Candidate, error) {
		calls++
		return []Candidate{{ID: "300", Name: "Chelsea"}}, nil
	}

	r := New("team", search, nil)
	for i := 0; i < 3; i++ {
		id, errInfo := r.Resolve(context.Background(), "Chelsea")
		if errInfo != nil {
			t.Fatalf("unexpected error: %+v", errInfo)
		}
		if id != "300" {
			t.Fatalf("id = %s, want 300", id)
		}
	}
	if calls != 1 {
		t.Errorf("search called %d times, want 1 (read-through cache)", calls)
	}
}

func TestResolveEmptyName(t *testing.T) {
	r := New("team", staticSearch(nil), nil)

	_, errInfo := r.Resolve(context.Background(), "   ")
	if errInfo == nil || errInfo.Code != models.ErrMissingArg {
		t.Fatalf("errInfo = %+v, want code MISSING_ARG", errInfo)
	}
}
