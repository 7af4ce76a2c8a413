// Package summary produces narrative match briefs through a black-box
// text generation service, with shape and length validation, a single
// retry, and a deterministic template fallback when the service cannot
// deliver.
package summary

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

const (
	// minParagraphWords and maxParagraphWords bound the OneParagraph field.
	minParagraphWords = 200
	maxParagraphWords = 300
)

// Brief is the structured match summary returned to callers. Source is
// "generated" when the text service produced it and "template" when the
// deterministic fallback did.
type Brief struct {
	Headline       string   `json:"headline"`
	OneParagraph   string   `json:"one_paragraph"`
	Bullets        []string `json:"bullets"`
	KeyEvents      []string `json:"key_events,omitempty"`
	StarPerformers []string `json:"star_performers,omitempty"`
	Source         string   `json:"source"`
}

// MatchContext carries everything the generator may draw on. Fields may
// be empty; the generator and the fallback both degrade gracefully.
type MatchContext struct {
	EventID       string                   `json:"event_id"`
	HomeTeam      string                   `json:"home_team"`
	AwayTeam      string                   `json:"away_team"`
	League        string                   `json:"league,omitempty"`
	Date          string                   `json:"date,omitempty"`
	Status        string                   `json:"status,omitempty"`
	HomeScore     *int                     `json:"home_score,omitempty"`
	AwayScore     *int                     `json:"away_score,omitempty"`
	Probabilities *models.WinProbabilities `json:"probabilities,omitempty"`
}

// Constraints instructs the generator. Strict is set on the retry after
// a first answer failed validation.
type Constraints struct {
	MinWords int  `json:"min_words"`
	MaxWords int  `json:"max_words"`
	Strict   bool `json:"strict"`
}

// Summarizer is the black-box text service.
type Summarizer interface {
	Summarize(ctx context.Context, match MatchContext, constraints Constraints) (Brief, error)
}

// Service wraps a Summarizer with validation, one retry and the
// template fallback.
type Service struct {
	summarizer Summarizer
}

// NewService builds the summary service. summarizer may be nil, in
// which case every brief comes from the template.
func NewService(summarizer Summarizer) *Service {
	return &Service{summarizer: summarizer}
}

// Generate returns a brief for the match. It never fails: invalid or
// unavailable generator output degrades to the deterministic template.
func (s *Service) Generate(ctx context.Context, match MatchContext) Brief {
	if s.summarizer == nil {
		return TemplateBrief(match)
	}

	constraints := Constraints{MinWords: minParagraphWords, MaxWords: maxParagraphWords}
	brief, err := s.summarizer.Summarize(ctx, match, constraints)
	if err == nil {
		if validationErr := Validate(brief); validationErr == nil {
			brief.Source = "generated"
			return brief
		} else {
			log.Printf("summary: first attempt invalid for event %s: %v", match.EventID, validationErr)
		}
	} else {
		log.Printf("summary: generator error for event %s: %v", match.EventID, err)
	}

	// One retry with the constraints restated as strict.
	constraints.Strict = true
	brief, err = s.summarizer.Summarize(ctx, match, constraints)
	if err == nil {
		if validationErr := Validate(brief); validationErr == nil {
			brief.Source = "generated"
			return brief
		} else {
			log.Printf("summary: retry invalid for event %s: %v", match.EventID, validationErr)
		}
	} else {
		log.Printf("summary: generator retry error for event %s: %v", match.EventID, err)
	}

	return TemplateBrief(match)
}

// Validate checks the generated brief's shape: a headline, a paragraph
// within the word budget, and at least one bullet.
func Validate(brief Brief) error {
	if strings.TrimSpace(brief.Headline) == "" {
		return fmt.Errorf("missing headline")
	}
	words := len(strings.Fields(brief.OneParagraph))
	if words < minParagraphWords || words > maxParagraphWords {
		return fmt.Errorf("paragraph is %d words, want between %d and %d", words, minParagraphWords, maxParagraphWords)
	}
	if len(brief.Bullets) == 0 {
		return fmt.Errorf("missing bullets")
	}
	return nil
}

// TemplateBrief builds a deterministic summary from the structured
// context alone. It is intentionally plain: correctness over prose.
func TemplateBrief(match MatchContext) Brief {
	home := orUnknown(match.HomeTeam, "Home side")
	away := orUnknown(match.AwayTeam, "Away side")

	headline := fmt.Sprintf("%s vs %s", home, away)
	if match.HomeScore != nil && match.AwayScore != nil {
		headline = fmt.Sprintf("%s %d-%d %s", home, *match.HomeScore, *match.AwayScore, away)
	}

	var paragraph strings.Builder
	fmt.Fprintf(&paragraph, "%s face %s", home, away)
	if match.League != "" {
		fmt.Fprintf(&paragraph, " in the %s", match.League)
	}
	if match.Date != "" {
		fmt.Fprintf(&paragraph, " on %s", match.Date)
	}
	paragraph.WriteString(".")
	if match.HomeScore != nil && match.AwayScore != nil {
		fmt.Fprintf(&paragraph, " The match finished %d-%d.", *match.HomeScore, *match.AwayScore)
	} else if match.Status != "" {
		fmt.Fprintf(&paragraph, " Current status: %s.", match.Status)
	}
	if p := match.Probabilities; p != nil {
		fmt.Fprintf(&paragraph, " Estimated outcome probabilities: %s %.0f%%, draw %.0f%%, %s %.0f%%.",
			home, p.Home*100, p.Draw*100, away, p.Away*100)
	}

	bullets := []string{fmt.Sprintf("Fixture: %s vs %s", home, away)}
	if match.League != "" {
		bullets = append(bullets, "Competition: "+match.League)
	}
	if match.Date != "" {
		bullets = append(bullets, "Date: "+match.Date)
	}
	if match.Status != "" {
		bullets = append(bullets, "Status: "+match.Status)
	}

	return Brief{
		Headline:     headline,
		OneParagraph: paragraph.String(),
		Bullets:      bullets,
		Source:       "template",
	}
}

func orUnknown(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
