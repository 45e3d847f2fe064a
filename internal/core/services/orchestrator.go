package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/domain"
	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
)

// enrichConcurrency caps in-flight song enrichments per request so a batch
// cannot overwhelm upstream rate limits.
const enrichConcurrency = 5

// ErrEmptyMood is returned when a recommendation request carries no mood.
var ErrEmptyMood = errors.New("service: mood is required")

// Orchestrator runs one recommendation request end to end: prompt, model
// call, parse, enrichment.
type Orchestrator struct {
	model    ports.ModelProvider
	enricher *Enricher
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(model ports.ModelProvider, enricher *Enricher) *Orchestrator {
	return &Orchestrator{
		model:    model,
		enricher: enricher,
	}
}

// Recommend produces an enriched recommendation for the request. Model and
// parse failures surface as typed errors (ports.ErrModelUnavailable,
// *ParseError); the pipeline is never retried as a whole. Song order from
// the model is preserved through concurrent enrichment.
func (o *Orchestrator) Recommend(ctx context.Context, req domain.RecommendationRequest) (domain.RecommendationResult, error) {
	if strings.TrimSpace(req.Mood) == "" {
		return domain.RecommendationResult{}, ErrEmptyMood
	}

	prompt := BuildPrompt(req.Mood, req.Hour)

	raw, err := o.model.Generate(ctx, prompt)
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("service: generate recommendation: %w", err)
	}

	parsed, err := ParseRecommendation(raw)
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("service: %w", err)
	}

	songs := make([]domain.EnrichedSong, len(parsed.Songs))
	sem := make(chan struct{}, enrichConcurrency)
	var wg sync.WaitGroup
	for i, s := range parsed.Songs {
		wg.Add(1)
		go func(i int, s domain.SongSuggestion) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			songs[i] = o.enricher.Enrich(ctx, s)
		}(i, s)
	}
	wg.Wait()

	return domain.RecommendationResult{
		Cuisine:     parsed.Cuisine,
		Songs:       songs,
		Explanation: parsed.Explanation,
	}, nil
}
