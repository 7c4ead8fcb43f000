package recommend

import (
	"context"
	"fmt"
	"time"

	"meal-recommender/internal/llm"
	"meal-recommender/internal/meal"
	"meal-recommender/internal/profile"
	"meal-recommender/internal/shared"
)

const agentName = "Recommender"

// RecordStore fetches preference records. Satisfied by profile.Repository.
type RecordStore interface {
	GetRecord(ctx context.Context, userID string) (*profile.Record, error)
}

// Options configures a Recommender.
type Options struct {
	ExclusionWindow     int
	RepetitionThreshold float64
	PromptCharBudget    int
	Params              llm.GenerationParams
}

// Recommender runs the full pipeline: fetch record, analyze history, compose
// prompt, invoke the model once, parse the reply.
type Recommender struct {
	store   RecordStore
	textGen llm.TextGenerator
	opts    Options
}

func New(store RecordStore, textGen llm.TextGenerator, opts Options) *Recommender {
	return &Recommender{
		store:   store,
		textGen: textGen,
		opts:    opts,
	}
}

// GenerateForUser fetches the user's record and generates one meal for it.
// Store misses surface as profile.ErrNotFound.
func (r *Recommender) GenerateForUser(ctx context.Context, userID string) (*meal.Meal, shared.AgentMeta, error) {
	rec, err := r.store.GetRecord(ctx, userID)
	if err != nil {
		return nil, shared.AgentMeta{AgentName: agentName}, err
	}
	return r.Generate(ctx, rec)
}

// Generate runs the pipeline against an already-fetched record. The record is
// treated as a read-only snapshot; history updates are the caller's job via
// HistoryEntryFor.
//
// The prompt is composed before the model is invoked, so a ValidationError
// costs zero model calls.
func (r *Recommender) Generate(ctx context.Context, rec *profile.Record) (*meal.Meal, shared.AgentMeta, error) {
	start := time.Now()
	meta := shared.AgentMeta{AgentName: agentName}

	enriched := Analyze(rec, AnalyzerOptions{
		ExclusionWindow:     r.opts.ExclusionWindow,
		RepetitionThreshold: r.opts.RepetitionThreshold,
	})

	prompt, err := Compose(rec, enriched, ComposerOptions{CharBudget: r.opts.PromptCharBudget})
	if err != nil {
		return nil, meta, err
	}

	resp, err := r.textGen.GenerateContent(ctx, prompt, r.opts.Params)
	if err != nil {
		return nil, meta, fmt.Errorf("generate meal for %s: %w", rec.UserID, err)
	}
	meta.Usage = resp.Usage

	parsed, err := meal.Parse(resp.Content)
	if err != nil {
		meta.Latency = time.Since(start)
		return nil, meta, fmt.Errorf("parse meal for %s: %w", rec.UserID, err)
	}

	meta.Latency = time.Since(start)
	return parsed, meta, nil
}
