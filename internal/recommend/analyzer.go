package recommend

import (
	"strings"

	"meal-recommender/internal/profile"
)

// proteinVocabulary holds the lexical protein terms scanned for in recipe
// names. Matching is case-insensitive and purely name-based.
var proteinVocabulary = []string{
	"tofu", "chicken", "lentil", "chickpea", "beef", "fish",
	"seitan", "tempeh", "pork", "turkey", "shrimp", "salmon",
	"tuna", "egg", "bean", "paneer", "lamb",
}

// AnalyzerOptions tunes history analysis.
type AnalyzerOptions struct {
	// ExclusionWindow is the number of most recent meal names to exclude
	// from regeneration.
	ExclusionWindow int

	// RepetitionThreshold is the repetition rate at or above which the
	// history is treated as highly repetitive.
	RepetitionThreshold float64

	// DominantShare is the cuisine share above which a single cuisine is
	// considered dominant when deciding the medium-variety directive.
	DominantShare float64
}

func (o *AnalyzerOptions) setDefaults() {
	if o.ExclusionWindow <= 0 {
		o.ExclusionWindow = 5
	}
	if o.RepetitionThreshold <= 0 {
		o.RepetitionThreshold = 0.2
	}
	if o.DominantShare <= 0 {
		o.DominantShare = 0.6
	}
}

// Analyze derives variety and novelty signals from a preference record's meal
// history. It is a pure function over the record; the same record always
// yields the same context.
func Analyze(rec *profile.Record, opts AnalyzerOptions) Context {
	opts.setDefaults()

	history := rec.MealHistory
	ctx := Context{
		TotalEntries:  len(history),
		CuisineCounts: map[string]int{},
		CuisineShares: map[string]float64{},
		ProteinCounts: map[string]int{},
	}

	for _, entry := range history {
		cuisine := strings.ToLower(strings.TrimSpace(entry.Cuisine))
		if cuisine != "" {
			ctx.CuisineCounts[cuisine]++
		}
		name := strings.ToLower(entry.RecipeName)
		for _, protein := range proteinVocabulary {
			if strings.Contains(name, protein) {
				ctx.ProteinCounts[protein]++
			}
		}
	}

	// Shares are over all entries, so entries without a cuisine still dilute
	// every share and the shares need not sum to 1.
	if len(history) > 0 {
		for cuisine, count := range ctx.CuisineCounts {
			ctx.CuisineShares[cuisine] = float64(count) / float64(len(history))
		}
	}

	ctx.RepetitionRate = repetitionRate(history)
	ctx.HighRepetition = len(history) > 0 && ctx.RepetitionRate >= opts.RepetitionThreshold

	ctx.Exclusions = recentNames(history, opts.ExclusionWindow)
	ctx.GapCuisines = gapCuisines(rec.PlanPreferences.CuisinePreferences, ctx.CuisineCounts)
	ctx.Assessment = assess(rec.PlanPreferences.Variety, ctx, opts)

	return ctx
}

// repetitionRate returns the fraction of entries whose normalized recipe name
// appears more than once in the history.
func repetitionRate(history []profile.HistoryEntry) float64 {
	if len(history) == 0 {
		return 0
	}
	counts := make(map[string]int, len(history))
	for _, entry := range history {
		counts[strings.ToLower(strings.TrimSpace(entry.RecipeName))]++
	}
	repeated := 0
	for _, n := range counts {
		if n > 1 {
			repeated += n
		}
	}
	return float64(repeated) / float64(len(history))
}

// recentNames returns the recipe names of the first window entries. History
// is stored newest-first, so these are the most recent meals in recency
// order.
func recentNames(history []profile.HistoryEntry, window int) []string {
	if window > len(history) {
		window = len(history)
	}
	names := make([]string, 0, window)
	for _, entry := range history[:window] {
		names = append(names, entry.RecipeName)
	}
	return names
}

// gapCuisines returns configured preferences with no occurrence in the
// history, preserving the user's order and spelling.
func gapCuisines(preferences []string, counts map[string]int) []string {
	var gaps []string
	for _, pref := range preferences {
		if counts[strings.ToLower(strings.TrimSpace(pref))] == 0 {
			gaps = append(gaps, pref)
		}
	}
	return gaps
}

func assess(variety profile.Variety, ctx Context, opts AnalyzerOptions) Assessment {
	if ctx.TotalEntries == 0 {
		return AssessIntroduceVariety
	}
	switch variety {
	case profile.VarietyLow:
		return AssessStayClose
	case profile.VarietyMedium:
		for _, share := range ctx.CuisineShares {
			if share > opts.DominantShare {
				return AssessNewCategories
			}
		}
		return AssessBalance
	default:
		return AssessNewCategories
	}
}
