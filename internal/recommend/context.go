package recommend

// Assessment describes how strongly the next generation should steer toward
// novelty. Values double as the human-readable phrases used in prompts.
type Assessment string

const (
	// AssessIntroduceVariety is the default with no history to anchor against.
	AssessIntroduceVariety Assessment = "introduce variety"
	// AssessNewCategories pushes toward cuisines and ingredients not seen recently.
	AssessNewCategories Assessment = "introduce new categories"
	// AssessBalance mixes familiar favorites with occasional novelty.
	AssessBalance Assessment = "balance familiar and new"
	// AssessStayClose keeps recommendations near established favorites.
	AssessStayClose Assessment = "stay close to favorites"
)

// Context carries the variety and novelty signals derived from a user's meal
// history. It is ephemeral: computed per request, never persisted.
type Context struct {
	// TotalEntries is the size of the analyzed history window.
	TotalEntries int

	// CuisineCounts maps lowercased cuisine names to occurrence counts.
	// Entries without a cuisine count toward TotalEntries but are not
	// attributed to any cuisine.
	CuisineCounts map[string]int

	// CuisineShares maps lowercased cuisine names to count/TotalEntries.
	CuisineShares map[string]float64

	// ProteinCounts maps protein vocabulary terms found in recipe names to
	// occurrence counts. Best-effort lexical signal; absence means unknown.
	ProteinCounts map[string]int

	// RepetitionRate is the fraction of entries whose normalized recipe name
	// duplicates another entry's name.
	RepetitionRate float64

	// HighRepetition is set when RepetitionRate crossed the configured
	// threshold, used to escalate the novelty directive.
	HighRepetition bool

	// Assessment is the variety directive derived from the user's variety
	// setting and the current diversity of their history.
	Assessment Assessment

	// Exclusions holds the recipe names of the most recent K entries, in
	// recency order. These must never be regenerated verbatim.
	Exclusions []string

	// GapCuisines lists configured cuisine preferences absent from the
	// history window, order-preserving. Candidates for novelty.
	GapCuisines []string
}
