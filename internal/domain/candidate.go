package domain

// Candidate is a transient, unpersisted activity record produced by the
// content extractor or the fallback generator and consumed by the planner.
// Price and Duration stay as the raw source text — the planner owns parsing
// them into a cost and a duration in minutes. Rating and Reviews are
// normalized to numbers by whichever component produced the candidate.
type Candidate struct {
	Title       string
	Description string
	Price       string // raw, e.g. "€ 45,50"
	Rating      float64
	Reviews     int
	Duration    string // raw, e.g. "2 uur" or "90 minuten"
	Category    string
	SourceURL   string // empty for synthetic candidates
	ImageURL    string // empty for synthetic candidates
}
