package domain

// Recommendation pairs a card with the score and justifications produced by
// one scoring pass. Ephemeral: rebuilt from scratch on every pass, ordered
// by descending score with the original pool order as tiebreak.
type Recommendation struct {
	Card    Card     `json:"card"`
	Score   int      `json:"score"` // soft 0-100 budget, not clamped
	Reasons []string `json:"reasons"`
}
