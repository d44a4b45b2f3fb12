package analyses

// Result is the normalized scoring response the whole API is built around.
type Result struct {
	MatchPercent    int      `json:"matchPercent"`
	MissingKeywords []string `json:"missingKeywords"`
	ProfileSummary  string   `json:"profileSummary"`
}
