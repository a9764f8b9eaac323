package entity

// ProtocolSummary is the structured output of the summary generation
// provider. Nothing here is persisted; the caller decides whether to store
// the summary on the audit record.
type ProtocolSummary struct {
	Summary         string   `json:"summary"`
	KeyFindings     []string `json:"keyFindings"`
	Recommendations []string `json:"recommendations"`
}
