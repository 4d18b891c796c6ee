package apimodels

// AnalysisRequest is the body of POST /api/analyze.
type AnalysisRequest struct {
	// LogText is the log content to analyze.
	LogText string `json:"log_text"`

	// UseSearch controls whether the pipeline augments the analysis with
	// threat-intelligence search.
	UseSearch bool `json:"use_brave_search"`
}
