package apimodels

// Severity levels assigned by the analysis pipeline.
const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
	SeverityMedium   = "MEDIUM"
	SeverityLow      = "LOW"
	SeverityInfo     = "INFO"
	SeverityUnknown  = "UNKNOWN"
)

var severityLevels = map[string]bool{
	SeverityCritical: true,
	SeverityHigh:     true,
	SeverityMedium:   true,
	SeverityLow:      true,
	SeverityInfo:     true,
	SeverityUnknown:  true,
}

// ValidSeverity reports whether s is one of the fixed severity levels.
func ValidSeverity(s string) bool {
	return severityLevels[s]
}

// SearchSource is a single threat-intelligence search result.
type SearchSource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// FollowUpAction records one tool invocation made by the summarization pass.
type FollowUpAction struct {
	Tool        string `json:"tool"`
	ToolInput   string `json:"tool_input"`
	Observation string `json:"observation"`
}

// AnomalyData carries the machine-readable output of the anomaly pass.
// Confidence here is a percentage derived from score/threshold and is
// unrelated to the record's ConfidenceScore, which the language model
// assigns to its own assessment.
type AnomalyData struct {
	AnomalyScore float64 `json:"anomaly_score"`
	IsAnomaly    bool    `json:"is_anomaly"`
	Threshold    float64 `json:"threshold"`
	Confidence   float64 `json:"confidence"`
}

// AnalysisRecord is the structured result of analyzing one log.
// It is assembled field by field as the pipeline runs and never mutated
// after being returned.
type AnalysisRecord struct {
	ID string `json:"id"`

	ThreatType      string  `json:"threat_type"`
	Severity        string  `json:"severity"`
	ConfidenceScore float64 `json:"confidence_score"`
	Explanation     string  `json:"explanation"`

	IndicatorsOfCompromise []string `json:"indicators_of_compromise"`
	RecommendedActions     []string `json:"recommended_actions"`

	// RawAnalysis is the verbatim completion the fields above were parsed
	// from, retained for audit.
	RawAnalysis string `json:"raw_analysis,omitempty"`

	SearchQuery   string         `json:"search_query,omitempty"`
	SearchSources []SearchSource `json:"search_sources"`

	Anomaly *AnomalyData `json:"anomaly,omitempty"`

	ExecutiveSummary string           `json:"executive_summary,omitempty"`
	FollowUpActions  []FollowUpAction `json:"followup_actions"`

	Error string `json:"error,omitempty"`

	Duration string `json:"duration,omitempty"`
}

// HealthResponse reports the readiness of the service and its upstreams.
type HealthResponse struct {
	Status         string `json:"status"`
	LLMURL         string `json:"llm_url"`
	BertURL        string `json:"bert_url"`
	BertHealthy    bool   `json:"bert_healthy"`
	SearchProvider string `json:"search_provider"`
	Version        string `json:"version"`
}
