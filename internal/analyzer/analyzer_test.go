package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelops/logsage/apimodels"
)

const summaryCompletion = "SUMMARY: Brute-force attempt against SSH; block the source.\nTOOL_CALLS: NONE"

func TestAnalyzeEndToEndSearchDisabled(t *testing.T) {
	completer := &scriptedCompleter{script: []string{fullCompletion, summaryCompletion}}
	searcher := &stubSearcher{results: []apimodels.SearchSource{{Title: "should not be used"}}}
	a := newTestAnalyzer(completer, okDetector(), searcher)

	rec := a.Analyze(context.Background(), "Failed password for admin from 203.0.113.42 port 55892 ssh2", false)

	require.NotNil(t, rec)
	assert.Empty(t, rec.Error)
	assert.NotEmpty(t, rec.ID)
	assert.NotEmpty(t, rec.Explanation)
	assert.True(t, apimodels.ValidSeverity(rec.Severity))
	assert.Equal(t, []apimodels.SearchSource{}, rec.SearchSources)
	assert.Empty(t, rec.SearchQuery)
	assert.Empty(t, searcher.queries, "search must not run when disabled")
	assert.Equal(t, fullCompletion, rec.RawAnalysis)
	assert.Equal(t, "Brute-force attempt against SSH; block the source.", rec.ExecutiveSummary)

	require.NotNil(t, rec.Anomaly)
	assert.Equal(t, 12.3, rec.Anomaly.AnomalyScore)
	assert.True(t, rec.Anomaly.IsAnomaly)
	// The anomaly confidence is a percentage; the record confidence came
	// from the completion. They are different values from different stages.
	assert.Equal(t, 100.0, rec.Anomaly.Confidence)
	assert.Equal(t, 0.85, rec.ConfidenceScore)
}

func TestAnalyzeWithSearchCapturesProvenance(t *testing.T) {
	completer := &scriptedCompleter{script: []string{
		"SSH brute force attack indicators", // keyword extraction
		fullCompletion,                      // main analysis
		summaryCompletion,                   // summarization pass
	}}
	searcher := &stubSearcher{results: []apimodels.SearchSource{
		{Title: "NVD advisory", URL: "https://nvd.nist.gov", Snippet: "details"},
	}}
	a := newTestAnalyzer(completer, okDetector(), searcher)

	rec := a.Analyze(context.Background(), "Failed password for admin", true)

	assert.Equal(t, "SSH brute force attack indicators", rec.SearchQuery)
	require.Len(t, rec.SearchSources, 1)
	assert.Equal(t, "NVD advisory", rec.SearchSources[0].Title)

	// The threat-intel block must make it into the analysis prompt.
	require.GreaterOrEqual(t, len(completer.prompts), 2)
	assert.Contains(t, completer.prompts[1], "intel block for SSH brute force attack indicators")
}

func TestAnalyzeSkipsSearchWithoutUsableQuery(t *testing.T) {
	completer := &scriptedCompleter{script: []string{
		"n/a", // too short, and the log matches no fallback pattern
		fullCompletion,
		summaryCompletion,
	}}
	searcher := &stubSearcher{}
	a := newTestAnalyzer(completer, okDetector(), searcher)

	rec := a.Analyze(context.Background(), "user alice logged out", true)

	assert.Empty(t, rec.Error)
	assert.Empty(t, rec.SearchQuery)
	assert.Equal(t, []apimodels.SearchSource{}, rec.SearchSources)
	assert.Empty(t, searcher.queries)
}

func TestAnalyzeDegradedAnomalyStillCompletes(t *testing.T) {
	completer := &scriptedCompleter{script: []string{fullCompletion, summaryCompletion}}
	a := newTestAnalyzer(completer, failedDetector(), nil)

	rec := a.Analyze(context.Background(), "Failed password for admin", false)

	assert.Empty(t, rec.Error)
	assert.Nil(t, rec.Anomaly)
	assert.Equal(t, "Brute Force Attack", rec.ThreatType)

	// The prompt carries the degraded block rather than detection results.
	require.NotEmpty(t, completer.prompts)
	assert.Contains(t, completer.prompts[0], "Unable to perform anomaly detection")
}

func TestAnalyzeCompletionFailureYieldsDefaults(t *testing.T) {
	completer := &scriptedCompleter{} // every call errors
	a := newTestAnalyzer(completer, okDetector(), nil)

	rec := a.Analyze(context.Background(), "Failed password for admin", false)

	// Not an error record: the pipeline degrades per field instead.
	assert.Empty(t, rec.Error)
	assert.Equal(t, "Unknown", rec.ThreatType)
	assert.Equal(t, apimodels.SeverityUnknown, rec.Severity)
	assert.Equal(t, 0.5, rec.ConfidenceScore)
	assert.Contains(t, rec.Explanation, "Error:")
	assert.Contains(t, rec.ExecutiveSummary, "Summary generation skipped")
	assert.Equal(t, []apimodels.FollowUpAction{}, rec.FollowUpActions)
}

func TestAnalyzeSummarizationFailureKeepsParsedFields(t *testing.T) {
	// Main analysis succeeds, then the script runs out and the
	// summarization call errors.
	completer := &scriptedCompleter{script: []string{fullCompletion}}
	a := newTestAnalyzer(completer, okDetector(), nil)

	rec := a.Analyze(context.Background(), "Failed password for admin", false)

	assert.Equal(t, "Brute Force Attack", rec.ThreatType)
	assert.Equal(t, apimodels.SeverityHigh, rec.Severity)
	assert.NotEmpty(t, rec.ExecutiveSummary)
	assert.Equal(t, []apimodels.FollowUpAction{}, rec.FollowUpActions)
}

func TestAnalyzePanicProducesErrorRecord(t *testing.T) {
	completer := &scriptedCompleter{panics: true}
	a := newTestAnalyzer(completer, okDetector(), nil)

	rec := a.Analyze(context.Background(), "anything", false)

	require.NotNil(t, rec)
	assert.Equal(t, "Analysis Error", rec.ThreatType)
	assert.Equal(t, apimodels.SeverityUnknown, rec.Severity)
	assert.Equal(t, 0.0, rec.ConfidenceScore)
	assert.Contains(t, rec.Explanation, "completer exploded")
	assert.Equal(t, []string{"Review error logs", "Retry analysis"}, rec.RecommendedActions)
	assert.NotEmpty(t, rec.Error)
}

func TestAnalyzeTruncatesLongLogs(t *testing.T) {
	completer := &scriptedCompleter{script: []string{fullCompletion, summaryCompletion}}
	tool := newTestAnalyzer(completer, okDetector(), nil)
	tool.maxLogLength = 50

	long := strings.Repeat("x", 500)
	tool.Analyze(context.Background(), long, false)

	require.NotEmpty(t, completer.prompts)
	assert.NotContains(t, completer.prompts[0], strings.Repeat("x", 51))
	assert.Contains(t, completer.prompts[0], strings.Repeat("x", 50))
}
