// Package analyzer sequences the anomaly, search, and completion services
// into a fixed pipeline and parses the completion into a typed record.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sentinelops/logsage/apimodels"
	"github.com/sentinelops/logsage/internal/anomaly"
	"github.com/sentinelops/logsage/internal/intel"
	"github.com/sentinelops/logsage/internal/llm"
	"github.com/sentinelops/logsage/internal/tools"
)

type Analyzer struct {
	llm      llm.Completer
	anomaly  *anomaly.Tool
	search   intel.Searcher
	registry *tools.Registry

	maxLogLength int
}

func New(completer llm.Completer, anomalyTool *anomaly.Tool, searcher intel.Searcher, maxLogLength int) *Analyzer {
	registry := tools.NewRegistry(anomalyTool, searcher)

	return &Analyzer{
		llm:          completer,
		anomaly:      anomalyTool,
		search:       searcher,
		registry:     registry,
		maxLogLength: maxLogLength,
	}
}

// Analyze runs the full pipeline over logText and returns a complete
// record. It never returns an error: any panic out of the pipeline is
// caught at this single boundary and converted into an error record with
// every other field defaulted.
func (a *Analyzer) Analyze(ctx context.Context, logText string, useSearch bool) (rec *apimodels.AnalysisRecord) {
	start := time.Now()
	id := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("analysis pipeline panicked", "id", id, "cause", r)
			rec = errorRecord(id, fmt.Sprintf("%v", r), time.Since(start))
		}
	}()

	slog.Info("Starting analysis", "id", id, "log_chars", len(logText), "use_search", useSearch)

	if len(logText) > a.maxLogLength {
		logText = logText[:a.maxLogLength]
		slog.Warn("log truncated", "max_length", a.maxLogLength)
	}

	// Step 1: anomaly detection. One call produces both the prompt block
	// and the machine-readable summary; a failed detection degrades the
	// block, never the pipeline.
	anomalyBlock, anomalyData := a.anomaly.Analyze(ctx, logText)

	// Step 2: optional threat-intel augmentation. No usable query means
	// search is skipped, which is not an error.
	var (
		searchQuery string
		sources     = []apimodels.SearchSource{}
		intelBlock  string
	)
	if useSearch {
		searchQuery = a.extractKeywords(ctx, logText, anomalyBlock)
		if searchQuery != "" {
			slog.Info("searching threat intelligence", "id", id, "query", searchQuery)
			sources = append(sources, a.search.Search(ctx, searchQuery)...)
			if len(sources) > 0 {
				intelBlock = a.search.Format(searchQuery, sources)
			}
			slog.Info("threat intelligence gathered", "id", id, "sources", len(sources))
		} else {
			slog.Debug("no search query derived, skipping threat intel", "id", id)
		}
	}

	// Steps 3-4: assemble the prompt and get the completion. Completion
	// failures surface as an in-band error string that the parser will not
	// match, leaving every field at its default.
	prompt := buildAnalysisPrompt(logText, anomalyBlock, intelBlock)
	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Error("analysis completion failed", "id", id, "error", err)
		raw = fmt.Sprintf("Error: completion failed: %v", err)
	}

	// Step 5: parse the completion into the typed record.
	p := parseAnalysis(raw)
	rec = &apimodels.AnalysisRecord{
		ID:                     id,
		ThreatType:             p.ThreatType,
		Severity:               p.Severity,
		ConfidenceScore:        p.ConfidenceScore,
		Explanation:            p.Explanation,
		IndicatorsOfCompromise: p.IOCs,
		RecommendedActions:     p.Actions,
		RawAnalysis:            raw,
		SearchQuery:            searchQuery,
		SearchSources:          sources,
		Anomaly:                anomalyData,
		FollowUpActions:        []apimodels.FollowUpAction{},
	}

	// Step 6: summarization pass. Its failure degrades the summary only;
	// everything parsed above stays intact.
	rec.ExecutiveSummary, rec.FollowUpActions = a.summarize(ctx, rec, logText)

	rec.Duration = time.Since(start).String()
	slog.Info("Analysis complete", "id", id, "threat_type", rec.ThreatType, "severity", rec.Severity, "duration", rec.Duration)
	return rec
}

// errorRecord is the single recovery product of the pipeline: every field
// defaulted, the failure carried in Explanation and Error.
func errorRecord(id, cause string, elapsed time.Duration) *apimodels.AnalysisRecord {
	return &apimodels.AnalysisRecord{
		ID:                     id,
		ThreatType:             "Analysis Error",
		Severity:               apimodels.SeverityUnknown,
		ConfidenceScore:        0.0,
		Explanation:            fmt.Sprintf("Error during analysis: %s", cause),
		IndicatorsOfCompromise: []string{},
		RecommendedActions:     []string{"Review error logs", "Retry analysis"},
		SearchSources:          []apimodels.SearchSource{},
		FollowUpActions:        []apimodels.FollowUpAction{},
		Error:                  cause,
		Duration:               elapsed.String(),
	}
}

// Registry exposes the tool registry, mainly so callers can describe the
// agent's capabilities.
func (a *Analyzer) Registry() *tools.Registry {
	return a.registry
}
