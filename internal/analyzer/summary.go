package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sentinelops/logsage/apimodels"
)

var (
	summaryRe  = regexp.MustCompile(`(?is)SUMMARY:\s*(.+?)(?:TOOL_CALLS:|$)`)
	toolCallRe = regexp.MustCompile(`(?i)TOOL:\s*(\w+)\s+INPUT:\s*`)
)

// summarize runs the second completion pass over an already-parsed record:
// it asks for an executive summary, scans the response for optional tool
// invocations, and executes any recognized ones. A failed completion
// degrades to a synthetic summary and no actions; it never invalidates the
// record the caller built.
func (a *Analyzer) summarize(ctx context.Context, rec *apimodels.AnalysisRecord, logText string) (string, []apimodels.FollowUpAction) {
	actions := rec.RecommendedActions
	if len(actions) > 3 {
		actions = actions[:3]
	}

	prompt := buildSummaryPrompt(
		rec.ThreatType,
		rec.Severity,
		rec.ConfidenceScore,
		head(rec.Explanation, 500),
		actions,
		head(logText, 300),
		a.registry.Catalogue(),
	)

	out, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Error("summarization pass failed", "error", err)
		return fmt.Sprintf("Summary generation skipped due to error: %v", err), []apimodels.FollowUpAction{}
	}

	summary := head(out, 500)
	if m := summaryRe.FindStringSubmatch(out); m != nil {
		summary = strings.TrimSpace(m[1])
	}

	return summary, a.runToolCalls(ctx, out)
}

// runToolCalls scans the summarization response for TOOL/INPUT blocks and
// invokes each recognized tool. Per-call failures are recorded as the
// action's observation; unrecognized tool names are skipped.
func (a *Analyzer) runToolCalls(ctx context.Context, response string) []apimodels.FollowUpAction {
	followups := []apimodels.FollowUpAction{}

	markers := toolCallRe.FindAllStringSubmatchIndex(response, -1)
	for i, m := range markers {
		name := response[m[2]:m[3]]

		// The input runs from the end of this marker to the next marker,
		// a "---" terminator, or end of text.
		inputEnd := len(response)
		if i+1 < len(markers) {
			inputEnd = markers[i+1][0]
		}
		input := response[m[1]:inputEnd]
		if sep := strings.Index(input, "---"); sep != -1 {
			input = input[:sep]
		}
		input = strings.TrimSpace(input)

		tool, ok := a.registry.Get(name)
		if !ok {
			slog.Warn("summarization pass requested unknown tool", "tool", name)
			continue
		}

		slog.Info("summarization pass invoking tool", "tool", name, "input", head(input, 100))
		observation, err := tool.Run(ctx, input)
		if err != nil {
			slog.Warn("tool call failed", "tool", name, "error", err)
			observation = fmt.Sprintf("Error: %v", err)
		}

		followups = append(followups, apimodels.FollowUpAction{
			Tool:        name,
			ToolInput:   input,
			Observation: observation,
		})
	}

	return followups
}
