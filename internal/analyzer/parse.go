package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sentinelops/logsage/apimodels"
)

// The completion is expected to contain bold-marked section labels, but the
// generator's output format is not guaranteed. Each field is therefore
// extracted by its own pattern and defaults independently when its label is
// missing or malformed.
var (
	threatTypeRe  = regexp.MustCompile(`(?i)\*\*THREAT TYPE\*\*:?\s*(.+?)(?:\n|$)`)
	severityRe    = regexp.MustCompile(`(?i)\*\*SEVERITY LEVEL\*\*:?\s*(\w+)`)
	confidenceRe  = regexp.MustCompile(`(?i)\*\*CONFIDENCE SCORE\*\*:?\s*([\d.]+)`)
	explanationRe = regexp.MustCompile(`(?is)\*\*DETAILED EXPLANATION\*\*:?\s*(.+?)(?:\*\*|$)`)
	iocRe         = regexp.MustCompile(`(?is)\*\*INDICATORS OF COMPROMISE\*\*:?\s*(.+?)(?:\*\*|$)`)
	actionsRe     = regexp.MustCompile(`(?is)\*\*RECOMMENDED ACTIONS\*\*:?\s*(.+?)(?:\*\*|$)`)

	ordinalRe = regexp.MustCompile(`^\d+\.?\s*`)
)

// parsed holds the fields recovered from one completion. Zero extraction
// still yields usable defaults.
type parsed struct {
	ThreatType      string
	Severity        string
	ConfidenceScore float64
	Explanation     string
	IOCs            []string
	Actions         []string
}

// parseAnalysis extracts the six labeled sections from raw. It never fails;
// any field whose label is absent keeps its default (the explanation
// defaults to the entire completion).
func parseAnalysis(raw string) parsed {
	p := parsed{
		ThreatType:      "Unknown",
		Severity:        apimodels.SeverityUnknown,
		ConfidenceScore: 0.5,
		Explanation:     raw,
		IOCs:            []string{},
		Actions:         []string{},
	}

	if m := threatTypeRe.FindStringSubmatch(raw); m != nil {
		p.ThreatType = strings.TrimSpace(m[1])
	}

	if m := severityRe.FindStringSubmatch(raw); m != nil {
		p.Severity = normalizeSeverity(m[1])
	}

	if m := confidenceRe.FindStringSubmatch(raw); m != nil {
		// Deliberately not clamped to [0,1]; the value is surfaced as the
		// model produced it.
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.ConfidenceScore = v
		}
	}

	if m := explanationRe.FindStringSubmatch(raw); m != nil {
		p.Explanation = strings.TrimSpace(m[1])
	}

	if m := iocRe.FindStringSubmatch(raw); m != nil {
		p.IOCs = splitListBlock(m[1], false)
	}

	if m := actionsRe.FindStringSubmatch(raw); m != nil {
		p.Actions = splitListBlock(m[1], true)
	}

	return p
}

// normalizeSeverity upper-cases the parsed token and degrades anything
// outside the fixed level set to UNKNOWN.
func normalizeSeverity(tok string) string {
	s := strings.ToUpper(strings.TrimSpace(tok))
	if !apimodels.ValidSeverity(s) {
		return apimodels.SeverityUnknown
	}
	return s
}

// splitListBlock turns a labeled block into list items: one item per line,
// leading ordinals (when stripOrdinals is set) and bullet dashes removed,
// blank lines dropped.
func splitListBlock(block string, stripOrdinals bool) []string {
	items := []string{}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if stripOrdinals {
			line = ordinalRe.ReplaceAllString(line, "")
		}
		line = strings.Trim(line, "- ")
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}
