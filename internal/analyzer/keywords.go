package analyzer

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

const (
	maxQueryLen    = 100
	minQueryLen    = 10
	logExcerptLen  = 500
	anomalyExcerpt = 200
)

// Attack-pattern table used when the model yields no usable query.
var fallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(SQL injection|XSS|command injection)`),
	regexp.MustCompile(`(?i)(brute force|password attack)`),
	regexp.MustCompile(`(?i)(ransomware|malware|trojan)`),
	regexp.MustCompile(`(?i)(CVE-\d{4}-\d{4,7})`),
}

// extractKeywords derives a short threat-intel search query from the log
// and the anomaly block. The model is asked first; if it errors or returns
// something too short, the fixed pattern table takes over. An empty return
// means search should be skipped entirely.
func (a *Analyzer) extractKeywords(ctx context.Context, logText, anomalyBlock string) string {
	prompt := buildKeywordPrompt(head(logText, logExcerptLen), head(anomalyBlock, anomalyExcerpt))

	out, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Warn("keyword extraction via model failed", "error", err)
	} else {
		keywords := collapseWhitespace(out)
		keywords = strings.TrimSpace(head(keywords, maxQueryLen))
		if len(keywords) > minQueryLen {
			return keywords
		}
		slog.Debug("model keywords too short, using fallback", "keywords", keywords)
	}

	return fallbackKeywords(logText)
}

// fallbackKeywords scans the log for known attack-pattern substrings and
// CVE identifiers, joining up to three matches. When nothing matches, three
// coarse heuristics take one more shot before giving up.
func fallbackKeywords(logText string) string {
	var keywords []string
	for _, re := range fallbackPatterns {
		for _, m := range re.FindAllStringSubmatch(logText, -1) {
			keywords = append(keywords, m[1])
			if len(keywords) == 3 {
				return strings.Join(keywords, " ")
			}
		}
	}
	if len(keywords) > 0 {
		return strings.Join(keywords, " ")
	}

	lower := strings.ToLower(logText)
	switch {
	case strings.Contains(lower, "failed") && (strings.Contains(lower, "password") || strings.Contains(lower, "login")):
		return "SSH authentication failure brute force"
	case strings.Contains(lower, "unauthorized"):
		return "unauthorized access attempt"
	case strings.Contains(lower, "injection"):
		return "code injection attack"
	}
	return ""
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.TrimSpace(s)
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
