// Package intel provides threat-intelligence search clients. Both backends
// degrade to empty result sets on failure; a missing search result is never
// fatal to an analysis.
package intel

import (
	"context"
	"fmt"
	"strings"

	"github.com/sentinelops/logsage/apimodels"
	"github.com/sentinelops/logsage/internal/config"
)

const maxResults = 5

// Searcher is a threat-intelligence backend. It doubles as a registry tool
// for the summarization pass.
type Searcher interface {
	Name() string
	Description() string
	Search(ctx context.Context, query string) []apimodels.SearchSource
	Format(query string, results []apimodels.SearchSource) string
	Run(ctx context.Context, query string) (string, error)
}

// NewSearcher selects a backend from configuration. Anything other than
// "brave" gets the keyless DuckDuckGo backend.
func NewSearcher(cfg *config.SearchConfig) Searcher {
	if strings.EqualFold(cfg.Provider, "brave") {
		return NewBrave(cfg.BraveAPIKey)
	}
	return NewDuckDuckGo()
}

// formatResults renders search results as a numbered block for prompt
// inclusion.
func formatResults(provider, query string, results []apimodels.SearchSource) string {
	if len(results) == 0 {
		return fmt.Sprintf("No threat intelligence found for query: %s", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s Threat Intelligence Results for: %q\n", provider, query)
	b.WriteString(strings.Repeat("=", 70) + "\n\n")
	fmt.Fprintf(&b, "Found %d relevant sources:\n\n", len(results))

	for i, r := range results {
		fmt.Fprintf(&b, "[%d] %s\n    URL: %s\n    Summary: %s\n\n", i+1, r.Title, r.URL, r.Snippet)
	}

	b.WriteString(strings.Repeat("=", 70) + "\n")
	b.WriteString("Use this threat intelligence to enhance your analysis of the log.\n")
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
