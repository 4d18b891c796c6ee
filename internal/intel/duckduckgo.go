package intel

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sentinelops/logsage/apimodels"
)

const ddgEndpoint = "https://api.duckduckgo.com/"

// DuckDuckGo searches the DuckDuckGo instant-answer API. No API key
// required, which makes it the default backend.
type DuckDuckGo struct {
	endpoint string
	http     *http.Client
}

func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		endpoint: ddgEndpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo_threat_intelligence" }

func (d *DuckDuckGo) Description() string {
	return "Searches for real-time cybersecurity threat intelligence, CVE information, " +
		"attack patterns, and security advisories using DuckDuckGo. Free, no API key required. " +
		"Input: a search query related to the threat or log content."
}

type ddgTopic struct {
	Text     string `json:"Text"`
	FirstURL string `json:"FirstURL"`
}

type ddgResponse struct {
	Heading       string     `json:"Heading"`
	Abstract      string     `json:"Abstract"`
	AbstractURL   string     `json:"AbstractURL"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

// Search returns up to five results for query; any failure yields an empty
// list.
func (d *DuckDuckGo) Search(ctx context.Context, query string) []apimodels.SearchSource {
	params := url.Values{
		"q":      {query},
		"format": {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil
	}

	resp, err := d.http.Do(req)
	if err != nil {
		slog.Error("DuckDuckGo search request failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("DuckDuckGo search returned error status", "status", resp.StatusCode)
		return nil
	}

	var out ddgResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		slog.Error("decoding DuckDuckGo response failed", "error", err)
		return nil
	}

	var results []apimodels.SearchSource
	if out.Abstract != "" {
		heading := out.Heading
		if heading == "" {
			heading = query
		}
		results = append(results, apimodels.SearchSource{
			Title:   heading,
			URL:     out.AbstractURL,
			Snippet: out.Abstract,
		})
	}

	for _, topic := range out.RelatedTopics {
		if len(results) == maxResults {
			break
		}
		if topic.Text == "" {
			continue
		}
		results = append(results, apimodels.SearchSource{
			Title:   truncate(topic.Text, 100),
			URL:     topic.FirstURL,
			Snippet: topic.Text,
		})
	}

	if len(results) == 0 {
		slog.Warn("no search results found", "query", query)
	} else {
		slog.Info("DuckDuckGo search complete", "query", query, "results", len(results))
	}
	return results
}

// Format renders captured results as a prompt block.
func (d *DuckDuckGo) Format(query string, results []apimodels.SearchSource) string {
	return formatResults("DuckDuckGo", query, results)
}

// Run implements the tool contract: search and render the results as a
// prompt block.
func (d *DuckDuckGo) Run(ctx context.Context, query string) (string, error) {
	return d.Format(query, d.Search(ctx, query)), nil
}
