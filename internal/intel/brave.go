package intel

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sentinelops/logsage/apimodels"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Brave searches the Brave Search web API. Requires a subscription token;
// without one every query yields an empty result set.
type Brave struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

func NewBrave(apiKey string) *Brave {
	return &Brave{
		apiKey:   apiKey,
		endpoint: braveEndpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *Brave) Name() string { return "brave_threat_intelligence" }

func (b *Brave) Description() string {
	return "Searches for real-time cybersecurity threat intelligence, CVE information, " +
		"attack patterns, and security advisories using the Brave Search API. " +
		"Input: a search query related to the threat or log content."
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search returns up to five results for query. Missing credentials and
// upstream failures both yield an empty list.
func (b *Brave) Search(ctx context.Context, query string) []apimodels.SearchSource {
	if b.apiKey == "" {
		slog.Warn("Brave API key not configured, skipping search")
		return nil
	}

	params := url.Values{
		"q":           {query},
		"count":       {strconv.Itoa(maxResults)},
		"safesearch":  {"off"},
		"search_lang": {"en"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.http.Do(req)
	if err != nil {
		slog.Error("Brave search request failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Brave search returned error status", "status", resp.StatusCode)
		return nil
	}

	var out braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		slog.Error("decoding Brave search response failed", "error", err)
		return nil
	}

	results := make([]apimodels.SearchSource, 0, maxResults)
	for _, r := range out.Web.Results {
		if len(results) == maxResults {
			break
		}
		results = append(results, apimodels.SearchSource{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Description,
		})
	}

	slog.Info("Brave search complete", "query", query, "results", len(results))
	return results
}

// Format renders captured results as a prompt block.
func (b *Brave) Format(query string, results []apimodels.SearchSource) string {
	return formatResults("Brave Search", query, results)
}

// Run implements the tool contract: search and render the results as a
// prompt block.
func (b *Brave) Run(ctx context.Context, query string) (string, error) {
	return b.Format(query, b.Search(ctx, query)), nil
}
