// Package anomaly is the client for the external log anomaly-scoring
// service and its prompt-facing formatter.
package anomaly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const healthTimeout = 5 * time.Second

// Result is the outcome of one detection call. Upstream failures are
// carried in Err rather than returned as errors so a degraded anomaly pass
// never aborts the enclosing pipeline.
type Result struct {
	Score     float64
	IsAnomaly bool
	Threshold float64
	Err       string
}

// Failed reports whether the detection call did not produce a usable score.
func (r Result) Failed() bool {
	return r.Err != ""
}

type Client struct {
	baseURL   string
	threshold float64
	http      *http.Client
	healthc   *http.Client
}

// NewClient creates a client for the scoring service at baseURL. threshold
// is the fallback anomaly threshold reported when the service omits one or
// is unreachable.
func NewClient(baseURL string, threshold float64, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		threshold: threshold,
		http:      &http.Client{Timeout: timeout},
		healthc:   &http.Client{Timeout: healthTimeout},
	}
}

// Health reports whether the scoring service answers its health endpoint.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.healthc.Do(req)
	if err != nil {
		slog.Warn("anomaly service health check failed", "error", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type detectRequest struct {
	LogText string `json:"log_text"`
}

type detectResponse struct {
	AnomalyScore float64  `json:"anomaly_score"`
	IsAnomaly    bool     `json:"is_anomaly"`
	Threshold    *float64 `json:"threshold"`
}

// Detect scores logText. Transport failures, timeouts, and bad responses
// all map to a Result with Err set and neutral values elsewhere.
func (c *Client) Detect(ctx context.Context, logText string) Result {
	body, err := json.Marshal(detectRequest{LogText: logText})
	if err != nil {
		return c.failed(fmt.Sprintf("encoding detection request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect-anomaly", bytes.NewReader(body))
	if err != nil {
		return c.failed(fmt.Sprintf("building detection request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("anomaly detection request failed", "error", err)
		return c.failed(fmt.Sprintf("anomaly service request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("anomaly service returned error status", "status", resp.StatusCode)
		return c.failed(fmt.Sprintf("anomaly service returned status %d", resp.StatusCode))
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return c.failed(fmt.Sprintf("decoding detection response: %v", err))
	}

	threshold := c.threshold
	if out.Threshold != nil {
		threshold = *out.Threshold
	}

	slog.Info("anomaly detection complete", "score", out.AnomalyScore, "is_anomaly", out.IsAnomaly)
	return Result{
		Score:     out.AnomalyScore,
		IsAnomaly: out.IsAnomaly,
		Threshold: threshold,
	}
}

func (c *Client) failed(msg string) Result {
	return Result{Threshold: c.threshold, Err: msg}
}
