package anomaly

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sentinelops/logsage/apimodels"
)

// ToolName is how the detector is addressed by the summarization pass.
const ToolName = "bert_anomaly_detector"

// Detector is the slice of Client the tool needs; tests substitute fakes.
type Detector interface {
	Detect(ctx context.Context, logText string) Result
}

// Tool adapts the detector to the text-in/text-out tool contract and
// renders its results as a prompt block.
type Tool struct {
	detector Detector
	maxLen   int
}

func NewTool(detector Detector, maxLogLength int) *Tool {
	return &Tool{detector: detector, maxLen: maxLogLength}
}

func (t *Tool) Name() string { return ToolName }

func (t *Tool) Description() string {
	return "Detects anomalies in log text using a fine-tuned BERT model. " +
		"Input: the log entry or log file content to analyze. " +
		"Returns the anomaly score, whether the log is anomalous, and an interpretation."
}

// Run scores the log and renders the result as a natural-language block for
// prompt inclusion. A failed detection yields a degraded block, not an
// error, so the pipeline proceeds with manual analysis.
func (t *Tool) Run(ctx context.Context, logText string) (string, error) {
	block, _ := t.Analyze(ctx, logText)
	return block, nil
}

// Analyze performs a single detection and returns both the prompt block and
// the machine-readable summary (nil when detection failed).
func (t *Tool) Analyze(ctx context.Context, logText string) (string, *apimodels.AnomalyData) {
	if len(logText) > t.maxLen {
		logText = logText[:t.maxLen]
		slog.Warn("log truncated for anomaly detection", "max_length", t.maxLen)
	}

	res := t.detector.Detect(ctx, logText)
	return render(res), dataFrom(res)
}

func render(res Result) string {
	if res.Failed() {
		return fmt.Sprintf(`BERT Anomaly Detection ERROR: %s
Unable to perform anomaly detection. Proceeding with manual analysis.
`, res.Err)
	}

	confidence := Confidence(res)
	interpretation := interpret(res)

	analysis := "This log appears normal but should still be analyzed for context."
	if res.IsAnomaly {
		analysis = "This log exhibits anomalous behavior and requires deeper investigation."
	}

	yesNo := "NO"
	if res.IsAnomaly {
		yesNo = "YES"
	}

	return fmt.Sprintf(`BERT Anomaly Detection Results:
================================
Anomaly Score: %.2f (Threshold: %.2f)
Is Anomaly: %s
Confidence: %.1f%%
Interpretation: %s

Analysis: %s
`, res.Score, res.Threshold, yesNo, confidence, interpretation, analysis)
}

func dataFrom(res Result) *apimodels.AnomalyData {
	if res.Failed() {
		return nil
	}

	return &apimodels.AnomalyData{
		AnomalyScore: res.Score,
		IsAnomaly:    res.IsAnomaly,
		Threshold:    res.Threshold,
		Confidence:   Confidence(res),
	}
}

// Confidence expresses the score as a percentage of the threshold, capped
// at 100.
func Confidence(r Result) float64 {
	if r.Threshold == 0 {
		return 0
	}
	c := r.Score / r.Threshold * 100
	if c > 100 {
		return 100
	}
	return c
}

func interpret(r Result) string {
	switch {
	case r.Score < r.Threshold*0.3:
		return "NORMAL - Log appears benign with typical patterns"
	case r.Score < r.Threshold*0.7:
		return "SUSPICIOUS - Log shows minor deviations from normal"
	case r.Score < r.Threshold:
		return "CONCERNING - Log exhibits unusual patterns"
	default:
		return "ANOMALOUS - Log shows significant abnormal behavior"
	}
}
