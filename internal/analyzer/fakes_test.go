package analyzer

import (
	"context"
	"errors"
	"sync"

	"github.com/sentinelops/logsage/apimodels"
	"github.com/sentinelops/logsage/internal/anomaly"
	"github.com/sentinelops/logsage/internal/intel"
	"github.com/sentinelops/logsage/internal/llm"
)

// scriptedCompleter replays canned completions in order. Once the script is
// exhausted every further call errors, modelling an unavailable service.
type scriptedCompleter struct {
	mu      sync.Mutex
	script  []string
	prompts []string
	panics  bool
}

func (f *scriptedCompleter) Complete(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.panics {
		panic("completer exploded")
	}

	f.prompts = append(f.prompts, prompt)
	if len(f.script) == 0 {
		return "", errors.New("completion service unavailable")
	}

	out := f.script[0]
	f.script = f.script[1:]
	return out, nil
}

// stubDetector returns a fixed detection result.
type stubDetector struct {
	res anomaly.Result
}

func (d stubDetector) Detect(context.Context, string) anomaly.Result {
	return d.res
}

// stubSearcher serves fixed results and records the queries it saw.
type stubSearcher struct {
	results []apimodels.SearchSource
	queries []string
}

func (s *stubSearcher) Name() string        { return "duckduckgo_threat_intelligence" }
func (s *stubSearcher) Description() string { return "stub threat intelligence search" }

func (s *stubSearcher) Search(_ context.Context, query string) []apimodels.SearchSource {
	s.queries = append(s.queries, query)
	return s.results
}

func (s *stubSearcher) Format(query string, results []apimodels.SearchSource) string {
	return "intel block for " + query
}

func (s *stubSearcher) Run(ctx context.Context, query string) (string, error) {
	return s.Format(query, s.Search(ctx, query)), nil
}

var _ intel.Searcher = (*stubSearcher)(nil)

func newTestAnalyzer(completer llm.Completer, det anomaly.Detector, searcher intel.Searcher) *Analyzer {
	if searcher == nil {
		searcher = &stubSearcher{}
	}
	tool := anomaly.NewTool(det, 10000)
	return New(completer, tool, searcher, 10000)
}

func okDetector() stubDetector {
	return stubDetector{res: anomaly.Result{Score: 12.3, IsAnomaly: true, Threshold: 10.5}}
}

func failedDetector() stubDetector {
	return stubDetector{res: anomaly.Result{Threshold: 10.5, Err: "connection refused"}}
}
