package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/sentinelops/logsage/internal/analyzer"
	"github.com/sentinelops/logsage/internal/anomaly"
	"github.com/sentinelops/logsage/internal/config"
	"github.com/sentinelops/logsage/internal/intel"
	"github.com/sentinelops/logsage/internal/llm"
	"github.com/sentinelops/logsage/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	completer, err := llm.NewOpenAI(&cfg.LLM)
	if err != nil {
		log.Fatalf("failed to create completion client: %v", err)
	}

	anomalyClient := anomaly.NewClient(cfg.Anomaly.URL, cfg.Anomaly.Threshold, cfg.Anomaly.Timeout)
	anomalyTool := anomaly.NewTool(anomalyClient, cfg.MaxLogLength)
	searcher := intel.NewSearcher(&cfg.Search)

	slog.Info("starting logsage API",
		"llm_endpoint", cfg.LLM.Endpoint,
		"llm_model", cfg.LLM.Model,
		"anomaly_url", cfg.Anomaly.URL,
		"search_provider", cfg.Search.Provider,
	)

	a := analyzer.New(completer, anomalyTool, searcher, cfg.MaxLogLength)

	srv := server.New(cfg, a, anomalyClient)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
