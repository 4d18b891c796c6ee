// Package main is the CLI entry point for logsage.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sentinelops/logsage/internal/analyzer"
	"github.com/sentinelops/logsage/internal/anomaly"
	"github.com/sentinelops/logsage/internal/config"
	"github.com/sentinelops/logsage/internal/intel"
	"github.com/sentinelops/logsage/internal/llm"
	"github.com/sentinelops/logsage/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "logsage [log text]",
		Short: "AI-powered security log analysis",
		Long: `logsage analyzes security log text by chaining anomaly detection,
threat-intelligence search, and a language model into a structured
threat report.

With no arguments it starts an interactive session; pass log text
directly or use --file to analyze a log file.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringP("file", "f", "", "path to a log file to analyze")
	rootCmd.Flags().Bool("no-search", false, "disable threat-intelligence search")
	rootCmd.Flags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.Version = server.Version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	filePath, _ := cmd.Flags().GetString("file")
	noSearch, _ := cmd.Flags().GetBool("no-search")
	verbose, _ := cmd.Flags().GetBool("verbose")

	// The CLI stays quiet unless asked: warnings and errors only.
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	completer, err := llm.NewOpenAI(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("completion client: %w", err)
	}

	anomalyClient := anomaly.NewClient(cfg.Anomaly.URL, cfg.Anomaly.Threshold, cfg.Anomaly.Timeout)
	anomalyTool := anomaly.NewTool(anomalyClient, cfg.MaxLogLength)
	searcher := intel.NewSearcher(&cfg.Search)

	a := analyzer.New(completer, anomalyTool, searcher, cfg.MaxLogLength)

	app := &cli{
		analyzer:  a,
		cfg:       cfg,
		useSearch: !noSearch,
	}

	switch {
	case filePath != "":
		return app.analyzeFile(cmd.Context(), filePath)
	case len(args) > 0:
		return app.analyzeText(cmd.Context(), strings.Join(args, " "))
	default:
		app.printBanner()
		return app.repl(cmd.Context())
	}
}
