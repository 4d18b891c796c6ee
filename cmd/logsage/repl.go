package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sentinelops/logsage/internal/analyzer"
	"github.com/sentinelops/logsage/internal/config"
)

type cli struct {
	analyzer  *analyzer.Analyzer
	cfg       *config.Config
	useSearch bool
}

func (c *cli) printBanner() {
	searchStatus := c.cfg.Search.Provider
	if strings.EqualFold(c.cfg.Search.Provider, "brave") && c.cfg.Search.BraveAPIKey == "" {
		searchStatus = "brave (no API key configured)"
	}

	fmt.Printf(`logsage - AI-Powered Security Log Analysis

Configuration:
  LLM: %s (%s)
  Anomaly API: %s
  Search: %s

`, c.cfg.LLM.Endpoint, c.cfg.LLM.Model, c.cfg.Anomaly.URL, searchStatus)
}

// repl reads commands until quit or EOF. Free text is analyzed directly;
// analysis errors are printed and the loop continues.
func (c *cli) repl(ctx context.Context) error {
	fmt.Println("Interactive mode")
	fmt.Println("Enter log text to analyze (type 'quit' or 'exit' to quit)")
	fmt.Println("Type 'file <path>' to analyze a log file")
	fmt.Println("Type 'help' for more commands")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("\nlog> ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch {
		case input == "quit" || input == "exit" || input == "q":
			fmt.Println("Goodbye!")
			return nil

		case input == "help":
			fmt.Println(`
Available commands:
  help              - Show this help message
  file <path>       - Analyze a log file
  quit/exit/q       - Exit the application

  Or simply enter log text to analyze it directly.`)

		case strings.HasPrefix(input, "file "):
			path := strings.TrimSpace(strings.TrimPrefix(input, "file "))
			if err := c.analyzeFile(ctx, path); err != nil {
				fmt.Printf("Error: %v\n", err)
			}

		default:
			if err := c.analyzeText(ctx, input); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	}
}

func (c *cli) analyzeFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	fmt.Printf("Analyzing file: %s (%d characters)\n\n", path, len(data))
	record := c.analyzer.Analyze(ctx, string(data), c.useSearch)
	printRecord(record)
	return nil
}

func (c *cli) analyzeText(ctx context.Context, logText string) error {
	fmt.Printf("Analyzing log (%d characters)...\n\n", len(logText))
	record := c.analyzer.Analyze(ctx, logText, c.useSearch)
	printRecord(record)
	return nil
}
