package main

import (
	"fmt"
	"strings"

	"github.com/sentinelops/logsage/apimodels"
)

const (
	colorReset = "\033[0m"

	colorRed    = "\033[91m"
	colorYellow = "\033[93m"
	colorBlue   = "\033[94m"
	colorGreen  = "\033[92m"
	colorCyan   = "\033[96m"
)

var severityColors = map[string]string{
	apimodels.SeverityCritical: colorRed,
	apimodels.SeverityHigh:     colorYellow,
	apimodels.SeverityMedium:   colorBlue,
	apimodels.SeverityLow:      colorGreen,
	apimodels.SeverityInfo:     colorCyan,
}

func printRecord(rec *apimodels.AnalysisRecord) {
	sep := strings.Repeat("=", 70)
	sub := strings.Repeat("-", 70)

	fmt.Println(sep)
	fmt.Println("ANALYSIS RESULTS")
	fmt.Println(sep)

	if rec.Error != "" {
		fmt.Printf("\n%sANALYSIS FAILED%s: %s\n", colorRed, colorReset, rec.Error)
	}

	fmt.Printf("\nTHREAT TYPE: %s\n", rec.ThreatType)

	color := severityColors[rec.Severity]
	fmt.Printf("SEVERITY: %s%s%s\n", color, rec.Severity, colorReset)
	fmt.Printf("CONFIDENCE: %.1f%%\n", rec.ConfidenceScore*100)

	if rec.Anomaly != nil {
		fmt.Printf("ANOMALY SCORE: %.2f (threshold %.2f, anomalous: %v)\n",
			rec.Anomaly.AnomalyScore, rec.Anomaly.Threshold, rec.Anomaly.IsAnomaly)
	}

	fmt.Println("\nDETAILED EXPLANATION:")
	fmt.Println(sub)
	fmt.Println(rec.Explanation)

	if len(rec.IndicatorsOfCompromise) > 0 {
		fmt.Println("\nINDICATORS OF COMPROMISE:")
		fmt.Println(sub)
		for i, ioc := range rec.IndicatorsOfCompromise {
			fmt.Printf("  %d. %s\n", i+1, ioc)
		}
	}

	if len(rec.RecommendedActions) > 0 {
		fmt.Println("\nRECOMMENDED ACTIONS:")
		fmt.Println(sub)
		for i, action := range rec.RecommendedActions {
			fmt.Printf("  %d. %s\n", i+1, action)
		}
	}

	if rec.SearchQuery != "" {
		fmt.Printf("\nTHREAT INTEL QUERY: %s\n", rec.SearchQuery)
		for i, src := range rec.SearchSources {
			fmt.Printf("  [%d] %s\n      %s\n", i+1, src.Title, src.URL)
		}
	}

	if rec.ExecutiveSummary != "" {
		fmt.Println("\nEXECUTIVE SUMMARY:")
		fmt.Println(sub)
		fmt.Println(rec.ExecutiveSummary)
	}

	for _, fu := range rec.FollowUpActions {
		fmt.Printf("\nFOLLOW-UP [%s]: %s\n", fu.Tool, fu.ToolInput)
		fmt.Printf("  %s\n", fu.Observation)
	}

	fmt.Println(sep)
}
