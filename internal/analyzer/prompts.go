package analyzer

import (
	"fmt"
	"strings"
)

var systemPrompt = `You are an expert cybersecurity analyst specializing in log analysis and threat detection.

Your role is to analyze security logs and provide actionable intelligence about potential threats.

ANALYSIS WORKFLOW:
1. Review the anomaly detection results for the log
2. Extract key indicators from the log (IPs, ports, error codes, patterns)
3. Use the provided threat intelligence to research specific threats or CVEs mentioned
4. Synthesize all information into a comprehensive threat assessment

OUTPUT FORMAT:
You must provide a structured analysis with these sections:

**THREAT TYPE**: Specific type of threat (e.g., "Brute Force Attack", "SQL Injection", "Malware Execution", "Normal Activity")

**SEVERITY LEVEL**: One of [CRITICAL, HIGH, MEDIUM, LOW, INFO]
- CRITICAL: Active exploitation, system compromise, data breach
- HIGH: Attempted exploitation, privilege escalation attempts
- MEDIUM: Suspicious activity, potential reconnaissance
- LOW: Minor anomalies, policy violations
- INFO: Normal activity, informational logs

**CONFIDENCE SCORE**: Your confidence in this assessment (0.0 to 1.0)

**DETAILED EXPLANATION**:
- What happened in the log
- Why it's concerning (or not)
- Context from threat intelligence
- Anomaly analysis interpretation

**INDICATORS OF COMPROMISE** (if applicable):
- IP addresses
- Ports
- Attack signatures
- CVE references

**RECOMMENDED ACTIONS**:
Prioritized list of specific actions to take:
1. Immediate actions (for CRITICAL/HIGH)
2. Short-term remediation
3. Long-term preventive measures

Be precise, technical, and actionable.`

// buildAnalysisPrompt assembles the main analysis prompt from the log, the
// anomaly block, and the optional threat-intel block.
func buildAnalysisPrompt(logText, anomalyBlock, intelBlock string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nAnalyze the following security log:\n\nLOG CONTENT:\n")
	b.WriteString(logText)
	b.WriteString("\n\nANOMALY DETECTION RESULTS:\n")
	b.WriteString(anomalyBlock)
	if intelBlock != "" {
		b.WriteString("\n\nTHREAT INTELLIGENCE:\n")
		b.WriteString(intelBlock)
	}
	b.WriteString(`

Provide your structured analysis following this format:

**THREAT TYPE**: [specific threat type]

**SEVERITY LEVEL**: [CRITICAL/HIGH/MEDIUM/LOW/INFO]

**CONFIDENCE SCORE**: [0.0 to 1.0]

**DETAILED EXPLANATION**:
[Your detailed analysis]

**INDICATORS OF COMPROMISE** (if applicable):
- [IOC 1]
- [IOC 2]

**RECOMMENDED ACTIONS**:
1. [Action 1]
2. [Action 2]
`)
	return b.String()
}

// buildKeywordPrompt asks the model for 2-3 targeted search terms.
func buildKeywordPrompt(logExcerpt, anomalyExcerpt string) string {
	return fmt.Sprintf(`Analyze this security log and identify the SPECIFIC threats or attack types present.
Provide 2-3 precise search keywords/phrases that would help find threat intelligence.

Log:
%s

Anomaly Analysis:
%s

Provide ONLY the search keywords (e.g., "SSH brute force attack indicators", "CVE-2024-1234", "SQL injection attack patterns").
Be specific and technical. Focus on attack types, CVEs, malware names, or specific techniques.
Do NOT provide generic terms like "security log analysis".

Search keywords:`, logExcerpt, anomalyExcerpt)
}

// buildSummaryPrompt assembles the summarization-pass prompt from the
// already-parsed record and the tool catalogue.
func buildSummaryPrompt(threatType, severity string, confidence float64, explanation string, actions []string, logExcerpt, catalogue string) string {
	var actionLines strings.Builder
	for _, a := range actions {
		fmt.Fprintf(&actionLines, "- %s\n", a)
	}

	return fmt.Sprintf(`You have completed an initial security log analysis. Here are the results:

**Threat Type**: %s
**Severity**: %s
**Confidence**: %g

**Explanation**: %s

**Recommended Actions**:
%s
**Original Log** (first 300 chars):
%s

Your task:
1. Provide a concise executive summary (2-3 sentences) of the threat and its implications
2. If you need additional information, you can use these tools:
%s

Format your response as:
SUMMARY: [your 2-3 sentence executive summary]
TOOL_CALLS: [any tool calls you want to make, or "NONE"]

If you want to call a tool, use this format:
TOOL: tool_name
INPUT: tool input
---`, threatType, severity, confidence, explanation, actionLines.String(), logExcerpt, catalogue)
}
