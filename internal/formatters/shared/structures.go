// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"sic-scan/internal/core"
	"sic-scan/internal/detector"
	"sic-scan/internal/formatters"
)

// Report represents the top-level response structure for JSON/YAML output
type Report struct {
	Summary Summary        `json:"summary" yaml:"summary"`
	Results []RecordReport `json:"results" yaml:"results"`
}

// Summary aggregates counts over the whole batch
type Summary struct {
	Records    int   `json:"records" yaml:"records"`
	NonPublic  int   `json:"non_public" yaml:"non_public"`
	Findings   int   `json:"findings" yaml:"findings"`
	Suppressed int   `json:"suppressed" yaml:"suppressed"`
	DurationMs int64 `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty"`
}

// RecordReport represents the scan outcome for a single record
type RecordReport struct {
	RecordID   string              `json:"record_id" yaml:"record_id"`
	Source     string              `json:"source,omitempty" yaml:"source,omitempty"`
	Verdict    string              `json:"verdict" yaml:"verdict"`
	Mapping    map[string][]string `json:"mapping" yaml:"mapping"`
	Findings   []Finding           `json:"findings" yaml:"findings"`
	Suppressed []SuppressedFinding `json:"suppressed,omitempty" yaml:"suppressed,omitempty"`
	Conflicts  []ConflictEntry     `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Error      string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// Finding represents a single accepted match in JSON/YAML format
type Finding struct {
	Type            string                 `json:"type" yaml:"type"`
	Validator       string                 `json:"validator,omitempty" yaml:"validator,omitempty"`
	Text            string                 `json:"text" yaml:"text"`
	Value           string                 `json:"value,omitempty" yaml:"value,omitempty"`
	LineNumber      int                    `json:"line_number" yaml:"line_number"`
	Confidence      float64                `json:"confidence" yaml:"confidence"`
	ConfidenceLevel string                 `json:"confidence_level" yaml:"confidence_level"`
	Metadata        map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	FullLine        string                 `json:"full_line,omitempty" yaml:"full_line,omitempty"`
	BeforeText      string                 `json:"before_text,omitempty" yaml:"before_text,omitempty"`
	AfterText       string                 `json:"after_text,omitempty" yaml:"after_text,omitempty"`
}

// SuppressedFinding wraps a finding with the rule that silenced it
type SuppressedFinding struct {
	Finding      Finding `json:"finding" yaml:"finding"`
	SuppressedBy string  `json:"suppressed_by" yaml:"suppressed_by"`
	RuleReason   string  `json:"rule_reason,omitempty" yaml:"rule_reason,omitempty"`
}

// ConflictEntry records a value dropped during cross-type resolution
type ConflictEntry struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
	WonBy string `json:"won_by" yaml:"won_by"`
}

// FilterMatchesByConfidence filters matches based on confidence level settings
func FilterMatchesByConfidence(matches []detector.Match, options formatters.FormatterOptions) []detector.Match {
	var filtered []detector.Match
	for _, match := range matches {
		if (match.Confidence >= 90 && options.ConfidenceLevel["high"]) ||
			(match.Confidence >= 60 && match.Confidence < 90 && options.ConfidenceLevel["medium"]) ||
			(match.Confidence < 60 && options.ConfidenceLevel["low"]) {
			filtered = append(filtered, match)
		}
	}
	return filtered
}

// GetConfidenceLevel returns the confidence level as a string
func GetConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 90:
		return "HIGH"
	case confidence >= 60:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// ConvertScanResult converts a batch scan result to the JSON/YAML report
// shape. Findings honor the confidence level filter; the mapping and
// verdict always reflect the full pipeline outcome.
func ConvertScanResult(scan *core.ScanResult, options formatters.FormatterOptions) Report {
	report := Report{
		Summary: Summary{
			Records:   len(scan.Results),
			NonPublic: scan.NonPublicCount,
		},
		Results: make([]RecordReport, 0, len(scan.Results)),
	}
	if scan.Stats != nil {
		report.Summary.DurationMs = scan.Stats.TotalDuration.Milliseconds()
	}

	for _, result := range scan.Results {
		recordReport := ConvertRecordResult(result, options)
		report.Summary.Findings += len(recordReport.Findings)
		report.Summary.Suppressed += len(result.Suppressed)
		report.Results = append(report.Results, recordReport)
	}

	return report
}

// ConvertRecordResult converts one record's outcome to report shape
func ConvertRecordResult(result core.RecordResult, options formatters.FormatterOptions) RecordReport {
	recordReport := RecordReport{
		RecordID: result.Record.ID,
		Source:   result.Record.Source,
		Verdict:  string(result.Verdict),
		Mapping:  mappingByType(&result.Mapping),
		Findings: []Finding{},
	}
	if result.Err != nil {
		recordReport.Error = result.Err.Error()
	}

	for _, match := range FilterMatchesByConfidence(result.Matches, options) {
		recordReport.Findings = append(recordReport.Findings, convertMatch(match, options))
	}

	if options.ShowSuppressed {
		for _, suppressed := range result.Suppressed {
			recordReport.Suppressed = append(recordReport.Suppressed, SuppressedFinding{
				Finding:      convertMatch(suppressed.Match, options),
				SuppressedBy: suppressed.SuppressedBy,
				RuleReason:   suppressed.RuleReason,
			})
		}
	}

	for _, conflict := range result.Conflicts {
		recordReport.Conflicts = append(recordReport.Conflicts, ConflictEntry{
			Type:  string(conflict.Type),
			Value: conflict.Value,
			WonBy: string(conflict.WonBy),
		})
	}

	return recordReport
}

// mappingByType restricts the mapping to its non-empty types
func mappingByType(m *detector.Mapping) map[string][]string {
	out := make(map[string][]string)
	for _, t := range m.NonEmptyTypes() {
		out[string(t)] = m.Values(t)
	}
	return out
}

func convertMatch(match detector.Match, options formatters.FormatterOptions) Finding {
	metadata := make(map[string]interface{})
	for k, v := range match.Metadata {
		metadata[k] = v
	}

	finding := Finding{
		Type:            match.Type,
		Validator:       match.Validator,
		Text:            match.Text,
		Value:           match.Value,
		LineNumber:      match.LineNumber,
		Confidence:      match.Confidence,
		ConfidenceLevel: GetConfidenceLevel(match.Confidence),
		Metadata:        metadata,
	}

	if options.Verbose {
		if match.Context.FullLine != "" {
			finding.FullLine = match.Context.FullLine
		}
		if match.Context.BeforeText != "" {
			finding.BeforeText = match.Context.BeforeText
		}
		if match.Context.AfterText != "" {
			finding.AfterText = match.Context.AfterText
		}
	}

	return finding
}
