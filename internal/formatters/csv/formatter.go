// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/json"
	"fmt"
	"strings"

	"sic-scan/internal/core"
	"sic-scan/internal/detector"
	"sic-scan/internal/formatters"
	"sic-scan/internal/formatters/shared"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

// Format emits one row per finding. Records with no findings still get
// a row so every verdict appears in the export.
func (f *Formatter) Format(scan *core.ScanResult, options formatters.FormatterOptions) (string, error) {
	headers := []string{"Record ID", "Verdict", "Type", "Validator", "Confidence Level", "Confidence %", "Line Number", "Text", "Source"}
	if options.Verbose {
		headers = append(headers, "Metadata")
	}

	csvRows := []string{strings.Join(headers, ",")}

	for _, result := range scan.Results {
		matches := shared.FilterMatchesByConfidence(result.Matches, options)

		if len(matches) == 0 && (!options.ShowSuppressed || len(result.Suppressed) == 0) {
			csvRows = append(csvRows, f.createRecordRow(result, options))
			continue
		}

		for _, match := range matches {
			csvRows = append(csvRows, f.createCSVRow(result, match, options, false))
		}

		if options.ShowSuppressed {
			for _, suppressed := range result.Suppressed {
				csvRows = append(csvRows, f.createCSVRow(result, suppressed.Match, options, true))
			}
		}
	}

	return strings.Join(csvRows, "\n"), nil
}

// createRecordRow creates a verdict-only row for a record without findings
func (f *Formatter) createRecordRow(result core.RecordResult, options formatters.FormatterOptions) string {
	row := []string{
		f.escapeCSVField(result.Record.ID),
		f.escapeCSVField(string(result.Verdict)),
		"", "", "", "", "", "",
		f.escapeCSVField(result.Record.Source),
	}
	if options.Verbose {
		row = append(row, "")
	}
	return strings.Join(row, ",")
}

// createCSVRow creates a CSV row for a finding
func (f *Formatter) createCSVRow(result core.RecordResult, match detector.Match, options formatters.FormatterOptions, suppressed bool) string {
	confidenceLevel := shared.GetConfidenceLevel(match.Confidence)
	if suppressed {
		confidenceLevel = "SUPPRESSED"
	}

	displayText := "[REDACTED]"
	if options.ShowMatch {
		displayText = match.Text
	}

	row := []string{
		f.escapeCSVField(result.Record.ID),
		f.escapeCSVField(string(result.Verdict)),
		f.escapeCSVField(match.Type),
		f.escapeCSVField(match.Validator),
		f.escapeCSVField(confidenceLevel),
		fmt.Sprintf("%.1f", match.Confidence),
		fmt.Sprintf("%d", match.LineNumber),
		f.escapeCSVField(displayText),
		f.escapeCSVField(result.Record.Source),
	}

	if options.Verbose {
		if match.Metadata != nil {
			metadataJSON, err := json.Marshal(match.Metadata)
			if err != nil {
				row = append(row, f.escapeCSVField("Error serializing metadata"))
			} else {
				row = append(row, f.escapeCSVField(string(metadataJSON)))
			}
		} else {
			row = append(row, "")
		}
	}

	return strings.Join(row, ",")
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	field = f.sanitizeFormulaInjection(field)

	if strings.Contains(field, ",") || strings.Contains(field, "\"") || strings.Contains(field, "\n") || strings.Contains(field, "\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection prevents CSV injection attacks by sanitizing formula characters
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	// Fields starting with formula characters are dangerous in spreadsheets
	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		return "'" + field
	}

	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
