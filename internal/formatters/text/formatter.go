// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"sic-scan/internal/core"
	"sic-scan/internal/detector"
	"sic-scan/internal/formatters"
	"sic-scan/internal/formatters/shared"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"blue":    color.New(color.FgBlue),
			"white":   color.New(color.FgWhite, color.Bold),
			"redBold": color.New(color.FgRed, color.Bold),
			"grnBold": color.New(color.FgGreen, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable per-record report with colors and tables"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

// Format renders one section per record followed by a batch summary.
// Matched text is replaced by [REDACTED] unless ShowMatch is set.
func (f *Formatter) Format(scan *core.ScanResult, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var builder strings.Builder
	for i := range scan.Results {
		if i > 0 {
			builder.WriteString("\n")
		}
		f.appendRecord(&builder, &scan.Results[i], options)
	}

	f.appendSummary(&builder, scan)
	return builder.String(), nil
}

// appendRecord renders the section for a single record: the verdict
// header, the findings table, and the per-type value lines.
func (f *Formatter) appendRecord(builder *strings.Builder, result *core.RecordResult, options formatters.FormatterOptions) {
	f.appendRecordHeader(builder, result, options)

	if result.Err != nil {
		if !options.NoColor {
			f.colors["red"].Fprintf(builder, "  error: %v\n", result.Err)
		} else {
			fmt.Fprintf(builder, "  error: %v\n", result.Err)
		}
		return
	}

	matches := shared.FilterMatchesByConfidence(result.Matches, options)
	f.sortMatches(matches)

	// The mapping still renders below: the confidence filter hides
	// finding rows, never the pipeline outcome.
	if len(matches) == 0 && (!options.ShowSuppressed || len(result.Suppressed) == 0) {
		builder.WriteString("  no findings\n")
	}

	if !options.Verbose && (len(matches) > 0 || (options.ShowSuppressed && len(result.Suppressed) > 0)) {
		f.appendHeaders(builder, matches, options)
	}

	for _, match := range matches {
		confidenceLevel := shared.GetConfidenceLevel(match.Confidence)
		if !options.Verbose {
			f.appendSummaryLine(builder, match, confidenceLevel, matches, false, options)
			continue
		}
		f.appendDetailedMatch(builder, match, confidenceLevel, options)
	}

	if options.ShowSuppressed {
		for _, suppressed := range result.Suppressed {
			match := suppressed.Match
			confidenceLevel := shared.GetConfidenceLevel(match.Confidence)
			if !options.Verbose {
				f.appendSummaryLine(builder, match, confidenceLevel, matches, true, options)
				continue
			}
			f.appendDetailedSuppressedMatch(builder, suppressed, confidenceLevel, options)
		}
	}

	f.appendMapping(builder, &result.Mapping, options)

	if options.Verbose && len(result.Conflicts) > 0 {
		for _, conflict := range result.Conflicts {
			value := conflict.Value
			if !options.ShowMatch {
				value = "[REDACTED]"
			}
			if !options.NoColor {
				f.colors["yellow"].Fprintf(builder, "  conflict: %s value %s claimed by %s\n", conflict.Type, value, conflict.WonBy)
			} else {
				fmt.Fprintf(builder, "  conflict: %s value %s claimed by %s\n", conflict.Type, value, conflict.WonBy)
			}
		}
	}
}

// appendRecordHeader writes the "RECORD <id>" line with the colored verdict
func (f *Formatter) appendRecordHeader(builder *strings.Builder, result *core.RecordResult, options formatters.FormatterOptions) {
	verdict := strings.ToUpper(string(result.Verdict))
	if options.NoColor {
		fmt.Fprintf(builder, "RECORD %s — %s\n", result.Record.ID, verdict)
		return
	}

	verdictColor := f.colors["grnBold"]
	if result.Verdict == detector.VerdictNonPublic {
		verdictColor = f.colors["redBold"]
	}
	f.colors["white"].Fprintf(builder, "RECORD %s", result.Record.ID)
	fmt.Fprintf(builder, " — ")
	verdictColor.Fprintf(builder, "%s\n", verdict)
}

// appendMapping writes one line per non-empty type with its values
func (f *Formatter) appendMapping(builder *strings.Builder, mapping *detector.Mapping, options formatters.FormatterOptions) {
	for _, t := range mapping.NonEmptyTypes() {
		values := mapping.Values(t)
		rendered := make([]string, len(values))
		for i, value := range values {
			if options.ShowMatch {
				rendered[i] = value
			} else {
				rendered[i] = "[REDACTED]"
			}
		}
		if !options.NoColor {
			f.colors["cyan"].Fprintf(builder, "  %s: ", t)
			fmt.Fprintf(builder, "%s\n", strings.Join(rendered, ", "))
		} else {
			fmt.Fprintf(builder, "  %s: %s\n", t, strings.Join(rendered, ", "))
		}
	}
}

// appendSummary writes the batch footer
func (f *Formatter) appendSummary(builder *strings.Builder, scan *core.ScanResult) {
	builder.WriteString("\n")
	nonPublicStr := fmt.Sprintf("%d non-public", scan.NonPublicCount)
	if !color.NoColor && scan.NonPublicCount > 0 {
		nonPublicStr = f.colors["redBold"].Sprintf("%d non-public", scan.NonPublicCount)
	}
	fmt.Fprintf(builder, "Scanned %d records: %s, %d public",
		len(scan.Results), nonPublicStr, len(scan.Results)-scan.NonPublicCount)
	if scan.SuppressedCount > 0 {
		fmt.Fprintf(builder, " (%d findings suppressed)", scan.SuppressedCount)
	}
	builder.WriteString("\n")
}

// appendHeaders adds column headers to the string builder
func (f *Formatter) appendHeaders(builder *strings.Builder, matches []detector.Match, options formatters.FormatterOptions) {
	matchWidth := f.calculateMatchColumnWidth(matches, options)
	headerStr := fmt.Sprintf("  %-8s %-12s %-12s %-8s %-10s %-*s\n",
		"LEVEL", "VALIDATOR", "TYPE", "CONF%", "LINE", matchWidth, "MATCH")
	if !options.NoColor {
		headerStr = f.colors["white"].Sprintf("  %-8s %-12s %-12s %-8s %-10s %-*s\n",
			"LEVEL", "VALIDATOR", "TYPE", "CONF%", "LINE", matchWidth, "MATCH")
	}
	builder.WriteString(headerStr)

	totalWidth := 8 + 1 + 12 + 1 + 12 + 1 + 8 + 1 + 10 + 1 + matchWidth
	separator := "  " + strings.Repeat("-", totalWidth) + "\n"
	if !options.NoColor {
		separator = f.colors["white"].Sprint("  " + strings.Repeat("-", totalWidth) + "\n")
	}
	builder.WriteString(separator)
}

// calculateMatchColumnWidth calculates the optimal width for the match column
func (f *Formatter) calculateMatchColumnWidth(matches []detector.Match, options formatters.FormatterOptions) int {
	maxWidth := 10 // Minimum width for "[REDACTED]"
	for _, match := range matches {
		if options.ShowMatch || options.Verbose {
			matchText := strings.ReplaceAll(match.Text, "\n", " ")
			matchText = strings.ReplaceAll(matchText, "\t", " ")
			runeCount := len([]rune(matchText))
			if runeCount > maxWidth {
				maxWidth = runeCount
			}
		}
	}
	// Cap at 30 characters for readability
	if maxWidth > 30 {
		maxWidth = 30
	}
	return maxWidth
}

// appendSummaryLine adds a single line summary to the string builder
func (f *Formatter) appendSummaryLine(builder *strings.Builder, match detector.Match, confidenceLevel string, allMatches []detector.Match, suppressed bool, options formatters.FormatterOptions) {
	var levelColor *color.Color
	if suppressed {
		levelColor = f.colors["white"]
	} else {
		switch confidenceLevel {
		case "HIGH":
			levelColor = f.colors["red"]
		case "MEDIUM":
			levelColor = f.colors["yellow"]
		case "LOW":
			levelColor = f.colors["green"]
		}
	}

	var levelStr string
	if suppressed {
		levelStr = fmt.Sprintf("[%-6s]", "SUPP")
		if !options.NoColor {
			levelStr = f.colors["white"].Sprintf("[%-6s]", "SUPP")
		}
	} else {
		levelStr = fmt.Sprintf("[%-6s]", confidenceLevel)
		if !options.NoColor {
			levelStr = levelColor.Sprintf("[%-6s]", confidenceLevel)
		}
	}

	typeStr := fmt.Sprintf("%-12s", match.Type)
	if !options.NoColor {
		typeStr = f.colors["cyan"].Sprintf("%-12s", match.Type)
	}

	confidenceStr := fmt.Sprintf("%7.2f%%", match.Confidence)
	if !options.NoColor {
		confidenceStr = f.colors["blue"].Sprintf("%7.2f%%", match.Confidence)
	}

	lineStr := fmt.Sprintf("line %5d", match.LineNumber)
	if !options.NoColor {
		lineStr = f.colors["magenta"].Sprintf("line %5d", match.LineNumber)
	}

	validatorName := match.Validator
	if len(validatorName) > 12 {
		validatorName = validatorName[:9] + "..."
	}
	validatorStr := fmt.Sprintf("%-12s", validatorName)
	if !options.NoColor {
		validatorStr = f.colors["green"].Sprintf("%-12s", validatorName)
	}

	var matchText string
	targetWidth := f.calculateMatchColumnWidth(allMatches, options)
	if options.ShowMatch || options.Verbose {
		matchText = strings.ReplaceAll(match.Text, "\n", " ")
		matchText = strings.ReplaceAll(matchText, "\t", " ")

		runes := []rune(matchText)
		if len(runes) > targetWidth {
			matchText = string(runes[:targetWidth-3]) + "..."
		}
	} else {
		matchText = "[REDACTED]"
	}
	runeCount := len([]rune(matchText))
	if padding := targetWidth - runeCount; padding > 0 {
		matchText += strings.Repeat(" ", padding)
	}

	fmt.Fprintf(builder, "  %s %s %s %s %s %s\n",
		levelStr,
		validatorStr,
		typeStr,
		confidenceStr,
		lineStr,
		matchText)
}

// appendDetailedMatch adds detailed match information to the string builder
func (f *Formatter) appendDetailedMatch(builder *strings.Builder, match detector.Match, confidenceLevel string, options formatters.FormatterOptions) {
	if !options.NoColor {
		f.colors["white"].Fprintf(builder, "  === Finding Details ===\n")
	} else {
		fmt.Fprintf(builder, "  === Finding Details ===\n")
	}

	if !options.NoColor {
		f.colors["cyan"].Fprintf(builder, "  Match on ")
		f.colors["magenta"].Fprintf(builder, "line %d", match.LineNumber)
		f.colors["cyan"].Fprintf(builder, ": %s\n", match.Text)
	} else {
		fmt.Fprintf(builder, "  Match on line %d: %s\n", match.LineNumber, match.Text)
	}

	if !options.NoColor {
		f.colors["cyan"].Fprintf(builder, "  Type: ")
		f.colors["white"].Fprintf(builder, "%s", match.Type)
		f.colors["cyan"].Fprintf(builder, " (check: ")
		f.colors["white"].Fprintf(builder, "%s", match.Validator)
		f.colors["cyan"].Fprintf(builder, ")\n")
	} else {
		fmt.Fprintf(builder, "  Type: %s (check: %s)\n", match.Type, match.Validator)
	}

	if match.Value != "" && match.Value != match.Text {
		if !options.NoColor {
			f.colors["cyan"].Fprintf(builder, "  Canonical value: ")
			f.colors["white"].Fprintf(builder, "%s\n", match.Value)
		} else {
			fmt.Fprintf(builder, "  Canonical value: %s\n", match.Value)
		}
	}

	var levelColor *color.Color
	switch confidenceLevel {
	case "HIGH":
		levelColor = f.colors["red"]
	case "MEDIUM":
		levelColor = f.colors["yellow"]
	case "LOW":
		levelColor = f.colors["green"]
	}

	if !options.NoColor {
		f.colors["cyan"].Fprintf(builder, "  Confidence level: ")
		f.colors["white"].Fprintf(builder, "%.2f%% ", match.Confidence)
		levelColor.Fprintf(builder, "(%s)\n", confidenceLevel)
	} else {
		fmt.Fprintf(builder, "  Confidence level: %.2f%% (%s)\n", match.Confidence, confidenceLevel)
	}

	if impact, ok := match.Metadata["context_impact"].(float64); ok {
		if !options.NoColor {
			f.colors["cyan"].Fprintf(builder, "  Context impact: ")
			if impact > 0 {
				f.colors["green"].Fprintf(builder, "+%.2f%%\n", impact)
			} else if impact < 0 {
				f.colors["red"].Fprintf(builder, "%.2f%%\n", impact)
			} else {
				f.colors["white"].Fprintf(builder, "0.00%%\n")
			}
		} else {
			if impact > 0 {
				fmt.Fprintf(builder, "  Context impact: +%.2f%%\n", impact)
			} else {
				fmt.Fprintf(builder, "  Context impact: %.2f%%\n", impact)
			}
		}
	}

	if checks, ok := match.Metadata["validation_checks"].(map[string]bool); ok {
		if !options.NoColor {
			f.colors["cyan"].Fprintf(builder, "  Validation results:\n")
		} else {
			fmt.Fprintf(builder, "  Validation results:\n")
		}

		for check, result := range checks {
			checkName := f.formatCheckName(check)
			if !options.NoColor {
				fmt.Fprintf(builder, "  - %s: ", checkName)
				if result {
					f.colors["green"].Fprintf(builder, "true\n")
				} else {
					f.colors["red"].Fprintf(builder, "false\n")
				}
			} else {
				fmt.Fprintf(builder, "  - %s: %v\n", checkName, result)
			}
		}
	}

	if len(match.Context.PositiveKeywords) > 0 || len(match.Context.NegativeKeywords) > 0 {
		if !options.NoColor {
			f.colors["cyan"].Fprintf(builder, "  Context analysis:\n")
		} else {
			fmt.Fprintf(builder, "  Context analysis:\n")
		}

		if len(match.Context.PositiveKeywords) > 0 {
			if !options.NoColor {
				fmt.Fprintf(builder, "  - Supporting keywords: ")
				f.colors["green"].Fprintf(builder, "%s\n", strings.Join(match.Context.PositiveKeywords, ", "))
			} else {
				fmt.Fprintf(builder, "  - Supporting keywords: %s\n", strings.Join(match.Context.PositiveKeywords, ", "))
			}
		}

		if len(match.Context.NegativeKeywords) > 0 {
			if !options.NoColor {
				fmt.Fprintf(builder, "  - Contradicting keywords: ")
				f.colors["red"].Fprintf(builder, "%s\n", strings.Join(match.Context.NegativeKeywords, ", "))
			} else {
				fmt.Fprintf(builder, "  - Contradicting keywords: %s\n", strings.Join(match.Context.NegativeKeywords, ", "))
			}
		}
	}

	if match.Context.BeforeText != "" || match.Context.AfterText != "" {
		if !options.NoColor {
			f.colors["cyan"].Fprintf(builder, "  Context snippet:\n")
			fmt.Fprintf(builder, "  ")
			if match.Context.BeforeText != "" {
				fmt.Fprintf(builder, "... %s", match.Context.BeforeText)
			}
			f.colors["yellow"].Fprintf(builder, "[%s]", match.Text)
			if match.Context.AfterText != "" {
				fmt.Fprintf(builder, "%s ...", match.Context.AfterText)
			}
			builder.WriteString("\n")
		} else {
			fmt.Fprintf(builder, "  Context snippet:\n  ")
			if match.Context.BeforeText != "" {
				fmt.Fprintf(builder, "... %s", match.Context.BeforeText)
			}
			fmt.Fprintf(builder, "[%s]", match.Text)
			if match.Context.AfterText != "" {
				fmt.Fprintf(builder, "%s ...", match.Context.AfterText)
			}
			builder.WriteString("\n")
		}
	}

	builder.WriteString("\n")
}

// appendDetailedSuppressedMatch adds detailed information for a suppressed finding
func (f *Formatter) appendDetailedSuppressedMatch(builder *strings.Builder, suppressed detector.SuppressedMatch, confidenceLevel string, options formatters.FormatterOptions) {
	match := suppressed.Match

	if !options.NoColor {
		f.colors["white"].Fprintf(builder, "  === Suppressed Finding ===\n")
	} else {
		fmt.Fprintf(builder, "  === Suppressed Finding ===\n")
	}

	if !options.NoColor {
		f.colors["cyan"].Fprintf(builder, "  Match on ")
		f.colors["magenta"].Fprintf(builder, "line %d", match.LineNumber)
		f.colors["cyan"].Fprintf(builder, ": %s\n", match.Text)
		f.colors["cyan"].Fprintf(builder, "  Type: ")
		f.colors["white"].Fprintf(builder, "%s ", match.Type)
		f.colors["blue"].Fprintf(builder, "(%.2f%% %s)\n", match.Confidence, confidenceLevel)
		f.colors["cyan"].Fprintf(builder, "  Suppressed by: ")
		f.colors["white"].Fprintf(builder, "%s\n", suppressed.SuppressedBy)
	} else {
		fmt.Fprintf(builder, "  Match on line %d: %s\n", match.LineNumber, match.Text)
		fmt.Fprintf(builder, "  Type: %s (%.2f%% %s)\n", match.Type, match.Confidence, confidenceLevel)
		fmt.Fprintf(builder, "  Suppressed by: %s\n", suppressed.SuppressedBy)
	}

	if suppressed.RuleReason != "" {
		if !options.NoColor {
			f.colors["cyan"].Fprintf(builder, "  Reason: ")
			f.colors["white"].Fprintf(builder, "%s\n", suppressed.RuleReason)
		} else {
			fmt.Fprintf(builder, "  Reason: %s\n", suppressed.RuleReason)
		}
	}

	builder.WriteString("\n")
}

// formatCheckName converts snake_case check names to readable labels
func (f *Formatter) formatCheckName(check string) string {
	words := strings.Split(check, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// sortMatches sorts matches by confidence level (HIGH, MEDIUM, LOW) and then by confidence score
func (f *Formatter) sortMatches(matches []detector.Match) {
	levelPriority := map[string]int{"HIGH": 0, "MEDIUM": 1, "LOW": 2}
	for i := 0; i < len(matches)-1; i++ {
		for j := i + 1; j < len(matches); j++ {
			level1 := shared.GetConfidenceLevel(matches[i].Confidence)
			level2 := shared.GetConfidenceLevel(matches[j].Confidence)

			if levelPriority[level1] > levelPriority[level2] {
				matches[i], matches[j] = matches[j], matches[i]
			} else if levelPriority[level1] == levelPriority[level2] {
				if matches[i].Confidence < matches[j].Confidence {
					matches[i], matches[j] = matches[j], matches[i]
				}
			}
		}
	}
}

func init() {
	formatters.Register(NewFormatter())
}
