// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core wires the scan pipeline together: validators produce
// matches, suppressions filter them, the mapping collects canonical
// values per type, conflict resolution enforces value ownership and the
// classifier turns the result into a publication verdict.
package core

import (
	"errors"
	"os"
	"strings"

	"sic-scan/internal/config"
	"sic-scan/internal/detector"
	"sic-scan/internal/ner"
	"sic-scan/internal/observability"
	"sic-scan/internal/parallel"
	"sic-scan/internal/records"
	"sic-scan/internal/suppressions"
)

// ScanConfig holds configuration for scanning operations.
type ScanConfig struct {
	Checks  []string
	Workers int
	Debug   bool
	Config  *config.Config
	Profile *config.Profile

	// SuppressionManager, when non-nil, is applied to matches before
	// mapping assembly. Suppressed values never influence the verdict.
	SuppressionManager *suppressions.SuppressionManager

	// Recognizer overrides the NER engine behind PERSON_NAME. Nil
	// selects the process-wide default.
	Recognizer ner.Recognizer

	// Observer receives timing and debug events. Nil builds one from
	// the Debug setting.
	Observer *observability.StandardObserver

	// ProgressCallback, when non-nil, is invoked as records complete.
	ProgressCallback parallel.ProgressCallback
}

// RecordResult is the full scan outcome for one record.
type RecordResult struct {
	Record     records.Record
	Mapping    detector.Mapping
	Verdict    detector.Verdict
	Matches    []detector.Match
	Suppressed []detector.SuppressedMatch
	Conflicts  []Conflict
	Err        error
}

// ScanResult holds the results of a batch scanning operation. Results
// keep the input record order.
type ScanResult struct {
	Results         []RecordResult
	Stats           *parallel.ScanStats
	NonPublicCount  int
	SuppressedCount int
}

// ScanRecords runs the full pipeline over a batch of records.
func ScanRecords(recs []records.Record, scanConfig ScanConfig) (*ScanResult, error) {
	observer := scanConfig.Observer
	if observer == nil {
		observer = observability.NewStandardObserver(observability.ObservabilityMetrics, os.Stderr)
		if scanConfig.Debug {
			debugObs := observability.NewDebugObserver(os.Stderr)
			observer = debugObs.StandardObserver
			observer.DebugObserver = debugObs
		}
	}

	strongTypes, err := StrongTypes(scanConfig.Config)
	if err != nil {
		return nil, err
	}

	enabledChecks := ParseChecksToRun(scanConfig.Checks)
	validatorSet := BuildValidatorSet(enabledChecks, scanConfig.Config, scanConfig.Profile, scanConfig.Recognizer)
	orderedValidators := ValidatorsInOrder(validatorSet)

	processor := parallel.NewRecordProcessor(scanConfig.Workers, observer)
	results, stats, err := processor.ScanRecordsWithProgress(recs, orderedValidators, scanConfig.ProgressCallback)
	if err != nil {
		return nil, err
	}

	// A recognizer that never came up is a configuration failure, not a
	// per-record one: every record would lose PERSON_NAME detection and
	// name-only records would come out public. Abort the batch instead.
	for _, result := range results {
		if errors.Is(result.Err, ner.ErrInit) {
			return nil, result.Err
		}
	}

	scanResult := &ScanResult{
		Results: make([]RecordResult, 0, len(results)),
		Stats:   stats,
	}

	for i, result := range results {
		recordResult := assembleRecord(recs[i], result, scanConfig.SuppressionManager, strongTypes)
		scanResult.SuppressedCount += len(recordResult.Suppressed)
		if recordResult.Verdict == detector.VerdictNonPublic {
			scanResult.NonPublicCount++
		}
		scanResult.Results = append(scanResult.Results, recordResult)
	}

	return scanResult, nil
}

// ScanText runs the pipeline over a single piece of text.
func ScanText(text, recordID string, scanConfig ScanConfig) (*RecordResult, error) {
	rec := records.Record{ID: recordID, Text: text}
	scanResult, err := ScanRecords([]records.Record{rec}, scanConfig)
	if err != nil {
		return nil, err
	}
	return &scanResult.Results[0], nil
}

// assembleRecord turns one record's raw matches into a resolved mapping
// and verdict. Suppression runs first so suppressed values never reach
// the mapping; conflict losers are then dropped from the match list so
// reports stay consistent with the mapping.
func assembleRecord(rec records.Record, result *parallel.Result, manager *suppressions.SuppressionManager, strongTypes []detector.PIIType) RecordResult {
	recordResult := RecordResult{
		Record: rec,
		Err:    result.Err,
	}

	kept := result.Matches
	if manager != nil {
		kept = nil
		for _, match := range result.Matches {
			if isSuppressed, rule := manager.IsSuppressed(match); isSuppressed {
				recordResult.Suppressed = append(recordResult.Suppressed, detector.SuppressedMatch{
					Match:        match,
					SuppressedBy: rule.ID,
					RuleReason:   rule.Reason,
					ExpiresAt:    rule.ExpiresAt,
				})
				continue
			}
			kept = append(kept, match)
		}
	}

	// Mapping assembly keeps first-seen order per type
	for _, match := range kept {
		if t, ok := detector.ParseType(match.Validator); ok {
			recordResult.Mapping.Add(t, match.Value)
		}
	}

	recordResult.Conflicts = ResolveConflicts(&recordResult.Mapping)

	if len(recordResult.Conflicts) > 0 {
		lost := make(map[string]bool, len(recordResult.Conflicts))
		for _, conflict := range recordResult.Conflicts {
			lost[string(conflict.Type)+"|"+conflict.Value] = true
		}
		var filtered []detector.Match
		for _, match := range kept {
			if lost[match.Validator+"|"+match.Value] {
				continue
			}
			filtered = append(filtered, match)
		}
		kept = filtered
	}
	recordResult.Matches = kept

	recordResult.Verdict = Classify(&recordResult.Mapping, strongTypes)
	return recordResult
}

// ParseChecksToRun converts a slice of check names into an enabled-checks map.
// An empty slice or ["all"] enables every check. Names are matched
// case-insensitively.
func ParseChecksToRun(checks []string) map[string]bool {
	result := map[string]bool{
		"CPF":         false,
		"RG":          false,
		"EMAIL":       false,
		"PHONE":       false,
		"ADDRESS":     false,
		"PERSON_NAME": false,
	}

	if len(checks) == 0 || (len(checks) == 1 && strings.EqualFold(strings.TrimSpace(checks[0]), "all")) {
		for key := range result {
			result[key] = true
		}
		return result
	}

	for _, check := range checks {
		if checkStr := strings.ToUpper(strings.TrimSpace(check)); checkStr != "" {
			if _, exists := result[checkStr]; exists {
				result[checkStr] = true
			}
		}
	}

	return result
}

// ParseConfidenceLevels converts a comma-separated confidence level string into a map.
// "all" or empty string enables every level.
func ParseConfidenceLevels(levels string) map[string]bool {
	result := map[string]bool{
		"high":   false,
		"medium": false,
		"low":    false,
	}

	if levels == "all" || levels == "" {
		result["high"] = true
		result["medium"] = true
		result["low"] = true
		return result
	}

	for _, level := range strings.Split(levels, ",") {
		switch strings.ToLower(strings.TrimSpace(level)) {
		case "high", "medium", "low":
			result[strings.ToLower(strings.TrimSpace(level))] = true
		}
	}

	return result
}

// ConfidenceTier buckets a confidence score for reporting. Tiers group
// findings in output and drive display filtering; they never affect
// acceptance or the verdict.
func ConfidenceTier(confidence float64) string {
	switch {
	case confidence >= 90:
		return "high"
	case confidence >= 60:
		return "medium"
	default:
		return "low"
	}
}
