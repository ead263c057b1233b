// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"sic-scan/internal/detector"
	"sic-scan/internal/records"
)

// stubValidator reports one match per occurrence of needle in the text.
// An optional per-record delay shuffles completion order so ordering
// tests exercise the reassembly path.
type stubValidator struct {
	name   string
	needle string
	delay  time.Duration
	failOn string
	calls  atomic.Int32
}

func (s *stubValidator) Validate(filePath string) ([]detector.Match, error) {
	return nil, nil
}

func (s *stubValidator) CalculateConfidence(match string) (float64, map[string]bool) {
	return 100, map[string]bool{}
}

func (s *stubValidator) AnalyzeContext(match string, context detector.ContextInfo) float64 {
	return 0
}

func (s *stubValidator) ValidateContent(content string, origin string) ([]detector.Match, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.failOn != "" && origin == s.failOn {
		return nil, fmt.Errorf("%s: engine unavailable", s.name)
	}

	var matches []detector.Match
	for i := 0; i+len(s.needle) <= len(content); i++ {
		if content[i:i+len(s.needle)] == s.needle {
			matches = append(matches, detector.Match{
				Text:       s.needle,
				Value:      s.needle,
				RecordID:   origin,
				Type:       s.name,
				Validator:  s.name,
				Confidence: 100,
			})
		}
	}
	return matches, nil
}

func makeRecords(texts ...string) []records.Record {
	recs := make([]records.Record, len(texts))
	for i, text := range texts {
		recs[i] = records.Record{
			ID:     fmt.Sprintf("pedidos.csv#row%d", i+1),
			Index:  i,
			Source: "pedidos.csv",
			Text:   text,
		}
	}
	return recs
}

func TestScanRecords_ResultsInInputOrder(t *testing.T) {
	recs := makeRecords(
		"alpha token here",
		"nothing to see",
		"token and token again",
		"token at the end",
	)

	// The delay makes later records finish first under 4 workers
	validator := &stubValidator{name: "STUB", needle: "token", delay: 5 * time.Millisecond}

	rp := NewRecordProcessor(4, nil)
	results, stats, err := rp.ScanRecords(recs, []detector.Validator{validator})
	if err != nil {
		t.Fatalf("ScanRecords failed: %v", err)
	}

	if len(results) != len(recs) {
		t.Fatalf("expected %d results, got %d", len(recs), len(results))
	}
	for i, result := range results {
		if result == nil {
			t.Fatalf("result %d missing", i)
		}
		if result.Index != i {
			t.Errorf("result %d carries index %d", i, result.Index)
		}
		if result.RecordID != recs[i].ID {
			t.Errorf("result %d: expected record %s, got %s", i, recs[i].ID, result.RecordID)
		}
	}

	wantCounts := []int{1, 0, 2, 1}
	for i, want := range wantCounts {
		if len(results[i].Matches) != want {
			t.Errorf("record %d: expected %d matches, got %d", i, want, len(results[i].Matches))
		}
	}

	if stats.TotalRecords != 4 || stats.ScannedRecords != 4 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.TotalMatches != 4 {
		t.Errorf("expected 4 total matches, got %d", stats.TotalMatches)
	}
}

func TestScanRecords_NormalizesBeforeValidators(t *testing.T) {
	// Non-breaking space between the words; the validator needle uses a
	// plain space and only matches if normalization ran first
	recs := makeRecords("  meu token aqui  ")
	validator := &stubValidator{name: "STUB", needle: "meu token"}

	rp := NewRecordProcessor(1, nil)
	results, _, err := rp.ScanRecords(recs, []detector.Validator{validator})
	if err != nil {
		t.Fatalf("ScanRecords failed: %v", err)
	}
	if len(results[0].Matches) != 1 {
		t.Fatalf("expected normalized text to match, got %d matches", len(results[0].Matches))
	}
}

func TestScanRecords_ValidatorErrorIsIsolated(t *testing.T) {
	recs := makeRecords("token one", "token two")

	failing := &stubValidator{name: "FLAKY", needle: "never", failOn: "pedidos.csv#row2"}
	healthy := &stubValidator{name: "STUB", needle: "token"}

	rp := NewRecordProcessor(2, nil)
	results, stats, err := rp.ScanRecords(recs, []detector.Validator{failing, healthy})
	if err != nil {
		t.Fatalf("ScanRecords failed: %v", err)
	}

	if results[0].Err != nil {
		t.Errorf("record 1 should scan cleanly, got error %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("record 2 should carry the failing validator's error")
	}
	if !strings.Contains(results[1].Err.Error(), "FLAKY") {
		t.Errorf("unexpected error %v", results[1].Err)
	}

	// The healthy validator's matches survive the other one's failure
	if len(results[1].Matches) != 1 {
		t.Errorf("expected 1 match on the failed record, got %d", len(results[1].Matches))
	}

	if stats.ScannedRecords != 1 {
		t.Errorf("expected 1 cleanly scanned record, got %d", stats.ScannedRecords)
	}
}

func TestScanRecords_MatchesCarrySource(t *testing.T) {
	recs := makeRecords("um token")
	validator := &stubValidator{name: "STUB", needle: "token"}

	rp := NewRecordProcessor(1, nil)
	results, _, err := rp.ScanRecords(recs, []detector.Validator{validator})
	if err != nil {
		t.Fatalf("ScanRecords failed: %v", err)
	}

	match := results[0].Matches[0]
	if match.Filename != "pedidos.csv" {
		t.Errorf("expected source stamped on match, got %q", match.Filename)
	}
	if match.RecordID != "pedidos.csv#row1" {
		t.Errorf("expected record ID on match, got %q", match.RecordID)
	}
}

func TestScanRecords_Progress(t *testing.T) {
	recs := makeRecords("a", "b", "c")
	validator := &stubValidator{name: "STUB", needle: "zzz"}

	var completed []int
	rp := NewRecordProcessor(2, nil)
	_, _, err := rp.ScanRecordsWithProgress(recs, []detector.Validator{validator},
		func(done, total int, currentRecord string) {
			completed = append(completed, done)
			if total != 3 {
				t.Errorf("expected total 3, got %d", total)
			}
		})
	if err != nil {
		t.Fatalf("ScanRecordsWithProgress failed: %v", err)
	}

	if len(completed) != 3 {
		t.Fatalf("expected 3 progress calls, got %d", len(completed))
	}
	for i, done := range completed {
		if done != i+1 {
			t.Errorf("progress call %d reported %d", i, done)
		}
	}
}

func TestScanRecords_EmptyBatch(t *testing.T) {
	rp := NewRecordProcessor(2, nil)
	results, stats, err := rp.ScanRecords(nil, []detector.Validator{&stubValidator{name: "STUB", needle: "x"}})
	if err != nil {
		t.Fatalf("ScanRecords failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if stats.TotalRecords != 0 {
		t.Errorf("expected 0 total records, got %d", stats.TotalRecords)
	}
}

func TestNewRecordProcessor_AutoWorkers(t *testing.T) {
	rp := NewRecordProcessor(0, nil)
	if rp.workerPool.workers < 1 {
		t.Error("auto worker count should be at least 1")
	}
	if rp.workerPool.workers > 8 {
		t.Errorf("auto worker count should be capped, got %d", rp.workerPool.workers)
	}
}

func TestEachValidatorRunsOncePerRecord(t *testing.T) {
	recs := makeRecords("x", "y", "z", "w")
	validator := &stubValidator{name: "STUB", needle: "q"}

	rp := NewRecordProcessor(3, nil)
	if _, _, err := rp.ScanRecords(recs, []detector.Validator{validator}); err != nil {
		t.Fatalf("ScanRecords failed: %v", err)
	}
	if got := validator.calls.Load(); got != 4 {
		t.Errorf("expected 4 validator invocations, got %d", got)
	}
}
