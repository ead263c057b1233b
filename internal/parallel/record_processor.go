// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"runtime"
	"time"

	"sic-scan/internal/detector"
	"sic-scan/internal/observability"
	"sic-scan/internal/records"
)

// RecordProcessor manages parallel record scanning
type RecordProcessor struct {
	workerPool *WorkerPool
	observer   *observability.StandardObserver
}

// ScanStats tracks batch scanning statistics
type ScanStats struct {
	TotalRecords   int           `json:"total_records"`
	ScannedRecords int           `json:"scanned_records"`
	TotalMatches   int           `json:"total_matches"`
	TotalDuration  time.Duration `json:"total_duration_ms"`
	WorkerCount    int           `json:"worker_count"`
	AvgRecordTime  time.Duration `json:"avg_record_time_ms"`
}

// NewRecordProcessor creates a record processor. A non-positive worker
// count selects one worker per CPU, capped to avoid resource exhaustion.
func NewRecordProcessor(workers int, observer *observability.StandardObserver) *RecordProcessor {
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > 8 {
			workers = 8
		}
	}

	return &RecordProcessor{
		workerPool: NewWorkerPool(workers, observer),
		observer:   observer,
	}
}

// ProgressCallback is called when a record is completed
type ProgressCallback func(completed, total int, currentRecord string)

// ScanRecords scans multiple records in parallel. Results come back in
// input order regardless of completion order.
func (rp *RecordProcessor) ScanRecords(recs []records.Record, validators []detector.Validator) ([]*Result, *ScanStats, error) {
	return rp.ScanRecordsWithProgress(recs, validators, nil)
}

// ScanRecordsWithProgress scans multiple records in parallel with a
// progress callback.
func (rp *RecordProcessor) ScanRecordsWithProgress(recs []records.Record, validators []detector.Validator, progressCallback ProgressCallback) ([]*Result, *ScanStats, error) {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if rp.observer != nil {
		finishTiming = rp.observer.StartTiming("record_processor", "scan_records", "batch")
	}

	rp.workerPool.Start()
	defer rp.workerPool.Stop()

	// Submit jobs in a separate goroutine to prevent deadlock
	jobCount := len(recs)
	go func() {
		defer close(rp.workerPool.jobs)
		for i, rec := range recs {
			rp.workerPool.Submit(&Job{
				Index:      i,
				Record:     rec,
				Validators: validators,
			})
		}
	}()

	ordered := make([]*Result, jobCount)
	scannedCount := 0
	totalMatches := 0
	recordDuration := time.Duration(0)

	for i := 0; i < jobCount; i++ {
		result := <-rp.workerPool.Results()
		ordered[result.Index] = result

		if result.Err != nil {
			if rp.observer != nil {
				rp.observer.LogOperation(observability.StandardObservabilityData{
					Component: "record_processor",
					Operation: "scan_record",
					Origin:    result.RecordID,
					Success:   false,
					Error:     result.Err.Error(),
				})
			}
		} else {
			scannedCount++
		}
		totalMatches += len(result.Matches)
		recordDuration += result.Duration

		if progressCallback != nil {
			progressCallback(i+1, jobCount, result.RecordID)
		}
	}

	overallDuration := time.Since(start)

	stats := &ScanStats{
		TotalRecords:   jobCount,
		ScannedRecords: scannedCount,
		TotalMatches:   totalMatches,
		TotalDuration:  overallDuration,
		WorkerCount:    rp.workerPool.workers,
		AvgRecordTime:  recordDuration / time.Duration(max(scannedCount, 1)),
	}

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"total_records":   jobCount,
			"scanned_records": scannedCount,
			"total_matches":   totalMatches,
			"worker_count":    rp.workerPool.workers,
			"duration_ms":     overallDuration.Milliseconds(),
		})
	}

	return ordered, stats, nil
}
