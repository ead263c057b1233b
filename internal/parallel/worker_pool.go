// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel fans scan work out across records. Parallelism is
// per record, never per validator: each record's checks run in a fixed
// order so repeated runs over the same batch produce identical output.
package parallel

import (
	"context"
	"sync"
	"time"

	recordcontext "sic-scan/internal/context"
	"sic-scan/internal/detector"
	"sic-scan/internal/observability"
	"sic-scan/internal/records"
)

// WorkerPool manages parallel record scanning
type WorkerPool struct {
	workers  int
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	observer *observability.StandardObserver
	analyzer *recordcontext.ContextAnalyzer
}

// Job pairs one record with the validators to run over it
type Job struct {
	Index      int
	Record     records.Record
	Validators []detector.Validator
}

// Result carries one record's matches back to the collector. Index is
// the job's position in the submitted batch, used to restore input
// order after out-of-order completion.
type Result struct {
	Index    int
	RecordID string
	Matches  []detector.Match
	Err      error
	Duration time.Duration
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workers int, observer *observability.StandardObserver) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
		observer: observer,
		analyzer: recordcontext.NewContextAnalyzer(),
	}
}

// Start initializes worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop gracefully shuts down the worker pool
func (wp *WorkerPool) Stop() {
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Submit adds a job to the queue
func (wp *WorkerPool) Submit(job *Job) {
	select {
	case wp.jobs <- job:
	case <-wp.ctx.Done():
	}
}

// Results returns the results channel
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

// worker processes jobs from the queue
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job, id)

		select {
		case wp.results <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob scans a single record with every validator. A failing
// validator is isolated: its error is reported on the result while the
// other checks' matches are kept.
func (wp *WorkerPool) processJob(job *Job, workerID int) *Result {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if wp.observer != nil {
		finishTiming = wp.observer.StartTiming("worker_pool", "scan_record", job.Record.ID)
	}

	text := detector.NormalizeText(job.Record.Text)

	var allMatches []detector.Match
	var firstErr error

	for _, validator := range job.Validators {
		matches, err := validator.ValidateContent(text, job.Record.ID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		allMatches = append(allMatches, matches...)
	}

	// Record-level context shades reported confidence; it never adds or
	// removes findings.
	if len(allMatches) > 0 {
		insights := wp.analyzer.AnalyzeContext(text, job.Record.ID)
		for i := range allMatches {
			adjustment := wp.analyzer.GetConfidenceAdjustment(insights, allMatches[i].Validator)
			if adjustment != 0 {
				allMatches[i].Confidence = clampConfidence(allMatches[i].Confidence + adjustment)
			}
			if allMatches[i].Metadata == nil {
				allMatches[i].Metadata = make(map[string]any)
			}
			allMatches[i].Metadata["record_structure"] = insights.DocumentType
			allMatches[i].Metadata["record_domain"] = insights.Domain
			if adjustment != 0 {
				allMatches[i].Metadata["record_context_adjustment"] = adjustment
			}
		}
	}

	for i := range allMatches {
		allMatches[i].Filename = job.Record.Source
	}

	duration := time.Since(start)

	if finishTiming != nil {
		finishTiming(firstErr == nil, map[string]interface{}{
			"worker_id":   workerID,
			"match_count": len(allMatches),
			"duration_ms": duration.Milliseconds(),
			"had_error":   firstErr != nil,
		})
	}

	return &Result{
		Index:    job.Index,
		RecordID: job.Record.ID,
		Matches:  allMatches,
		Err:      firstErr,
		Duration: duration,
	}
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
