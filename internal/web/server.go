// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package web exposes the scan pipeline as a small JSON API so screening
// services can check records before publication without shelling out to
// the CLI. The server carries no authentication; put it behind whatever
// the deployment already uses.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sic-scan/internal/config"
	"sic-scan/internal/core"
	"sic-scan/internal/formatters"
	"sic-scan/internal/formatters/shared"
	"sic-scan/internal/records"
	"sic-scan/internal/suppressions"
	"sic-scan/internal/version"
)

// Server hosts the scan API on one port.
type Server struct {
	port       string
	httpServer *http.Server
	config     *config.Config
}

// ScanRequest is the POST /scan payload.
type ScanRequest struct {
	Records []RecordInput `json:"records"`

	// Checks narrows the validators to run; empty means all.
	Checks []string `json:"checks,omitempty"`

	// StrongTypes overrides the configured classification set; empty
	// keeps the server configuration.
	StrongTypes []string `json:"strong_types,omitempty"`
}

// RecordInput is one record to screen.
type RecordInput struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ScanResponse is the POST /scan reply.
type ScanResponse struct {
	Summary shared.Summary        `json:"summary"`
	Results []shared.RecordReport `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// maxRequestBytes bounds the request body; batches beyond this belong in
// the CLI, not a synchronous HTTP call.
const maxRequestBytes = 10 << 20

// NewServer creates a scan API server. The configuration is resolved the
// same way the CLI resolves it, so both surfaces classify identically.
func NewServer(port string) *Server {
	return &Server{
		port:   port,
		config: config.LoadConfigOrDefault(""),
	}
}

// Start begins serving and blocks until the listener fails.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/scan", s.handleScan)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/version", s.handleVersion)

	s.httpServer = &http.Server{
		Addr:         ":" + s.port,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	fmt.Printf("sic-scan web server starting on http://localhost:%s\n", s.port)
	return s.httpServer.ListenAndServe()
}

// Stop shuts the listener down.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Close()
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.sendError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var req ScanRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := decoder.Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.Records) == 0 {
		s.sendError(w, http.StatusBadRequest, "no records to scan")
		return
	}

	cfg := s.config
	if len(req.StrongTypes) > 0 {
		override := *cfg
		override.Classification.StrongTypes = req.StrongTypes
		if _, err := override.Classification.TypeSet(); err != nil {
			s.sendError(w, http.StatusBadRequest, err.Error())
			return
		}
		cfg = &override
	}

	var recs []records.Record
	for i, input := range req.Records {
		id := input.ID
		if id == "" {
			id = fmt.Sprintf("record#%d", i+1)
		}
		recs = append(recs, records.Record{ID: id, Index: len(recs), Text: input.Text})
	}

	scanConfig := core.ScanConfig{
		Checks:             req.Checks,
		Workers:            1,
		Config:             cfg,
		SuppressionManager: suppressions.NewSuppressionManager(""),
	}

	scanResult, err := core.ScanRecords(recs, scanConfig)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	options := formatters.FormatterOptions{
		ConfidenceLevel: core.ParseConfidenceLevels("all"),
		ShowMatch:       true,
		Verbose:         true,
	}
	report := shared.ConvertScanResult(scanResult, options)

	s.sendJSON(w, http.StatusOK, ScanResponse{
		Summary: report.Summary,
		Results: report.Results,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	s.sendJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "sic-scan",
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	s.sendJSON(w, http.StatusOK, version.Full())
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, errorResponse{Error: message})
}
