// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sic-scan/internal/security"
)

// textColumnCandidates are the header names tried, in order, when no
// column is configured. They cover the export conventions of the federal
// e-SIC portal and the common municipal variants.
var textColumnCandidates = []string{
	"texto mascarado",
	"texto",
	"detalhamento",
	"descricao",
	"conteudo",
	"text",
}

// CSVSource yields one record per data row of a spreadsheet export.
type CSVSource struct {
	path   string
	column string
}

// NewCSVSource creates a CSV source. column selects the text column by
// header name; empty means auto-detect.
func NewCSVSource(path, column string) *CSVSource {
	return &CSVSource{path: path, column: column}
}

// Name returns the file path.
func (s *CSVSource) Name() string { return s.path }

// Load parses the file and extracts the text column. The header row is
// required. Rows whose text cell is blank are skipped; record IDs count
// data rows from 1 so they line up with spreadsheet row numbers as users
// see them below the header.
func (s *CSVSource) Load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	// The raw buffer holds every cell, not just the text column
	defer security.WipeBytes(data)

	// Excel-generated exports open with a UTF-8 BOM
	content := strings.TrimPrefix(string(data), "\uFEFF")

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file, header row required", s.path)
	}

	col, err := resolveColumn(rows[0], s.column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	base := filepath.Base(s.path)
	var recs []Record
	for i, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		text := row[col]
		if blank(text) {
			continue
		}
		recs = append(recs, Record{
			ID:     fmt.Sprintf("%s#row%d", base, i+1),
			Index:  len(recs),
			Source: s.path,
			Text:   text,
		})
	}
	return recs, nil
}

// detectDelimiter inspects the header line. Brazilian government exports
// are typically semicolon-delimited because the decimal separator is a
// comma.
func detectDelimiter(content string) rune {
	header := content
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		header = content[:idx]
	}
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

// resolveColumn finds the text column index in the header row. An explicit
// name must exist; auto-detection walks the candidate list in order.
func resolveColumn(header []string, want string) (int, error) {
	normalized := make([]string, len(header))
	for i, cell := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(cell))
	}

	if want != "" {
		target := strings.ToLower(strings.TrimSpace(want))
		for i, cell := range normalized {
			if cell == target {
				return i, nil
			}
		}
		return 0, fmt.Errorf("column %q not found in header %v", want, header)
	}

	for _, candidate := range textColumnCandidates {
		for i, cell := range normalized {
			if cell == candidate {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("no recognizable text column in header %v; select one with --column", header)
}
