// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPDFPages bounds the work done on a single document. Attachment PDFs
// past this size are almost always scanned images or bulk reports, not
// request text.
const maxPDFPages = 100

// PDFSource yields one record per page of a PDF document.
type PDFSource struct {
	path string
}

// NewPDFSource creates a PDF source.
func NewPDFSource(path string) *PDFSource {
	return &PDFSource{path: path}
}

// Name returns the file path.
func (s *PDFSource) Name() string { return s.path }

// Load extracts page text. Pages that fail to extract are skipped rather
// than failing the file; blank pages yield no record.
func (s *PDFSource) Load() ([]Record, error) {
	f, r, err := pdf.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if pageCount > maxPDFPages {
		pageCount = maxPDFPages
	}

	base := filepath.Base(s.path)
	var recs []Record
	for i := 1; i <= pageCount; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		text, err := pageText(p)
		if err != nil {
			continue
		}
		if blank(text) {
			continue
		}

		recs = append(recs, Record{
			ID:     fmt.Sprintf("%s#page%d", base, i),
			Index:  len(recs),
			Source: s.path,
			Text:   text,
		})
	}
	return recs, nil
}

// pageText reconstructs a page's text row by row so field labels and their
// values stay on one line. Falls back to the plain extraction when the
// positioned one fails.
func pageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sorted = append(sorted, row)
		}
	}

	// Read top to bottom regardless of content-stream order
	sort.Slice(sorted, func(i, j int) bool {
		return averageY(sorted[i].Content) < averageY(sorted[j].Content)
	})

	var b strings.Builder
	for _, row := range sorted {
		line := strings.TrimSpace(rowText(row.Content))
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// averageY averages the Y coordinate of a row's text elements.
func averageY(elements []pdf.Text) float64 {
	if len(elements) == 0 {
		return 0
	}
	var total float64
	for _, element := range elements {
		total += element.Y
	}
	return total / float64(len(elements))
}

// rowText joins a row's elements left to right, inserting a space where
// the horizontal gap between elements is wide relative to the font size.
func rowText(elements []pdf.Text) string {
	if len(elements) == 0 {
		return ""
	}

	sorted := make([]pdf.Text, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var b strings.Builder
	for i, element := range sorted {
		b.WriteString(element.S)

		if i < len(sorted)-1 {
			gap := sorted[i+1].X - (element.X + element.W)
			fontSize := element.FontSize
			if fontSize <= 0 {
				fontSize = 12
			}
			if gap > fontSize*0.2 {
				b.WriteString(" ")
			}
		}
	}
	return b.String()
}
