// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package records loads access-to-information request text from input
// files. Every input becomes a flat batch of records; the scanner treats
// each record as one independent unit of text.
package records

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sic-scan/internal/detector"
)

// Record is one unit of request text to screen.
type Record struct {
	ID     string // stable identifier, e.g. "pedidos.csv#row3"
	Index  int    // position in the batch; results reassemble on it
	Source string // path of the file the record came from
	Text   string // raw text, not yet normalized
}

// Source yields the records contained in one input file.
type Source interface {
	Name() string
	Load() ([]Record, error)
}

// Discover resolves a path into record sources. A file yields one source
// chosen by extension; a directory yields one source per supported file,
// walking subdirectories when recursive is set. column is handed to CSV
// sources and ignored by the rest.
func Discover(path string, recursive bool, column string) ([]Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", path, err)
	}

	if !info.IsDir() {
		return []Source{sourceFor(path, column)}, nil
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && supportedExtension(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	} else {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", path, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && supportedExtension(entry.Name()) {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	sources := make([]Source, 0, len(files))
	for _, f := range files {
		sources = append(sources, sourceFor(f, column))
	}
	return sources, nil
}

// Collect loads every source and reindexes the records into one batch.
func Collect(sources []Source) ([]Record, error) {
	var batch []Record
	for _, source := range sources {
		recs, err := source.Load()
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			rec.Index = len(batch)
			batch = append(batch, rec)
		}
	}
	return batch, nil
}

// sourceFor picks the source type by extension. Anything unrecognized is
// treated as plain text; a wrong guess surfaces as garbled record text,
// not a crash.
func sourceFor(path, column string) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVSource(path, column)
	case ".pdf":
		return NewPDFSource(path)
	default:
		return NewTextSource(path)
	}
}

// supportedExtension filters directory walks. Direct file arguments skip
// this check so odd extensions can still be scanned as text on request.
func supportedExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".pdf", ".txt":
		return true
	}
	return false
}

// blank reports whether text normalizes to nothing worth scanning.
func blank(text string) bool {
	return detector.NormalizeText(text) == ""
}

// TextSource treats a whole file as a single record.
type TextSource struct {
	path string
}

// NewTextSource creates a plain-text source.
func NewTextSource(path string) *TextSource {
	return &TextSource{path: path}
}

// Name returns the file path.
func (s *TextSource) Name() string { return s.path }

// Load reads the file as one record, or none when it is blank.
func (s *TextSource) Load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	text := string(data)
	if blank(text) {
		return nil, nil
	}

	return []Record{{
		ID:     filepath.Base(s.path),
		Source: s.path,
		Text:   text,
	}}, nil
}
