// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import "unicode/utf8"

// ContextExtractor extracts context from record text around a specific match
type ContextExtractor struct {
	// Number of characters before and after the match to consider
	ContextChars int
}

// NewContextExtractor creates a new context extractor with default settings
func NewContextExtractor() *ContextExtractor {
	return &ContextExtractor{
		ContextChars: 50, // Look at 50 chars before and after by default
	}
}

// WithContextChars sets the number of context characters
func (ce *ContextExtractor) WithContextChars(chars int) *ContextExtractor {
	ce.ContextChars = chars
	return ce
}

// Extract builds the context window for a match spanning [start, end) in text.
// Record text is already in memory, so the window comes straight from byte
// offsets; slices back off to rune boundaries so accented text never splits.
func (ce *ContextExtractor) Extract(text string, start, end int) ContextInfo {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if end < start {
		end = start
	}

	lineStart, lineEnd := lineBounds(text, start)

	return ContextInfo{
		BeforeText: sliceBefore(text, start, ce.ContextChars),
		AfterText:  sliceAfter(text, end, ce.ContextChars),
		FullLine:   text[lineStart:lineEnd],
	}
}

// sliceBefore returns up to chars bytes of text ending at offset, aligned to
// a rune boundary.
func sliceBefore(text string, offset, chars int) string {
	from := max(0, offset-chars)
	for from < offset && !utf8.RuneStart(text[from]) {
		from++
	}
	return text[from:offset]
}

// sliceAfter returns up to chars bytes of text starting at offset, aligned to
// a rune boundary.
func sliceAfter(text string, offset, chars int) string {
	to := min(len(text), offset+chars)
	for to > offset && to < len(text) && !utf8.RuneStart(text[to]) {
		to--
	}
	return text[offset:to]
}

// Helper functions
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
