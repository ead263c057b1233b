// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import "strings"

// NormalizeText prepares raw record text for scanning: leading and trailing
// whitespace is trimmed and non-breaking spaces (U+00A0, common in text
// copied out of office documents and web portals) become regular spaces.
// Case, accents and inner whitespace are left alone so match offsets stay
// meaningful for reporting.
func NormalizeText(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), " ", " ")
}

// LineAt returns the 1-based line number of a byte offset in text.
func LineAt(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	return 1 + strings.Count(text[:offset], "\n")
}

// lineBounds returns the byte range of the line containing offset,
// excluding the newline itself.
func lineBounds(text string, offset int) (int, int) {
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end == -1 {
		end = len(text)
	} else {
		end += offset
	}
	return start, end
}
