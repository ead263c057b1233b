// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ner

import "sync"

// FakeRecognizer is a scripted Recognizer for tests. Spans for a text come
// from ByText when the exact text is present, otherwise from Spans.
type FakeRecognizer struct {
	ByText map[string][]Span
	Spans  []Span
	Err    error

	mu    sync.Mutex
	calls int
}

// Entities returns the scripted spans.
func (f *FakeRecognizer) Entities(text string) ([]Span, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	if spans, ok := f.ByText[text]; ok {
		return spans, nil
	}
	return f.Spans, nil
}

// CallCount reports how many times Entities ran.
func (f *FakeRecognizer) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
