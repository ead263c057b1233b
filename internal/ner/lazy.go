// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ner

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInit marks a recognizer construction failure. Entity recognition
// cannot run at all in that state, so scans treat it as fatal for the
// whole batch rather than a per-record condition.
var ErrInit = errors.New("recognizer initialization failed")

// Lazy defers construction of an expensive recognizer until the first
// Entities call and then shares the one instance. A failed construction is
// cached: every later call returns the same error, there is no retry and no
// fallback recognizer.
type Lazy struct {
	build func() (Recognizer, error)
	once  sync.Once
	rec   Recognizer
	err   error
}

// NewLazy wraps a recognizer constructor.
func NewLazy(build func() (Recognizer, error)) *Lazy {
	return &Lazy{build: build}
}

// Entities constructs the recognizer on first use and delegates to it.
func (l *Lazy) Entities(text string) ([]Span, error) {
	l.once.Do(func() {
		l.rec, l.err = l.build()
		if l.err != nil {
			l.err = fmt.Errorf("%w: %w", ErrInit, l.err)
		}
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.rec.Entities(text)
}

var defaultRecognizer = NewLazy(func() (Recognizer, error) {
	r := NewProseRecognizer()
	// Run one throwaway document so the model loads here, once, and a broken
	// model surfaces as the cached construction error.
	if _, err := r.Entities("aquecimento"); err != nil {
		return nil, err
	}
	return r, nil
})

// Default returns the process-wide recognizer. The model does not load until
// a scan first asks for entities, so runs with PERSON_NAME disabled never pay
// for it.
func Default() Recognizer {
	return defaultRecognizer
}
