// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ner

import (
	"errors"
	"sync"
	"testing"
)

func TestPeople_FiltersByLabel(t *testing.T) {
	spans := []Span{
		{Text: "João Silva", Label: LabelPerson},
		{Text: "Brasília", Label: "GPE"},
		{Text: "Maria Souza", Label: LabelPerson},
	}

	people := People(spans)
	if len(people) != 2 {
		t.Fatalf("expected 2 person spans, got %d", len(people))
	}
	if people[0].Text != "João Silva" || people[1].Text != "Maria Souza" {
		t.Errorf("unexpected people: %v", people)
	}
}

func TestPeople_Empty(t *testing.T) {
	if got := People(nil); got != nil {
		t.Errorf("expected nil for no spans, got %v", got)
	}
}

func TestLazy_BuildsOnce(t *testing.T) {
	builds := 0
	lazy := NewLazy(func() (Recognizer, error) {
		builds++
		return &FakeRecognizer{Spans: []Span{{Text: "Ana Lima", Label: LabelPerson}}}, nil
	})

	for i := 0; i < 3; i++ {
		spans, err := lazy.Entities("qualquer texto")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}
	}

	if builds != 1 {
		t.Errorf("expected a single build, got %d", builds)
	}
}

func TestLazy_CachesConstructionError(t *testing.T) {
	builds := 0
	wantErr := errors.New("model unavailable")
	lazy := NewLazy(func() (Recognizer, error) {
		builds++
		return nil, wantErr
	})

	for i := 0; i < 2; i++ {
		_, err := lazy.Entities("texto")
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected cached construction error, got %v", err)
		}
		if !errors.Is(err, ErrInit) {
			t.Errorf("construction error should carry ErrInit, got %v", err)
		}
	}
	if builds != 1 {
		t.Errorf("failed build should not retry, got %d builds", builds)
	}
}

func TestLazy_ConcurrentFirstUse(t *testing.T) {
	builds := 0
	lazy := NewLazy(func() (Recognizer, error) {
		builds++
		return &FakeRecognizer{}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := lazy.Entities("texto"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if builds != 1 {
		t.Errorf("expected a single build under concurrency, got %d", builds)
	}
}

func TestFakeRecognizer_ByTextTakesPrecedence(t *testing.T) {
	fake := &FakeRecognizer{
		ByText: map[string][]Span{
			"texto com nome": {{Text: "Pedro Alves", Label: LabelPerson}},
		},
		Spans: []Span{{Text: "fallback", Label: LabelPerson}},
	}

	spans, err := fake.Entities("texto com nome")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 1 || spans[0].Text != "Pedro Alves" {
		t.Errorf("expected scripted span, got %v", spans)
	}

	spans, _ = fake.Entities("outro texto")
	if len(spans) != 1 || spans[0].Text != "fallback" {
		t.Errorf("expected fallback span, got %v", spans)
	}

	if fake.CallCount() != 2 {
		t.Errorf("expected 2 calls, got %d", fake.CallCount())
	}
}
