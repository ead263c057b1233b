// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rg

import (
	"strings"
	"testing"
)

func TestValidateContent_RequiresKeywordInWindow(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		content   string
		wantMatch bool
		wantValue string
	}{
		{
			name:      "rg label right before",
			content:   "RG: 13.456.789-0 emitido pela SSP.",
			wantMatch: true,
			wantValue: "134567890",
		},
		{
			name:      "registro geral label",
			content:   "registro geral 12.345.678-9 do requerente",
			wantMatch: true,
			wantValue: "123456789",
		},
		{
			name:      "identidade label",
			content:   "identidade n 12.345.678-9",
			wantMatch: true,
			wantValue: "123456789",
		},
		{
			name:      "no keyword anywhere",
			content:   "Valor do contrato: 13.456.789-0 conforme anexo.",
			wantMatch: false,
		},
		{
			name:      "keyword too far back",
			content:   "RG informado anteriormente no processo: numero 13.456.789-0",
			wantMatch: false,
		},
		{
			name:      "keyword after the match only",
			content:   "O numero 13.456.789-0 consta no RG.",
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := v.ValidateContent(tt.content, "rec-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantMatch {
				if len(matches) != 1 {
					t.Fatalf("expected 1 match, got %d", len(matches))
				}
				if matches[0].Value != tt.wantValue {
					t.Errorf("canonical value = %q, want %q", matches[0].Value, tt.wantValue)
				}
			} else if len(matches) != 0 {
				t.Errorf("expected no matches, got %d (%q)", len(matches), matches[0].Text)
			}
		})
	}
}

func TestValidateContent_AnySupportedOccurrenceAccepts(t *testing.T) {
	v := NewValidator()

	// First occurrence has no keyword; a later one does.
	content := "Numero 13.456.789-0 citado acima. Documento RG: 13.456.789-0."
	matches, err := v.ValidateContent(content, "rec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 deduplicated match, got %d", len(matches))
	}
	if matches[0].Value != "134567890" {
		t.Errorf("canonical value = %q, want 134567890", matches[0].Value)
	}
}

func TestValidateContent_RejectsNonRGShapes(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		content string
	}{
		{name: "cpf-shaped value does not match", content: "RG: 123.456.789-09"},
		{name: "malformed grouping", content: "RG: 1.234.56-X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := v.ValidateContent(tt.content, "rec-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(matches) != 0 {
				t.Errorf("expected no matches, got %d", len(matches))
			}
		})
	}
}

func TestValidateContent_CheckLetterDropsFromValue(t *testing.T) {
	v := NewValidator()

	matches, err := v.ValidateContent("RG 1.234.567-X do servidor", "rec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Value != "1234567" {
		t.Errorf("canonical value = %q, want 1234567", matches[0].Value)
	}
	if got := matches[0].Metadata["has_check_char"]; got != true {
		t.Errorf("has_check_char = %v, want true", got)
	}
}

func TestSupportingKeyword_WindowIsRuneAware(t *testing.T) {
	v := NewValidator()

	// Accented filler between the keyword and the number: 11 runes of filler
	// keep "rg" inside a 15-char window even though the bytes run longer.
	content := "rg anexádóé: 13.456.789-0"
	lowered := strings.ToLower(content)
	if _, ok := v.supportingKeyword(lowered, "13.456.789-0"); !ok {
		t.Error("keyword within 15 runes should support the candidate")
	}
}

func TestPrecedingWindow(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		want   string
	}{
		{name: "clamps at start", text: "rg: 123", offset: 4, want: "rg: "},
		{name: "trims to window", text: strings.Repeat("a", 30) + "rg 1", offset: 33, want: "aaaaaaaaaaaarg "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := precedingWindow(tt.text, tt.offset, windowChars); got != tt.want {
				t.Errorf("precedingWindow = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCalculateConfidence(t *testing.T) {
	v := NewValidator()

	punctuated, _ := v.CalculateConfidence("13.456.789-0")
	bare, _ := v.CalculateConfidence("134567890")
	if punctuated <= bare {
		t.Errorf("punctuated RG (%.0f) should outrank bare digits (%.0f)", punctuated, bare)
	}

	repeated, _ := v.CalculateConfidence("11.111.111-1")
	if repeated >= punctuated {
		t.Errorf("repeated digits (%.0f) should be penalized below %.0f", repeated, punctuated)
	}
}
