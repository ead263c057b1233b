// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cpf

import (
	"os"
	"path/filepath"
	"testing"

	"sic-scan/internal/detector"
)

func TestValidateContent_AcceptsElevenDigitIDs(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		content   string
		wantValue string
	}{
		{
			name:      "formatted",
			content:   "Solicito cópia do contrato. Meu CPF: 123.456.789-09.",
			wantValue: "12345678909",
		},
		{
			name:      "bare digits",
			content:   "Portador do documento 12345678909, requer acesso.",
			wantValue: "12345678909",
		},
		{
			name:      "partial punctuation",
			content:   "CPF 123.456.78909 informado no pedido.",
			wantValue: "12345678909",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := v.ValidateContent(tt.content, "rec-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(matches) != 1 {
				t.Fatalf("expected 1 match, got %d", len(matches))
			}
			if matches[0].Value != tt.wantValue {
				t.Errorf("canonical value = %q, want %q", matches[0].Value, tt.wantValue)
			}
			if matches[0].Validator != "CPF" {
				t.Errorf("validator name = %q, want CPF", matches[0].Validator)
			}
		})
	}
}

func TestValidateContent_RejectsWrongDigitCount(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		content string
	}{
		{name: "ten digits", content: "Documento 123.456.789-0 anexado."},
		{name: "single check digit", content: "CPF informado: 987.654.321-0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := v.ValidateContent(tt.content, "rec-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(matches) != 0 {
				t.Errorf("expected no matches, got %d (%q)", len(matches), matches[0].Text)
			}
		})
	}
}

func TestValidateContent_DeduplicatesFormatVariants(t *testing.T) {
	v := NewValidator()

	content := "CPF 123.456.789-09 conferido; repetido como 12345678909 no anexo."
	matches, err := v.ValidateContent(content, "rec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("format variants should collapse to one value, got %d", len(matches))
	}
	if matches[0].Text != "123.456.789-09" {
		t.Errorf("first occurrence should win, got %q", matches[0].Text)
	}
}

func TestValidateContent_LineNumbers(t *testing.T) {
	v := NewValidator()

	content := "Linha um sem nada.\nLinha dois sem nada.\nCPF: 111.222.333-44"
	matches, err := v.ValidateContent(content, "rec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].LineNumber != 3 {
		t.Errorf("line number = %d, want 3", matches[0].LineNumber)
	}
}

func TestCalculateConfidence(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		match     string
		expectMin float64
		expectMax float64
	}{
		{name: "formatted", match: "123.456.789-09", expectMin: 90, expectMax: 100},
		{name: "bare digits", match: "52998224725", expectMin: 80, expectMax: 95},
		{name: "repeated placeholder", match: "111.111.111-11", expectMin: 0, expectMax: 65},
		{name: "sequential run", match: "123.456.789-01", expectMin: 0, expectMax: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confidence, checks := v.CalculateConfidence(tt.match)
			if confidence < tt.expectMin || confidence > tt.expectMax {
				t.Errorf("confidence %.0f outside [%.0f, %.0f] (checks: %v)",
					confidence, tt.expectMin, tt.expectMax, checks)
			}
		})
	}
}

func TestAnalyzeContext(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		context  string
		positive bool
	}{
		{name: "cpf keyword", context: "cpf do requerente", positive: true},
		{name: "process number context", context: "número do processo administrativo", positive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			impact := v.AnalyzeContext("123.456.789-09", makeContext(tt.context))
			if tt.positive && impact <= 0 {
				t.Errorf("expected positive impact, got %.0f", impact)
			}
			if !tt.positive && impact >= 0 {
				t.Errorf("expected non-positive impact, got %.0f", impact)
			}
		})
	}
}

func TestValidate_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pedido.txt")
	if err := os.WriteFile(path, []byte("  CPF: 123.456.789-09   "), 0o600); err != nil {
		t.Fatal(err)
	}

	v := NewValidator()
	matches, err := v.Validate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Filename != path {
		t.Errorf("filename = %q, want %q", matches[0].Filename, path)
	}
}

func TestDigitsOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123.456.789-09", "12345678909"},
		{"abc", ""},
		{"1a2b3c", "123"},
	}
	for _, tt := range tests {
		if got := digitsOf(tt.in); got != tt.want {
			t.Errorf("digitsOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func makeContext(line string) detector.ContextInfo {
	return detector.ContextInfo{FullLine: line}
}
