package core

import (
	"strings"
	"testing"
	"time"

	"github.com/marketsim/abidesgen/internal/errors"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "my_config", "my_config.py"},
		{"with extension", "my_config.py", "my_config.py"},
		{"spaces to underscore", "my research config", "my_research_config.py"},
		{"hostile chars collapse", "bad|name?", "bad_name_.py"},
		{"hyphens kept", "rmsc03-small", "rmsc03-small.py"},
		{"surrounding whitespace", "  padded  ", "padded.py"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeName(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeName_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"no usable chars", "???"},
		{"unicode rejected", "configé"},
		{"too long", strings.Repeat("a", MaxNameLen+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeName(tt.input)
			if err == nil {
				t.Fatalf("SanitizeName(%q) succeeded, want error", tt.input)
			}
			if errors.GetCode(err) != errors.EInvalidName {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.EInvalidName)
			}
		})
	}
}

func TestAutoName(t *testing.T) {
	now := time.Date(2026, 8, 26, 14, 30, 5, 0, time.UTC)

	got := AutoName("rmsc03", 5127, now)
	want := "abides_rmsc03_5127agents_20260826_143005.py"
	if got != want {
		t.Errorf("AutoName = %q, want %q", got, want)
	}

	got = AutoName("", 16, now)
	want = "abides_config_16agents_20260826_143005.py"
	if got != want {
		t.Errorf("AutoName (custom) = %q, want %q", got, want)
	}
}
