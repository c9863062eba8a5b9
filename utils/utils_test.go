package utils

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseDroppedPaths(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "/tmp/lease.pdf", []string{"/tmp/lease.pdf"}},
		{"escaped space", `/tmp/my\ lease.pdf`, []string{"/tmp/my lease.pdf"}},
		{"single quoted", "'/tmp/my lease.pdf'", []string{"/tmp/my lease.pdf"}},
		{"double quoted", `"/tmp/my lease.pdf"`, []string{"/tmp/my lease.pdf"}},
		{"multiple", "/tmp/a.pdf /tmp/b.docx\n", []string{"/tmp/a.pdf", "/tmp/b.docx"}},
		{"file uri", "file:///tmp/my%20lease.pdf", []string{"/tmp/my lease.pdf"}},
		{"blank", "  \t\n", nil},
		{"empty quotes", `''`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDroppedPaths(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDroppedPaths(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := TruncateMiddle("short.pdf", 20); got != "short.pdf" {
		t.Errorf("Expected unchanged, got %q", got)
	}

	got := TruncateMiddle("a-very-long-contract-name.pdf", 15)
	if len([]rune(got)) != 15 {
		t.Errorf("Expected 15 runes, got %q", got)
	}
	if !strings.HasPrefix(got, "a-very") || !strings.HasSuffix(got, ".pdf") || !strings.Contains(got, "...") {
		t.Errorf("Expected both ends kept, got %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1, "contract"); got != "1 contract" {
		t.Errorf("Expected '1 contract', got %q", got)
	}
	if got := FormatCount(3, "file"); got != "3 files" {
		t.Errorf("Expected '3 files', got %q", got)
	}
	if got := FormatCount(0, "contract"); got != "0 contracts" {
		t.Errorf("Expected '0 contracts', got %q", got)
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatFileSize(512); got != "512 B" {
		t.Errorf("Expected '512 B', got %q", got)
	}
	if got := FormatFileSize(1536); got != "1.5 KB" {
		t.Errorf("Expected '1.5 KB', got %q", got)
	}
	if got := FormatDuration(250 * time.Millisecond); got != "250 ms" {
		t.Errorf("Expected '250 ms', got %q", got)
	}
	if got := FormatDuration(1500 * time.Millisecond); got != "1.5 sec" {
		t.Errorf("Expected '1.5 sec', got %q", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := SanitizeFilename(` a:b/c?.yml `); got != "a_b_c_.yml" {
		t.Errorf("Unexpected %q", got)
	}
	if got := SanitizeFilename("   "); got != "unnamed" {
		t.Errorf("Expected 'unnamed', got %q", got)
	}
}

func TestGenerateOutputFilename(t *testing.T) {
	got := GenerateOutputFilename("results", "yml")
	if !strings.HasPrefix(got, "results_") || !strings.HasSuffix(got, ".yml") {
		t.Errorf("Unexpected filename %q", got)
	}
}
