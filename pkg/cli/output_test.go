package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type stringerResult struct{ value string }

func (s stringerResult) String() string { return "result: " + s.value }

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{}

	if err := f.FormatTo(&buf, "public-abc"); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if got := buf.String(); got != "public-abc\n" {
		t.Errorf("FormatTo() = %q", got)
	}

	buf.Reset()
	if err := f.FormatTo(&buf, stringerResult{value: "ok"}); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if got := buf.String(); got != "result: ok\n" {
		t.Errorf("FormatTo() with Stringer = %q", got)
	}
}

func TestJSONFormatter(t *testing.T) {
	data := map[string]any{"tier": "admin", "authenticated": true}

	tests := []struct {
		name   string
		indent bool
	}{
		{"compact", false},
		{"indented", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			f := &JSONFormatter{Indent: tt.indent}
			if err := f.FormatTo(&buf, data); err != nil {
				t.Fatalf("FormatTo() error = %v", err)
			}

			var got map[string]any
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("output is not valid JSON: %v", err)
			}
			if got["tier"] != "admin" || got["authenticated"] != true {
				t.Errorf("decoded = %v", got)
			}
			if hasIndent := strings.Contains(buf.String(), "\n  "); hasIndent != tt.indent {
				t.Errorf("indentation = %v, want %v", hasIndent, tt.indent)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatText).(*TextFormatter); !ok {
		t.Error("NewFormatter(text) should return *TextFormatter")
	}
	f, ok := NewFormatter(FormatJSON).(*JSONFormatter)
	if !ok || !f.Indent {
		t.Error("NewFormatter(json) should return an indenting *JSONFormatter")
	}
	if _, ok := NewFormatter("yaml").(*TextFormatter); !ok {
		t.Error("NewFormatter(unknown) should fall back to text")
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"csv", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
