package core

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReadDocument(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		limit    int64
		expected string
		wantErr  error
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte(",,Fáze 0")...),
			expected: ",,Fáze 0",
		},
		{
			name:     "file without BOM",
			input:    []byte(",,Fáze 0"),
			expected: ",,Fáze 0",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "partial BOM is kept",
			input:    []byte{0xEF, 0xBB, 'a'},
			expected: "\uFFFD\uFFFDa",
		},
		{
			name:     "invalid UTF-8 replaced",
			input:    []byte{'a', 0xFF, 'b'},
			expected: "a\uFFFDb",
		},
		{
			name:     "exactly at limit",
			input:    []byte("12345"),
			limit:    5,
			expected: "12345",
		},
		{
			name:    "over limit",
			input:   []byte("123456"),
			limit:   5,
			wantErr: ErrFileTooLarge,
		},
		{
			name:    "binary input",
			input:   []byte{'P', 'K', 0x03, 0x04, 0x00},
			wantErr: ErrNotText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadDocument(bytes.NewReader(tt.input), tt.limit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadDocument() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseReader(t *testing.T) {
	doc := "\uFEFF,,Fáze 0\r\nONKO,CT,Bez omezení\r\n"
	result, err := ParseReader(strings.NewReader(doc), 0)
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if len(result.Headers) != 1 || result.Headers[0] != "Fáze 0" {
		t.Errorf("headers = %q, BOM must not leak into the first header", result.Headers)
	}
	if len(result.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(result.Rows))
	}

	if _, err := ParseReader(failingReader{}, 0); err == nil || !strings.Contains(err.Error(), "read document") {
		t.Errorf("ParseReader(failing) error = %v, want read document error", err)
	}
}
