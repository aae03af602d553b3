package core

// decode.go turns raw document bytes into parser input.
//
// Schedule documents are exported from spreadsheets, usually on Windows, so
// two fixups are applied before parsing:
//
//   - The UTF-8 BOM (0xEF 0xBB 0xBF) is removed so it does not end up in the
//     first header cell.
//   - Invalid UTF-8 sequences are replaced with U+FFFD.
//
// Documents are small and handed to the parser fully materialized, so the
// whole input is read at once, bounded by a size limit.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	// ErrFileTooLarge is returned when a document exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNotText is returned for binary input.
	ErrNotText = errors.New("not a text document")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadDocument reads at most limit bytes from r and returns sanitized text.
// A limit <= 0 disables the size check.
func ReadDocument(r io.Reader, limit int64) (string, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("%w: exceeds %d bytes", ErrFileTooLarge, limit)
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	// NUL never appears in a spreadsheet export; it means someone picked the wrong file.
	if bytes.IndexByte(data, 0) >= 0 {
		return "", ErrNotText
	}

	return string(sanitizeUTF8(data)), nil
}

// ParseReader reads a document from r and parses it.
// Errors come only from reading; parsing itself never fails.
func ParseReader(r io.Reader, limit int64) (ParseResult, error) {
	text, err := ReadDocument(r, limit)
	if err != nil {
		return ParseResult{}, err
	}
	return Parse(text), nil
}

// sanitizeUTF8 replaces invalid UTF-8 bytes with the replacement character.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
		} else {
			buf.Write(data[:size])
		}
		data = data[size:]
	}

	return buf.Bytes()
}
