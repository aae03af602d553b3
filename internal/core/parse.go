package core

import (
	"slices"
	"strconv"
	"strings"
)

const (
	fieldDelimiter = ','
	fieldQuote     = '"'
)

// SplitLine splits one physical line into raw fields.
//
// A quote toggles quoted mode; two quotes inside a quoted section produce a
// literal quote. Delimiters inside quotes are content. Fields are not trimmed.
// Both special characters are ASCII, so scanning bytes is safe for UTF-8 input.
func SplitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case c == fieldQuote:
			if inQuotes && i+1 < len(line) && line[i+1] == fieldQuote {
				current.WriteByte(fieldQuote)
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == fieldDelimiter && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}

	return append(fields, current.String())
}

// Parse converts a schedule document into headers, department rows and notes.
//
// Parse never fails: blank lines are skipped, short lines leave trailing
// phases empty, and lines without any label or phase text are dropped.
// Empty input yields empty (non-nil) slices.
func Parse(text string) ParseResult {
	result := ParseResult{
		Headers: []string{},
		Rows:    []Record{},
		Notes:   []Record{},
	}

	lines := documentLines(text)
	if len(lines) == 0 {
		return result
	}

	result.Headers = phaseHeaders(SplitLine(lines[0]))

	for i := 1; i < len(lines); i++ {
		fields := SplitLine(lines[i])
		if allBlank(fields) {
			continue
		}

		rec := Record{
			ID:          rowID(i),
			Category:    strings.TrimSpace(fieldAt(fields, 0)),
			SubCategory: strings.TrimSpace(fieldAt(fields, 1)),
			Phases:      phaseCells(fields),
		}

		switch {
		case rec.IsNote() && !allBlank(rec.Phases):
			result.Notes = append(result.Notes, rec)
		case !rec.IsNote():
			result.Rows = append(result.Rows, rec)
		}
	}

	return result
}

// documentLines splits on \n or \r\n and drops whitespace-only lines.
func documentLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// phaseHeaders drops the two label columns and any blank header cells.
func phaseHeaders(fields []string) []string {
	headers := []string{}
	if len(fields) <= 2 {
		return headers
	}
	for _, h := range fields[2:] {
		if strings.TrimSpace(h) != "" {
			headers = append(headers, h)
		}
	}
	return headers
}

func phaseCells(fields []string) []string {
	if len(fields) <= 2 {
		return []string{}
	}
	return slices.Clip(fields[2:])
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func allBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// rowID numbers body lines by their position among non-blank lines.
// The header is line 0.
func rowID(line int) string {
	return "row-" + strconv.Itoa(line)
}
