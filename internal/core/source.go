package core

import (
	"context"
	_ "embed"
	"fmt"
	"os"
)

// Source provides the schedule document to the service.
type Source interface {
	// Name identifies the source in logs and the UI.
	Name() string

	// Load reads and parses the current document.
	Load(ctx context.Context) (ParseResult, error)
}

// FileSource loads the schedule from a file on disk.
type FileSource struct {
	Path    string
	MaxSize int64 // bytes; <= 0 means unlimited
}

func (f FileSource) Name() string { return f.Path }

func (f FileSource) Load(ctx context.Context) (ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("load %s: %w", f.Path, err)
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open schedule: %w", err)
	}
	defer file.Close()

	result, err := ParseReader(file, f.MaxSize)
	if err != nil {
		return ParseResult{}, fmt.Errorf("load %s: %w", f.Path, err)
	}
	return result, nil
}

// StaticSource parses an in-memory document.
type StaticSource struct {
	Label string
	Text  string
}

func (s StaticSource) Name() string { return s.Label }

func (s StaticSource) Load(ctx context.Context) (ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("load %s: %w", s.Label, err)
	}
	return Parse(s.Text), nil
}

//go:embed default_schedule.csv
var defaultSchedule string

// DefaultSource returns the schedule bundled with the binary.
// It is used when no document path is configured.
func DefaultSource() StaticSource {
	return StaticSource{Label: "embedded:default_schedule.csv", Text: defaultSchedule}
}
