package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrDepartmentNotFound is returned when no row has the requested ID.
	ErrDepartmentNotFound = errors.New("department not found")

	// ErrPhaseNotFound is returned for a phase index outside the headers
	// and for phases without content, which have no detail view.
	ErrPhaseNotFound = errors.New("phase not found")
)

// Snapshot is one loaded version of the schedule.
// The parse result is shared between readers and must not be modified.
type Snapshot struct {
	Result   ParseResult `json:"result"`
	Revision string      `json:"revision"`
	LoadedAt time.Time   `json:"loadedAt"`
	Source   string      `json:"source"`
}

// Service holds the current schedule for the session.
// Readers always see a complete snapshot; Reload swaps it atomically.
type Service struct {
	source Source

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewService creates a service for src. Call Reload to load the document.
func NewService(src Source) *Service {
	return &Service{
		source: src,
		snapshot: Snapshot{
			Result: Parse(""),
			Source: src.Name(),
		},
	}
}

// SourceName returns the name of the document source.
func (s *Service) SourceName() string {
	return s.source.Name()
}

// Reload loads the document and replaces the current snapshot.
// On failure the previous snapshot stays in place.
func (s *Service) Reload(ctx context.Context) error {
	start := time.Now()

	result, err := s.source.Load(ctx)
	if err != nil {
		slog.Error("schedule reload failed",
			"source", s.source.Name(),
			"error", err,
		)
		return fmt.Errorf("reload schedule: %w", err)
	}

	snap := Snapshot{
		Result:   result,
		Revision: uuid.NewString(),
		LoadedAt: time.Now(),
		Source:   s.source.Name(),
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	slog.Info("schedule loaded",
		"source", snap.Source,
		"revision", snap.Revision,
		"headers", len(result.Headers),
		"rows", len(result.Rows),
		"notes", len(result.Notes),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if result.Empty() {
		slog.Warn("schedule has no department rows", "source", snap.Source)
	}

	return nil
}

// Snapshot returns the current snapshot.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Departments returns the department directory, filtered by a search term.
func (s *Service) Departments(term string) []CategoryGroup {
	result := s.Snapshot().Result
	return GroupByCategory(FilterRows(result.Rows, term))
}

// Department returns the timeline view of a department row.
func (s *Service) Department(id string) (DepartmentView, error) {
	result := s.Snapshot().Result
	rec, ok := result.FindRow(id)
	if !ok {
		return DepartmentView{}, fmt.Errorf("%w: %s", ErrDepartmentNotFound, id)
	}
	return NewDepartmentView(result, rec), nil
}

// Phase returns a department row and its entry for one phase.
// Empty phases are reported as not found.
func (s *Service) Phase(id string, index int) (Record, PhaseEntry, error) {
	view, err := s.Department(id)
	if err != nil {
		return Record{}, PhaseEntry{}, err
	}
	if index < 0 || index >= len(view.Timeline) {
		return Record{}, PhaseEntry{}, fmt.Errorf("%w: %d", ErrPhaseNotFound, index)
	}
	entry := view.Timeline[index]
	if entry.Empty {
		return Record{}, PhaseEntry{}, fmt.Errorf("%w: %d has no content", ErrPhaseNotFound, index)
	}
	return view.Record, entry, nil
}

// Note returns the construction notes for a phase.
func (s *Service) Note(index int) (string, error) {
	result := s.Snapshot().Result
	if index < 0 || index >= len(result.Headers) {
		return "", fmt.Errorf("%w: %d", ErrPhaseNotFound, index)
	}
	return result.NoteFor(index), nil
}
