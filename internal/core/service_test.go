package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newLoadedService(t *testing.T, src Source) *Service {
	t.Helper()
	svc := NewService(src)
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	return svc
}

func TestService_BeforeLoad(t *testing.T) {
	svc := NewService(DefaultSource())
	snap := svc.Snapshot()
	if snap.Revision != "" {
		t.Errorf("revision before load = %q, want empty", snap.Revision)
	}
	if !snap.Result.Empty() || snap.Result.Headers == nil {
		t.Errorf("snapshot before load should be an empty parse result, got %+v", snap.Result)
	}
}

func TestService_Reload(t *testing.T) {
	svc := newLoadedService(t, DefaultSource())

	snap := svc.Snapshot()
	if snap.Revision == "" {
		t.Error("expected a revision after load")
	}
	if snap.Source != DefaultSource().Name() {
		t.Errorf("source = %q", snap.Source)
	}
	if len(snap.Result.Rows) != 8 {
		t.Errorf("rows = %d, want 8", len(snap.Result.Rows))
	}

	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("second Reload() error = %v", err)
	}
	if svc.Snapshot().Revision == snap.Revision {
		t.Error("reload should assign a new revision")
	}
}

func TestService_ReloadFailureKeepsSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.csv")
	if err := os.WriteFile(path, []byte(",,F0\nONKO,CT,Hluk\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := newLoadedService(t, FileSource{Path: path, MaxSize: 1024})
	before := svc.Snapshot()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	err := svc.Reload(context.Background())
	if err == nil {
		t.Fatal("Reload() expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Reload() error = %v, want wrapped os.ErrNotExist", err)
	}
	if MapError(err).Code != "DOC003" {
		t.Errorf("MapError code = %s, want DOC003", MapError(err).Code)
	}

	after := svc.Snapshot()
	if after.Revision != before.Revision || len(after.Result.Rows) != 1 {
		t.Errorf("snapshot changed after failed reload: %+v", after)
	}
}

func TestService_ReloadCancelled(t *testing.T) {
	svc := NewService(DefaultSource())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Reload(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Reload() error = %v, want context.Canceled", err)
	}
}

func TestService_Departments(t *testing.T) {
	svc := newLoadedService(t, DefaultSource())

	groups := svc.Departments("")
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	wantOrder := []string{"ONKO", "Radiologie", "Laboratoře"}
	for i, g := range groups {
		if g.Category != wantOrder[i] {
			t.Errorf("group %d = %q, want %q", i, g.Category, wantOrder[i])
		}
	}

	filtered := svc.Departments("laboratore")
	if len(filtered) != 1 || len(filtered[0].Rows) != 2 {
		t.Errorf("Departments(laboratore) = %+v", filtered)
	}
}

func TestService_DepartmentAndPhase(t *testing.T) {
	svc := newLoadedService(t, DefaultSource())

	view, err := svc.Department("row-2")
	if err != nil {
		t.Fatalf("Department() error = %v", err)
	}
	if view.Record.SubCategory != "Ozařovny" {
		t.Errorf("record = %+v", view.Record)
	}

	_, err = svc.Department("row-99")
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("Department(row-99) error = %v, want ErrDepartmentNotFound", err)
	}

	rec, entry, err := svc.Phase("row-2", 3)
	if err != nil {
		t.Fatalf("Phase() error = %v", err)
	}
	if rec.ID != "row-2" || entry.Content != `Instalace technologie "LINAC 3"` || entry.Status != StatusConstruction {
		t.Errorf("Phase() = %+v, %+v", rec, entry)
	}

	for _, idx := range []int{-1, 5} {
		if _, _, err := svc.Phase("row-2", idx); !errors.Is(err, ErrPhaseNotFound) {
			t.Errorf("Phase(row-2, %d) error = %v, want ErrPhaseNotFound", idx, err)
		}
	}
}

func TestService_PhaseEmpty(t *testing.T) {
	svc := newLoadedService(t, DefaultSource())

	view, err := svc.Department("row-4")
	if err != nil {
		t.Fatalf("Department(row-4) error = %v", err)
	}
	if !view.Timeline[3].Empty {
		t.Fatalf("row-4 phase 3 = %+v, want empty", view.Timeline[3])
	}

	if _, _, err := svc.Phase("row-4", 3); !errors.Is(err, ErrPhaseNotFound) {
		t.Errorf("Phase(row-4, 3) error = %v, want ErrPhaseNotFound", err)
	}
	if _, _, err := svc.Phase("row-4", 0); err != nil {
		t.Errorf("Phase(row-4, 0) error = %v", err)
	}
}

func TestService_Note(t *testing.T) {
	svc := newLoadedService(t, DefaultSource())

	note, err := svc.Note(2)
	if err != nil {
		t.Fatalf("Note() error = %v", err)
	}
	if note != "Stavba jeřábové dráhy" {
		t.Errorf("Note(2) = %q", note)
	}

	if _, err := svc.Note(7); !errors.Is(err, ErrPhaseNotFound) {
		t.Errorf("Note(7) error = %v, want ErrPhaseNotFound", err)
	}
}
