package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/onkofaze/internal/core"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDepartmentsCommand(t *testing.T) {
	out, err := run(t, "departments")
	if err != nil {
		t.Fatalf("departments error = %v", err)
	}
	for _, want := range []string{"ONKO", "Ambulance", "Radiologie", "Laboratoře", "row-8"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	out, err = run(t, "departments", "--search", "biochemie")
	if err != nil {
		t.Fatalf("departments --search error = %v", err)
	}
	if !strings.Contains(out, "Biochemie") || strings.Contains(out, "Ambulance") {
		t.Errorf("filtered output = %q", out)
	}
}

func TestTimelineCommand(t *testing.T) {
	out, err := run(t, "timeline", "row-3")
	if err != nil {
		t.Fatalf("timeline error = %v", err)
	}
	for _, want := range []string{"Lůžkové oddělení", "[Stěhování]", "Vystěhování pokojů 12-18", "Stavba jeřábové dráhy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	_, err = run(t, "timeline", "row-42")
	if !errors.Is(err, core.ErrDepartmentNotFound) {
		t.Errorf("unknown row error = %v, want ErrDepartmentNotFound", err)
	}

	if _, err := run(t, "timeline"); err == nil {
		t.Error("timeline without row id should fail")
	}
}

func TestNotesCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	doc := ",,F0,F1\nONKO,CT,Bez omezení,Hluk\n,,Jeřáb,\n,,Lešení,\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "notes", "--file", path)
	if err != nil {
		t.Fatalf("notes error = %v", err)
	}
	if !strings.Contains(out, "- Jeřáb\n  - Lešení") {
		t.Errorf("output = %q", out)
	}
}

func TestFileErrors(t *testing.T) {
	_, err := run(t, "departments", "--file", filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if got := core.MapError(err).Code; got != "DOC003" {
		t.Errorf("code = %s, want DOC003", got)
	}

	path := filepath.Join(t.TempDir(), "big.csv")
	if err := os.WriteFile(path, bytes.Repeat([]byte("a,b,c\n"), 100), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = run(t, "departments", "--file", path, "--max-size", "64")
	if !errors.Is(err, core.ErrFileTooLarge) {
		t.Errorf("error = %v, want ErrFileTooLarge", err)
	}
}

func TestClassifyCommand(t *testing.T) {
	out, err := run(t, "classify", "Realizace", "stínění")
	if err != nil {
		t.Fatalf("classify error = %v", err)
	}
	if !strings.Contains(out, "CONSTRUCTION Realizace stínění") {
		t.Errorf("output = %q", out)
	}
}
