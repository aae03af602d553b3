package core

import (
	"testing"
)

func TestBuildTimeline(t *testing.T) {
	headers := []string{"Fáze 0", " ", "Fáze 2"}
	rec := Record{ID: "row-1", Category: "ONKO", SubCategory: "CT", Phases: []string{"Bez omezení", "Hluk"}}
	notes := []Record{
		{ID: "row-5", Phases: []string{"Uzavření vjezdu", "", "Jeřáb"}},
		{ID: "row-6", Phases: []string{"", "  ", "Odstávka VZT"}},
	}

	got := BuildTimeline(rec, headers, notes)
	if len(got) != 3 {
		t.Fatalf("BuildTimeline returned %d entries, want 3", len(got))
	}

	first := got[0]
	if first.Status != StatusOK || first.Label != "Bez omezení" || first.Style != StyleOK {
		t.Errorf("entry 0 = %+v", first)
	}
	if first.Note != "Uzavření vjezdu" {
		t.Errorf("entry 0 note = %q", first.Note)
	}

	if got[1].Header != "Fáze 1" {
		t.Errorf("blank header fallback = %q, want %q", got[1].Header, "Fáze 1")
	}
	if got[1].Status != StatusRestriction || got[1].Note != "" {
		t.Errorf("entry 1 = %+v", got[1])
	}

	last := got[2]
	if !last.Empty || last.Status != StatusEmpty || last.Content != "" {
		t.Errorf("missing trailing phase should be empty, got %+v", last)
	}
	if last.Note != "Jeřáb\nOdstávka VZT" {
		t.Errorf("entry 2 note = %q, want notes joined in order", last.Note)
	}
}

func TestPhaseEntry_Precondition(t *testing.T) {
	if got := (PhaseEntry{Index: 0}).Precondition(); got != "Podpis předávacího protokolu staveniště." {
		t.Errorf("Precondition(0) = %q", got)
	}
	if got := (PhaseEntry{Index: 3}).Precondition(); got != "Dokončení stavebních úprav ve Fázi 2 a schválení kolaudace." {
		t.Errorf("Precondition(3) = %q", got)
	}
}

func TestPhaseEntry_FollowUp(t *testing.T) {
	for _, idx := range []int{0, 4} {
		if got := (PhaseEntry{Index: idx}).FollowUp(); got != "Uvolnění prostor pro navazující technologie v dalším sektoru." {
			t.Errorf("FollowUp(%d) = %q", idx, got)
		}
	}
}

func TestStatusSummary(t *testing.T) {
	entries := []PhaseEntry{
		{Status: StatusOK}, {Status: StatusOK}, {Status: StatusMoving}, {Status: StatusEmpty},
	}
	got := StatusSummary(entries)
	if got[StatusOK] != 2 || got[StatusMoving] != 1 || got[StatusEmpty] != 1 || got[StatusConstruction] != 0 {
		t.Errorf("StatusSummary() = %v", got)
	}
}

func TestNoteFor(t *testing.T) {
	result := ParseResult{
		Headers: []string{"F0", "F1"},
		Notes: []Record{
			{Phases: []string{"A", " "}},
			{Phases: []string{"B"}},
			{Phases: []string{"", "C"}},
		},
	}

	tests := []struct {
		index int
		want  string
	}{
		{0, "A\nB"},
		{1, "C"},
		{2, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := result.NoteFor(tt.index); got != tt.want {
			t.Errorf("NoteFor(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestNewDepartmentView(t *testing.T) {
	result := Parse(DefaultSource().Text)
	rec, ok := result.FindRow("row-1")
	if !ok {
		t.Fatal("FindRow(row-1) not found")
	}

	view := NewDepartmentView(result, rec)
	if view.Record.SubCategory != "Ambulance" {
		t.Errorf("record = %+v", view.Record)
	}
	if len(view.Timeline) != len(result.Headers) {
		t.Errorf("timeline has %d entries, want %d", len(view.Timeline), len(result.Headers))
	}

	total := 0
	for _, n := range view.Summary {
		total += n
	}
	if total != len(view.Timeline) {
		t.Errorf("summary counts %d entries, want %d", total, len(view.Timeline))
	}

	if _, ok := result.FindRow("row-9"); ok {
		t.Error("FindRow should not return notes")
	}
}
