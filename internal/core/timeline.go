package core

import (
	"fmt"
	"strings"
)

// PhaseEntry is one phase of a department timeline.
type PhaseEntry struct {
	Index   int        `json:"index"`
	Header  string     `json:"header"`
	Content string     `json:"content"`
	Status  CellStatus `json:"status"`
	Label   string     `json:"label"`
	Style   StyleToken `json:"style"`
	Note    string     `json:"note,omitempty"`
	Empty   bool       `json:"empty"`
}

// Precondition describes what must happen before the phase can start.
func (e PhaseEntry) Precondition() string {
	if e.Index == 0 {
		return "Podpis předávacího protokolu staveniště."
	}
	return fmt.Sprintf("Dokončení stavebních úprav ve Fázi %d a schválení kolaudace.", e.Index-1)
}

// FollowUp describes the action the phase enables once it is finished.
func (e PhaseEntry) FollowUp() string {
	return "Uvolnění prostor pro navazující technologie v dalším sektoru."
}

// DepartmentView is a department row with its derived timeline.
type DepartmentView struct {
	Record   Record             `json:"record"`
	Timeline []PhaseEntry       `json:"timeline"`
	Summary  map[CellStatus]int `json:"summary"`
}

// BuildTimeline derives one entry per header for rec.
// Blank headers fall back to "Fáze <i>".
func BuildTimeline(rec Record, headers []string, notes []Record) []PhaseEntry {
	entries := make([]PhaseEntry, len(headers))
	for i, header := range headers {
		content := rec.Phase(i)
		status := Classify(content)

		if strings.TrimSpace(header) == "" {
			header = phaseFallbackHeader(i)
		}

		entries[i] = PhaseEntry{
			Index:   i,
			Header:  header,
			Content: content,
			Status:  status,
			Label:   status.Label(),
			Style:   status.StyleToken(),
			Note:    joinNotes(notes, i),
			Empty:   strings.TrimSpace(content) == "",
		}
	}
	return entries
}

func phaseFallbackHeader(i int) string {
	return fmt.Sprintf("Fáze %d", i)
}

// StatusSummary counts timeline entries per status.
func StatusSummary(entries []PhaseEntry) map[CellStatus]int {
	summary := make(map[CellStatus]int)
	for _, e := range entries {
		summary[e.Status]++
	}
	return summary
}

// NewDepartmentView builds the timeline view of rec against result.
func NewDepartmentView(result ParseResult, rec Record) DepartmentView {
	timeline := BuildTimeline(rec, result.Headers, result.Notes)
	return DepartmentView{
		Record:   rec,
		Timeline: timeline,
		Summary:  StatusSummary(timeline),
	}
}
