package core

import "strings"

// Record is one body line of the schedule: a department row or, when both
// labels are empty, a construction note.
type Record struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	SubCategory string   `json:"subCategory"`
	Phases      []string `json:"phases"`
}

// Phase returns the cell for phase i.
// Positions past the end of a short line read as empty.
func (r Record) Phase(i int) string {
	if i < 0 || i >= len(r.Phases) {
		return ""
	}
	return r.Phases[i]
}

// IsNote reports whether the record has no department identity.
func (r Record) IsNote() bool {
	return r.Category == "" && r.SubCategory == ""
}

// ParseResult is the parsed schedule document.
// Phases[i] of every row and note belongs to Headers[i].
type ParseResult struct {
	Headers []string `json:"headers"`
	Rows    []Record `json:"rows"`
	Notes   []Record `json:"notes"`
}

// Empty reports whether the document has no department rows.
// Presentation treats this as an empty state, not a failure.
func (p ParseResult) Empty() bool {
	return len(p.Rows) == 0
}

// FindRow returns the department row with the given ID.
func (p ParseResult) FindRow(id string) (Record, bool) {
	for _, row := range p.Rows {
		if row.ID == id {
			return row, true
		}
	}
	return Record{}, false
}

// NoteFor joins the non-blank note cells for a phase, one per line, in note order.
// Cells holding only whitespace count as blank and are left out.
func (p ParseResult) NoteFor(index int) string {
	return joinNotes(p.Notes, index)
}

func joinNotes(notes []Record, index int) string {
	var parts []string
	for _, n := range notes {
		if cell := n.Phase(index); strings.TrimSpace(cell) != "" {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, "\n")
}
