// Package termview renders the schedule for terminals.
//
// Colours follow the status style tokens and match the web stylesheet
// palette. Output to a non-terminal writer is plain text.
package termview

import (
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/onkofaze/internal/core"
	"github.com/charmbracelet/lipgloss"
)

var tokenColors = map[core.StyleToken]lipgloss.Color{
	core.StyleOK:           lipgloss.Color("#059669"),
	core.StyleConstruction: lipgloss.Color("#2563EB"),
	core.StyleMoving:       lipgloss.Color("#D97706"),
	core.StyleRestriction:  lipgloss.Color("#E11D48"),
	core.StyleEmpty:        lipgloss.Color("#94A3B8"),
	core.StyleNeutral:      lipgloss.Color("#334155"),
}

// View writes styled schedule output to one writer.
type View struct {
	w        io.Writer
	renderer *lipgloss.Renderer

	title  lipgloss.Style
	header lipgloss.Style
	muted  lipgloss.Style
	err    error
}

// New returns a View writing to w. Colour support is detected from w.
func New(w io.Writer) *View {
	r := lipgloss.NewRenderer(w)
	return &View{
		w:        w,
		renderer: r,
		title:    r.NewStyle().Bold(true).Foreground(tokenColors[core.StyleNeutral]),
		header:   r.NewStyle().Bold(true),
		muted:    r.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

// Err returns the first write error.
func (v *View) Err() error {
	return v.err
}

func (v *View) printf(format string, args ...any) {
	if v.err != nil {
		return
	}
	_, v.err = fmt.Fprintf(v.w, format, args...)
}

// statusStyle colours text by the status style token.
func (v *View) statusStyle(s core.CellStatus) lipgloss.Style {
	color, ok := tokenColors[s.StyleToken()]
	if !ok {
		color = tokenColors[core.StyleNeutral]
	}
	return v.renderer.NewStyle().Foreground(color).Bold(true)
}

// Badge renders the status label in its colour.
func (v *View) Badge(s core.CellStatus) string {
	return v.statusStyle(s).Render("[" + s.Label() + "]")
}

// Departments lists the grouped department directory with row IDs.
func (v *View) Departments(groups []core.CategoryGroup) error {
	if len(groups) == 0 {
		v.printf("%s\n", v.muted.Render("Žádná data"))
		return v.err
	}
	for _, g := range groups {
		category := g.Category
		if category == "" {
			category = "Ostatní"
		}
		v.printf("%s\n", v.title.Render(category))
		for _, row := range g.Rows {
			name := row.SubCategory
			if name == "" {
				name = row.Category
			}
			v.printf("  %-8s %s\n", row.ID, name)
		}
	}
	return v.err
}

// Timeline prints each phase of a department with status and notes.
func (v *View) Timeline(view core.DepartmentView) error {
	v.printf("%s %s\n", v.title.Render(view.Record.Category), v.header.Render(view.Record.SubCategory))
	for _, e := range view.Timeline {
		content := e.Content
		if e.Empty {
			content = v.muted.Render("—")
		}
		v.printf("  %-10s %s %s\n", e.Header, v.Badge(e.Status), content)
		if e.Note != "" {
			for _, line := range strings.Split(e.Note, "\n") {
				v.printf("  %-10s %s %s\n", "", v.statusStyle(core.StatusRestriction).Render("!"), v.muted.Render(line))
			}
		}
	}
	return v.err
}

// Notes prints the construction notes of every phase that has any.
func (v *View) Notes(result core.ParseResult) error {
	printed := false
	for i, header := range result.Headers {
		note := result.NoteFor(i)
		if note == "" {
			continue
		}
		printed = true
		v.printf("%s\n", v.title.Render(header))
		for _, line := range strings.Split(note, "\n") {
			v.printf("  - %s\n", line)
		}
	}
	if !printed {
		v.printf("%s\n", v.muted.Render("Žádná upozornění stavby"))
	}
	return v.err
}

// Classification prints the classifier result for text.
func (v *View) Classification(text string) error {
	status := core.Classify(text)
	v.printf("%s %s %s\n", v.Badge(status), v.muted.Render(string(status)), text)
	return v.err
}

// Legend prints every legend status with its colour.
func (v *View) Legend() error {
	for _, s := range core.LegendStatuses() {
		v.printf("%s ", v.Badge(s))
	}
	v.printf("\n")
	return v.err
}
