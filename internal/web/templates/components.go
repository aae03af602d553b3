// Package templates holds the HTML components of the schedule browser.
//
// Components live in .templ files compiled with templ generate. Handlers
// render them the same way whether they produce a full page or an HTMX
// fragment.
package templates

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/onkofaze/internal/core"
)

// AppTitle is the product name shown in the header and page titles.
const AppTitle = "OnkoFáze"

// EmptyStateMessage is shown when the schedule has no department rows.
const EmptyStateMessage = "Žádná data"

// NoMatchMessage is shown when a search matches no department.
const NoMatchMessage = "Hledání neodpovídá žádné oddělení"

// NotesHeading titles the global construction notes of a phase.
const NotesHeading = "Upozornění stavby"

// PickerParams holds the data for the department picker.
type PickerParams struct {
	Query     string
	Groups    []core.CategoryGroup
	EmptyData bool
	Revision  string
}

// DepartmentURL is the page address of a department row.
func DepartmentURL(id string) string {
	return "/department/" + url.PathEscape(id)
}

// PhaseURL is the page address of one phase of a department.
func PhaseURL(id string, index int) string {
	return DepartmentURL(id) + "/phase/" + strconv.Itoa(index)
}

func pageTitle(title string) string {
	if title == "" {
		return AppTitle
	}
	return title + " · " + AppTitle
}

// departmentName labels a row by its subcategory, falling back to the category.
func departmentName(row core.Record) string {
	if row.SubCategory != "" {
		return row.SubCategory
	}
	return row.Category
}

func categoryName(g core.CategoryGroup) string {
	if g.Category == "" {
		return "Ostatní"
	}
	return g.Category
}

func statusClass(token core.StyleToken) string {
	return "status-" + string(token)
}

// statusCount is one summary badge of a timeline.
type statusCount struct {
	Status core.CellStatus
	Count  int
}

func (c statusCount) String() string {
	return c.Status.Label() + ": " + strconv.Itoa(c.Count)
}

// summaryCounts lists the statuses present in a timeline, in enumeration order.
func summaryCounts(view core.DepartmentView) []statusCount {
	var counts []statusCount
	for _, s := range core.AllStatuses() {
		if n := view.Summary[s]; n > 0 {
			counts = append(counts, statusCount{Status: s, Count: n})
		}
	}
	return counts
}

func noteLines(note string) []string {
	return strings.Split(note, "\n")
}
