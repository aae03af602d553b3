package core

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CellStatus is the operational state derived from a phase cell.
type CellStatus string

const (
	StatusOK           CellStatus = "OK"
	StatusConstruction CellStatus = "CONSTRUCTION"
	StatusRestriction  CellStatus = "RESTRICTION"
	StatusMoving       CellStatus = "MOVING"
	StatusEmpty        CellStatus = "EMPTY"
	StatusUnknown      CellStatus = "UNKNOWN"
)

// StyleToken names the visual treatment of a status for presentation layers.
type StyleToken string

const (
	StyleOK           StyleToken = "ok"
	StyleConstruction StyleToken = "construction"
	StyleMoving       StyleToken = "moving"
	StyleRestriction  StyleToken = "restriction"
	StyleEmpty        StyleToken = "empty"
	StyleNeutral      StyleToken = "neutral"
)

// statusRule is one step of the classifier. Rules are evaluated in order and
// the first match wins, since a cell may contain keywords of several statuses
// ("Výstavba bez omezení" is OK).
type statusRule struct {
	match  func(lower string) bool
	status CellStatus
}

var statusRules = []statusRule{
	{match: containsAny("bez omezení"), status: StatusOK},
	{match: containsAny("vystěhování", "přestěhování"), status: StatusMoving},
	{match: containsAny("stavba", "výstavba", "realizace", "technologie"), status: StatusConstruction},
	{match: containsAny("omezení", "hluk", "vibrace"), status: StatusRestriction},
}

func containsAny(keywords ...string) func(string) bool {
	return func(s string) bool {
		for _, k := range keywords {
			if strings.Contains(s, k) {
				return true
			}
		}
		return false
	}
}

// Classify maps free text to a CellStatus.
func Classify(text string) CellStatus {
	if strings.TrimSpace(text) == "" {
		return StatusEmpty
	}

	// A Caser is stateful, so each call gets its own.
	lower := cases.Lower(language.Czech).String(text)

	for _, rule := range statusRules {
		if rule.match(lower) {
			return rule.status
		}
	}
	return StatusUnknown
}

var statusLabels = map[CellStatus]string{
	StatusOK:           "Bez omezení",
	StatusConstruction: "Výstavba",
	StatusMoving:       "Stěhování",
	StatusRestriction:  "Omezení provozu",
	StatusEmpty:        "Žádná data",
}

// fallbackLabel covers UNKNOWN and anything outside the enumeration.
const fallbackLabel = "Info"

// Label returns the canonical display label.
func (s CellStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fallbackLabel
}

var statusStyles = map[CellStatus]StyleToken{
	StatusOK:           StyleOK,
	StatusConstruction: StyleConstruction,
	StatusMoving:       StyleMoving,
	StatusRestriction:  StyleRestriction,
	StatusEmpty:        StyleEmpty,
}

// StyleToken returns the visual treatment for the status.
// UNKNOWN and out-of-set values share the neutral fallback.
func (s CellStatus) StyleToken() StyleToken {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return StyleNeutral
}

// Valid reports whether s is a member of the enumeration.
func (s CellStatus) Valid() bool {
	switch s {
	case StatusOK, StatusConstruction, StatusRestriction, StatusMoving, StatusEmpty, StatusUnknown:
		return true
	}
	return false
}

// ParseCellStatus parses a status name, case-insensitively.
func ParseCellStatus(s string) (CellStatus, error) {
	status := CellStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid status: %q", s)
	}
	return status, nil
}

// LegendStatuses returns the statuses shown in the legend, in display order.
func LegendStatuses() []CellStatus {
	return []CellStatus{StatusOK, StatusConstruction, StatusMoving, StatusRestriction, StatusEmpty}
}

// AllStatuses returns every member of the enumeration.
func AllStatuses() []CellStatus {
	return append(LegendStatuses(), StatusUnknown)
}
