package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CategoryGroup is one section of the department picker.
type CategoryGroup struct {
	Category string   `json:"category"`
	Rows     []Record `json:"rows"`
}

// GroupByCategory groups rows by category.
// Categories keep their first-seen order and rows keep document order.
func GroupByCategory(rows []Record) []CategoryGroup {
	groups := []CategoryGroup{}
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.Category]
		if !ok {
			i = len(groups)
			index[row.Category] = i
			groups = append(groups, CategoryGroup{Category: row.Category})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}

	return groups
}

// FilterRows keeps rows whose category or subcategory contains term.
// Matching ignores case and diacritics, so "ozarovny" finds "Ozařovny".
// A blank term keeps every row.
func FilterRows(rows []Record, term string) []Record {
	needle := foldText(strings.TrimSpace(term))
	if needle == "" {
		return rows
	}

	filtered := []Record{}
	for _, row := range rows {
		if strings.Contains(foldText(row.SubCategory), needle) ||
			strings.Contains(foldText(row.Category), needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// foldText strips combining marks and case-folds s for search matching.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), cases.Fold(), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}
