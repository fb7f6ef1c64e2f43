package services

import "strings"

// AllCategories disables category filtering.
const AllCategories = "all"

// MatchesCategory reports whether category contains filter, ignoring case.
// An empty or "all" filter matches everything; otherwise a blank category
// never matches.
func MatchesCategory(category, filter string) bool {
	f := strings.TrimSpace(filter)
	if f == "" || strings.EqualFold(f, AllCategories) {
		return true
	}
	c := strings.TrimSpace(category)
	if c == "" {
		return false
	}
	return strings.Contains(strings.ToLower(c), strings.ToLower(f))
}
