package logic

import (
	"strings"

	"libcatalog/internal/domain"
)

// Filter returns the records whose category field contains term, ignoring case.
// An empty term returns records unchanged. The term is matched as a literal
// substring and only the one field named by category is consulted.
// The input is never modified and relative order is preserved.
func Filter(records []domain.Record, term string, category domain.SearchCategory) []domain.Record {
	if term == "" {
		return records
	}

	query := strings.ToLower(term)
	matches := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if matchesLower(r, query, category) {
			matches = append(matches, r)
		}
	}
	return matches
}

// Matches reports whether a single record would be kept by Filter
func Matches(r domain.Record, term string, category domain.SearchCategory) bool {
	if term == "" {
		return true
	}
	return matchesLower(r, strings.ToLower(term), category)
}

func matchesLower(r domain.Record, query string, category domain.SearchCategory) bool {
	field, ok := r.Field(category)
	if !ok || field == "" {
		// unknown category or missing value never matches
		return false
	}
	return strings.Contains(strings.ToLower(field), query)
}
