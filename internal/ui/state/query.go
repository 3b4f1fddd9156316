package state

import (
	"libcatalog/internal/domain"
)

// DefaultPageSize is used when no positive page size is configured
const DefaultPageSize = 10

// QueryState is the only mutable part of the pipeline. It is owned by a single
// writer; every setter reports whether it changed anything so callers can skip
// a recompute on no-op input.
type QueryState struct {
	SearchTerm     string
	SearchCategory domain.SearchCategory
	SortOrder      domain.SortOrder
	CurrentPage    int
	PageSize       int
}

// NewQueryState returns the initial session state
func NewQueryState(pageSize int) *QueryState {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &QueryState{
		SearchTerm:     "",
		SearchCategory: domain.CategoryName,
		SortOrder:      domain.SortAscending,
		CurrentPage:    1,
		PageSize:       pageSize,
	}
}

// SetSearchTerm replaces the term. A changed term always lands on page 1 so a
// page index from a larger result set never carries over.
func (s *QueryState) SetSearchTerm(term string) bool {
	if term == s.SearchTerm {
		return false
	}
	s.SearchTerm = term
	s.CurrentPage = 1
	return true
}

// SetSearchCategory changes the searched field. The page is left as is.
func (s *QueryState) SetSearchCategory(c domain.SearchCategory) bool {
	if c == s.SearchCategory {
		return false
	}
	s.SearchCategory = c
	return true
}

// SetSortOrder changes the sort direction
func (s *QueryState) SetSortOrder(o domain.SortOrder) bool {
	if o == s.SortOrder {
		return false
	}
	s.SortOrder = o
	return true
}

// SelectPage sets the page unconditionally; reads tolerate any value
func (s *QueryState) SelectPage(n int) bool {
	if n == s.CurrentPage {
		return false
	}
	s.CurrentPage = n
	return true
}

// Snapshot returns a copy safe to hand to readers
func (s *QueryState) Snapshot() QueryState {
	return *s
}
