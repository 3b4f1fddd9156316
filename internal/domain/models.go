package domain

import "fmt"

// Record represents a single catalog entry as served by the collection endpoint
type Record struct {
	Name      string `json:"name"`
	Author    string `json:"author"`
	Subject   string `json:"subject"`
	Published string `json:"published"` // date-parseable, not guaranteed valid
}

// Field returns the value of the field a search category refers to.
// The second result is false for unknown categories.
func (r Record) Field(category SearchCategory) (string, bool) {
	switch category {
	case CategoryName:
		return r.Name, true
	case CategoryAuthor:
		return r.Author, true
	case CategorySubject:
		return r.Subject, true
	default:
		return "", false
	}
}

// Collection is the full ordered set of records returned by one load
type Collection []Record

// SearchCategory names the single record field a search term is matched against
type SearchCategory string

const (
	CategoryName    SearchCategory = "name"
	CategoryAuthor  SearchCategory = "author"
	CategorySubject SearchCategory = "subject"
)

// SearchCategories lists categories in the order they are offered to the user
var SearchCategories = []SearchCategory{CategoryName, CategoryAuthor, CategorySubject}

// ParseSearchCategory converts user input into a SearchCategory
func ParseSearchCategory(s string) (SearchCategory, error) {
	for _, c := range SearchCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown search category %q (want name, author or subject)", s)
}

// Next returns the category after c, wrapping around
func (c SearchCategory) Next() SearchCategory {
	for i, cat := range SearchCategories {
		if cat == c {
			return SearchCategories[(i+1)%len(SearchCategories)]
		}
	}
	return CategoryName
}

// Label returns the capitalised name shown in the UI
func (c SearchCategory) Label() string {
	switch c {
	case CategoryName:
		return "Name"
	case CategoryAuthor:
		return "Author"
	case CategorySubject:
		return "Subject"
	default:
		return string(c)
	}
}

func (c SearchCategory) String() string { return string(c) }

// SortOrder is the chronological direction applied to the published date
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder converts user input into a SortOrder
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortAscending, SortDescending:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unknown sort order %q (want asc or desc)", s)
}

// Toggle flips between ascending and descending
func (o SortOrder) Toggle() SortOrder {
	if o == SortDescending {
		return SortAscending
	}
	return SortDescending
}

// Label returns the human readable direction
func (o SortOrder) Label() string {
	if o == SortDescending {
		return "Descending"
	}
	return "Ascending"
}

func (o SortOrder) String() string { return string(o) }

// LoadStatus represents where the one-shot collection load currently stands
type LoadStatus int

const (
	LoadPending LoadStatus = iota
	LoadReady
	LoadFailed
)

func (s LoadStatus) String() string {
	switch s {
	case LoadPending:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}
