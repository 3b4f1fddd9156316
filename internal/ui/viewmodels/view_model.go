package viewmodels

import (
	"fmt"

	"libcatalog/internal/domain"
	"libcatalog/internal/ui/logic"
	"libcatalog/internal/ui/state"
)

// Load is the settled (or pending) outcome of the collection fetch
type Load struct {
	Status domain.LoadStatus
	Err    error
}

// ViewModel is the read-only result of one pass through the pipeline
type ViewModel struct {
	PageRows    []domain.Record
	TotalCount  int
	PageCount   int
	PageNumbers []int
	CurrentPage int
	PageSize    int

	SearchTerm     string
	SearchCategory domain.SearchCategory
	SortOrder      domain.SortOrder

	Status    domain.LoadStatus
	LoadError error
}

// Recompute runs filter, sort and paginate from scratch
func Recompute(q state.QueryState, collection domain.Collection, load Load) ViewModel {
	filtered := logic.Filter(collection, q.SearchTerm, q.SearchCategory)
	sorted := logic.SortByPublished(filtered, q.SortOrder)
	return Build(q, sorted, load)
}

// Build paginates an already filtered and sorted result
func Build(q state.QueryState, sorted []domain.Record, load Load) ViewModel {
	page := logic.Paginate(sorted, q.CurrentPage, q.PageSize)
	return ViewModel{
		PageRows:       page.Rows,
		TotalCount:     page.TotalCount,
		PageCount:      page.PageCount,
		PageNumbers:    logic.PageNumbers(page.PageCount),
		CurrentPage:    q.CurrentPage,
		PageSize:       q.PageSize,
		SearchTerm:     q.SearchTerm,
		SearchCategory: q.SearchCategory,
		SortOrder:      q.SortOrder,
		Status:         load.Status,
		LoadError:      load.Err,
	}
}

// TotalLabel is the result count line shown above the table
func (vm ViewModel) TotalLabel() string {
	return fmt.Sprintf("Total Books found: %d", vm.TotalCount)
}

// PageInRange reports whether CurrentPage points at an existing page
func (vm ViewModel) PageInRange() bool {
	return vm.CurrentPage >= 1 && vm.CurrentPage <= vm.PageCount
}

// FirstRowNumber is the 1-based position of the first row on this page
func (vm ViewModel) FirstRowNumber() int {
	if !vm.PageInRange() {
		return 0
	}
	return (vm.CurrentPage-1)*vm.PageSize + 1
}
