package logic

import "libcatalog/internal/domain"

// PageResult is one page of a sorted result set
type PageResult struct {
	Rows       []domain.Record
	Page       int // the requested page, echoed even when out of range
	PageCount  int
	TotalCount int
}

// PageCount is ceil(total/pageSize), zero for an empty set
func PageCount(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if total <= 0 {
		return 0
	}
	return (total-1)/pageSize + 1
}

// Paginate slices out the 1-based page. Any page outside 1..PageCount,
// including a stale page left over from a larger result set, yields zero rows.
func Paginate(records []domain.Record, page, pageSize int) PageResult {
	if pageSize < 1 {
		pageSize = 1
	}
	total := len(records)
	result := PageResult{
		Rows:       []domain.Record{},
		Page:       page,
		PageCount:  PageCount(total, pageSize),
		TotalCount: total,
	}

	if page < 1 || page > result.PageCount {
		return result
	}

	// start < total here, so only the end bound can overflow
	start := (page - 1) * pageSize
	end := total
	if pageSize < total-start {
		end = start + pageSize
	}
	result.Rows = records[start:end:end]
	return result
}

// PageNumbers lists 1..pageCount for rendering page controls
func PageNumbers(pageCount int) []int {
	if pageCount < 0 {
		pageCount = 0
	}
	numbers := make([]int, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		numbers = append(numbers, i)
	}
	return numbers
}
