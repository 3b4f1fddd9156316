package logic

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libcatalog/internal/domain"
)

func numberedCatalog(n int) []domain.Record {
	records := make([]domain.Record, n)
	for i := range records {
		records[i] = domain.Record{Name: fmt.Sprintf("book-%02d", i+1)}
	}
	return records
}

func TestPageCount(t *testing.T) {
	for _, tc := range []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{3, 0, 3},
		{3, -5, 3},
		{5, math.MaxInt, 1},
		{math.MaxInt, math.MaxInt, 1},
		{math.MaxInt, 2, math.MaxInt/2 + 1},
	} {
		assert.Equal(t, tc.want, PageCount(tc.total, tc.size), "total=%d size=%d", tc.total, tc.size)
	}
}

func TestPaginateTwentyFiveRecords(t *testing.T) {
	catalog := numberedCatalog(25)

	first := Paginate(catalog, 1, 10)
	assert.Equal(t, 3, first.PageCount)
	assert.Equal(t, 25, first.TotalCount)
	assert.Equal(t, "book-01", first.Rows[0].Name)
	assert.Len(t, first.Rows, 10)

	last := Paginate(catalog, 3, 10)
	require.Len(t, last.Rows, 5)
	assert.Equal(t, []string{"book-21", "book-22", "book-23", "book-24", "book-25"}, names(last.Rows))

	beyond := Paginate(catalog, 4, 10)
	assert.Empty(t, beyond.Rows)
	assert.NotNil(t, beyond.Rows)
	assert.Equal(t, 4, beyond.Page)
	assert.Equal(t, 3, beyond.PageCount)
}

func TestPaginateEmptySet(t *testing.T) {
	result := Paginate(nil, 1, 10)
	assert.Empty(t, result.Rows)
	assert.Equal(t, 0, result.PageCount)
	assert.Equal(t, 0, result.TotalCount)
	assert.Empty(t, PageNumbers(result.PageCount))
}

func TestPaginateOutOfRangePages(t *testing.T) {
	catalog := numberedCatalog(5)
	for _, page := range []int{0, -1, 2, 100} {
		assert.Empty(t, Paginate(catalog, page, 10).Rows, "page %d", page)
	}
}

func TestPaginateInvalidPageSize(t *testing.T) {
	catalog := numberedCatalog(3)
	result := Paginate(catalog, 2, 0)
	assert.Equal(t, 3, result.PageCount)
	assert.Equal(t, []string{"book-02"}, names(result.Rows))
}

func TestPaginateHugePageSize(t *testing.T) {
	catalog := numberedCatalog(5)
	result := Paginate(catalog, 1, math.MaxInt)
	assert.Equal(t, 1, result.PageCount)
	assert.Equal(t, 5, result.TotalCount)
	assert.Equal(t, names(catalog), names(result.Rows))

	assert.Empty(t, Paginate(catalog, 2, math.MaxInt).Rows)
}

func TestPaginateRowsCannotGrowIntoNextPage(t *testing.T) {
	catalog := numberedCatalog(4)
	rows := Paginate(catalog, 1, 2).Rows
	rows = append(rows, domain.Record{Name: "intruder"})
	assert.Equal(t, "book-03", catalog[2].Name)
	assert.Len(t, rows, 3)
}

// Concatenating every page reproduces the input exactly.
func TestPaginatePagesCoverInput(t *testing.T) {
	for total := 0; total <= 31; total++ {
		for size := 1; size <= 12; size++ {
			catalog := numberedCatalog(total)
			count := PageCount(total, size)

			var joined []domain.Record
			for page := 1; page <= count; page++ {
				rows := Paginate(catalog, page, size).Rows
				if page < count {
					require.Len(t, rows, size)
				} else {
					require.NotEmpty(t, rows)
					require.LessOrEqual(t, len(rows), size)
				}
				joined = append(joined, rows...)
			}
			require.Equal(t, names(catalog), names(joined), "total=%d size=%d", total, size)
		}
	}
}

func TestPageNumbers(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, PageNumbers(3))
	assert.Empty(t, PageNumbers(0))
	assert.Empty(t, PageNumbers(-2))
}
