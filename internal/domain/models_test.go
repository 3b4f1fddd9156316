package domain

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordField(t *testing.T) {
	r := Record{Name: "Dune", Author: "Herbert", Subject: "Fiction", Published: "1965-08-01"}

	for _, tc := range []struct {
		category SearchCategory
		want     string
		ok       bool
	}{
		{CategoryName, "Dune", true},
		{CategoryAuthor, "Herbert", true},
		{CategorySubject, "Fiction", true},
		{SearchCategory("published"), "", false},
	} {
		got, ok := r.Field(tc.category)
		assert.Equal(t, tc.want, got, tc.category)
		assert.Equal(t, tc.ok, ok, tc.category)
	}
}

func TestParseSearchCategory(t *testing.T) {
	c, err := ParseSearchCategory("author")
	require.NoError(t, err)
	assert.Equal(t, CategoryAuthor, c)

	_, err = ParseSearchCategory("isbn")
	require.Error(t, err)
}

func TestSearchCategoryNextWraps(t *testing.T) {
	assert.Equal(t, CategoryAuthor, CategoryName.Next())
	assert.Equal(t, CategorySubject, CategoryAuthor.Next())
	assert.Equal(t, CategoryName, CategorySubject.Next())
	assert.Equal(t, CategoryName, SearchCategory("bogus").Next())
}

func TestSortOrder(t *testing.T) {
	o, err := ParseSortOrder("desc")
	require.NoError(t, err)
	assert.Equal(t, SortDescending, o)
	assert.Equal(t, SortAscending, o.Toggle())
	assert.Equal(t, SortDescending, SortAscending.Toggle())

	_, err = ParseSortOrder("newest")
	require.Error(t, err)
}

func TestRecordUnmarshalLenient(t *testing.T) {
	payload := `[
		{"name":"Dune","author":"Frank Herbert","subject":"Fiction","published":"1965-08-01"},
		{"name":"Untitled","author":null,"published":1999},
		{"name":42,"subject":{"nested":true},"published":false,"extra":"ignored"},
		null
	]`

	var c Collection
	require.NoError(t, json.Unmarshal([]byte(payload), &c))
	require.Len(t, c, 4)

	assert.Equal(t, Record{Name: "Dune", Author: "Frank Herbert", Subject: "Fiction", Published: "1965-08-01"}, c[0])
	assert.Equal(t, Record{Name: "Untitled", Published: "1999"}, c[1])
	assert.Equal(t, Record{Name: "42", Published: "false"}, c[2])
	assert.Equal(t, Record{}, c[3])
}

func TestRecordUnmarshalRejectsNonObject(t *testing.T) {
	var c Collection
	require.Error(t, json.Unmarshal([]byte(`["just a string"]`), &c))
}
