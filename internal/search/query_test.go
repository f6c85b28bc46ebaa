package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuery_Skip(t *testing.T) {
	for page, want := range map[int]int{1: 0, 2: 100, 5: 400, 0: 0, -3: 0} {
		q := NewQuery("git", Options{Page: page})
		assert.Equal(t, want, q.Skip, "page %d", page)
		assert.Equal(t, PageSize, q.Top)
		assert.Zero(t, q.Skip%q.Top)
	}
}

func TestNewQuery_Filters(t *testing.T) {
	t.Run("official only", func(t *testing.T) {
		q := NewQuery("x", Options{OfficialOnly: true})
		assert.Equal(t, "Metadata/OfficialRepositoryNumber eq 1", q.Filter())
	})
	t.Run("both", func(t *testing.T) {
		q := NewQuery("x", Options{OfficialOnly: true, DistinctOnly: true})
		assert.Equal(t, "Metadata/OfficialRepositoryNumber eq 1 and Metadata/DuplicateOf eq null", q.Filter())
	})
	t.Run("distinct only", func(t *testing.T) {
		q := NewQuery("x", Options{DistinctOnly: true})
		assert.Equal(t, "Metadata/DuplicateOf eq null", q.Filter())
	})
	t.Run("none", func(t *testing.T) {
		q := NewQuery("x", Options{})
		assert.Equal(t, "", q.Filter())
	})
}

func TestNewQuery_DefaultsToBestMatchDescending(t *testing.T) {
	q := NewQuery("  firefox ", Options{})
	assert.Equal(t, "firefox", q.Keyword)
	assert.Equal(t, []string{
		"search.score() desc",
		"Metadata/OfficialRepositoryNumber desc",
		"NameSortable asc",
	}, q.OrderBy)
}

func TestNewQuery_ExplicitSort(t *testing.T) {
	name, err := LookupSortMode("name")
	require.NoError(t, err)

	q := NewQuery("x", Options{Sort: name})
	assert.Equal(t, "NameSortable asc", q.OrderBy[0])

	q = NewQuery("x", Options{Sort: name, Direction: Descending, HasDirection: true})
	assert.Equal(t, "NameSortable desc", q.OrderBy[0])
}

func TestQueryBody(t *testing.T) {
	q := NewQuery("7zip", Options{OfficialOnly: true, Page: 3})
	b := q.body()
	assert.True(t, b.Count)
	assert.Equal(t, "all", b.SearchMode)
	assert.Equal(t, 200, b.Skip)
	assert.Equal(t, "search.score() desc, Metadata/OfficialRepositoryNumber desc, NameSortable asc", b.OrderBy)
	assert.True(t, strings.HasPrefix(b.Select, "Id,Name,NamePartial,"))
	assert.True(t, strings.HasSuffix(b.Select, "Metadata/Committed,Metadata/Sha"))
	assert.Equal(t, "Name,NamePartial,NameSuffix,Description,Version,License,Metadata/Repository", b.Highlight)
	assert.Equal(t, "\x1b[106m", b.HighlightPreTag)
	assert.Equal(t, "\x1b[49m", b.HighlightPostTag)
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{"1": 1, "2": 2, " 7 ": 7, "abc": 1, "": 1, "0": 1, "-4": 1, "2.5": 1}
	for in, want := range cases {
		assert.Equal(t, want, ParsePage(in), "input %q", in)
	}
}
