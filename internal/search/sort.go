package search

import (
	"fmt"
	"strings"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// ParseDirection accepts asc/ascending and desc/descending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return 0, fmt.Errorf("unknown sort direction %q (want asc or desc)", s)
}

// SortMode is one of the catalog's ordering strategies. Every chain ends in a
// field that breaks all remaining ties.
type SortMode struct {
	Key              string
	DisplayName      string
	DefaultDirection Direction
	OrderBy          map[Direction][]string
}

var sortModes = []SortMode{
	{
		Key:              "best-match",
		DisplayName:      "Best match",
		DefaultDirection: Descending,
		OrderBy: map[Direction][]string{
			Ascending: {
				"search.score() asc",
				"Metadata/OfficialRepositoryNumber asc",
				"NameSortable desc",
			},
			Descending: {
				"search.score() desc",
				"Metadata/OfficialRepositoryNumber desc",
				"NameSortable asc",
			},
		},
	},
	{
		Key:              "name",
		DisplayName:      "Name",
		DefaultDirection: Ascending,
		OrderBy: map[Direction][]string{
			Ascending: {
				"NameSortable asc",
				"Metadata/OfficialRepositoryNumber desc",
				"Metadata/RepositoryStars desc",
				"Metadata/Committed desc",
			},
			Descending: {
				"NameSortable desc",
				"Metadata/OfficialRepositoryNumber asc",
				"Metadata/RepositoryStars asc",
				"Metadata/Committed asc",
			},
		},
	},
	{
		Key:              "newest",
		DisplayName:      "Newest",
		DefaultDirection: Descending,
		OrderBy: map[Direction][]string{
			Ascending: {
				"Metadata/Committed asc",
				"Metadata/OfficialRepositoryNumber asc",
				"Metadata/RepositoryStars asc",
			},
			Descending: {
				"Metadata/Committed desc",
				"Metadata/OfficialRepositoryNumber desc",
				"Metadata/RepositoryStars desc",
			},
		},
	},
}

// SortModes returns the fixed set of modes, best match first.
func SortModes() []SortMode {
	out := make([]SortMode, len(sortModes))
	copy(out, sortModes)
	return out
}

// BestMatch is the default mode.
func BestMatch() SortMode { return sortModes[0] }

// LookupSortMode finds a mode by key or display name, case-insensitively.
func LookupSortMode(name string) (SortMode, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, m := range sortModes {
		if n == m.Key || n == strings.ToLower(m.DisplayName) {
			return m, nil
		}
	}
	keys := make([]string, 0, len(sortModes))
	for _, m := range sortModes {
		keys = append(keys, m.Key)
	}
	return SortMode{}, fmt.Errorf("unknown sort mode %q (want one of %s)", name, strings.Join(keys, ", "))
}

// Chain returns a copy of the order-by expressions for d.
func (m SortMode) Chain(d Direction) []string {
	return append([]string{}, m.OrderBy[d]...)
}
