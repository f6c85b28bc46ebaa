package search

import (
	"strconv"
	"strings"
)

const (
	// PageSize is the fixed number of hits per page.
	PageSize = 100

	FilterOfficial = "Metadata/OfficialRepositoryNumber eq 1"
	FilterDistinct = "Metadata/DuplicateOf eq null"

	HighlightPreTag  = "\x1b[106m"
	HighlightPostTag = "\x1b[49m"
)

var selectFields = []string{
	"Id",
	"Name",
	"NamePartial",
	"NameSuffix",
	"Description",
	"Notes",
	"Homepage",
	"License",
	"Version",
	"Metadata/Repository",
	"Metadata/FilePath",
	"Metadata/OfficialRepository",
	"Metadata/RepositoryStars",
	"Metadata/Committed",
	"Metadata/Sha",
}

var highlightFields = []string{
	"Name",
	"NamePartial",
	"NameSuffix",
	"Description",
	"Version",
	"License",
	"Metadata/Repository",
}

type Options struct {
	OfficialOnly bool
	DistinctOnly bool
	Page         int
	// Sort defaults to best match when zero.
	Sort SortMode
	// Direction is used only when HasDirection is set; otherwise the mode's default applies.
	Direction    Direction
	HasDirection bool
}

type Query struct {
	Keyword          string
	Filters          []string
	OrderBy          []string
	Skip             int
	Top              int
	Select           []string
	HighlightFields  []string
	HighlightPreTag  string
	HighlightPostTag string
}

// NewQuery builds the catalog query for keyword. Pages below 1 are treated as 1.
func NewQuery(keyword string, opts Options) Query {
	filters := []string{}
	if opts.OfficialOnly {
		filters = append(filters, FilterOfficial)
	}
	if opts.DistinctOnly {
		filters = append(filters, FilterDistinct)
	}
	mode := opts.Sort
	if mode.Key == "" {
		mode = BestMatch()
	}
	dir := mode.DefaultDirection
	if opts.HasDirection {
		dir = opts.Direction
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	return Query{
		Keyword:          strings.TrimSpace(keyword),
		Filters:          filters,
		OrderBy:          mode.Chain(dir),
		Skip:             (page - 1) * PageSize,
		Top:              PageSize,
		Select:           append([]string{}, selectFields...),
		HighlightFields:  append([]string{}, highlightFields...),
		HighlightPreTag:  HighlightPreTag,
		HighlightPostTag: HighlightPostTag,
	}
}

// Filter is the AND-joined filter expression, empty when there are no filters.
func (q Query) Filter() string { return strings.Join(q.Filters, " and ") }

// ParsePage reads a page flag; anything that is not a positive integer is page 1.
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

type requestBody struct {
	Count            bool   `json:"count"`
	Search           string `json:"search"`
	SearchMode       string `json:"searchMode"`
	Filter           string `json:"filter"`
	OrderBy          string `json:"orderby"`
	Skip             int    `json:"skip"`
	Top              int    `json:"top"`
	Select           string `json:"select"`
	Highlight        string `json:"highlight"`
	HighlightPreTag  string `json:"highlightPreTag"`
	HighlightPostTag string `json:"highlightPostTag"`
}

func (q Query) body() requestBody {
	return requestBody{
		Count:            true,
		Search:           q.Keyword,
		SearchMode:       "all",
		Filter:           q.Filter(),
		OrderBy:          strings.Join(q.OrderBy, ", "),
		Skip:             q.Skip,
		Top:              q.Top,
		Select:           strings.Join(q.Select, ","),
		Highlight:        strings.Join(q.HighlightFields, ","),
		HighlightPreTag:  q.HighlightPreTag,
		HighlightPostTag: q.HighlightPostTag,
	}
}
