package manager

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gopak/scoopx/internal/search"
)

var archs = map[string]struct{}{"32bit": {}, "64bit": {}, "arm64": {}}

type AddOptions struct {
	Names         []string
	Global        bool
	Independent   bool
	NoCache       bool
	SkipHashCheck bool
	// NoUpdateScoop forwards --no-update-scoop; the add command sets it unless -u is given.
	NoUpdateScoop bool
	Arch          string
}

func (o AddOptions) Validate() error {
	if err := validateNames(o.Names); err != nil {
		return err
	}
	if o.Arch != "" {
		if _, ok := archs[o.Arch]; !ok {
			return fmt.Errorf("invalid arch %q (want 32bit, 64bit or arm64)", o.Arch)
		}
	}
	return nil
}

// Args is the install argument list in the order scoop expects.
func (o AddOptions) Args() []string {
	args := quoteAll(o.Names)
	if o.Global {
		args = append(args, "--global")
	}
	if o.Independent {
		args = append(args, "--independent")
	}
	if o.NoCache {
		args = append(args, "--no-cache")
	}
	if o.SkipHashCheck {
		args = append(args, "--skip-hash-check")
	}
	if o.NoUpdateScoop {
		args = append(args, "--no-update-scoop")
	}
	if o.Arch != "" {
		args = append(args, "--arch", o.Arch)
	}
	return args
}

type RemoveOptions struct {
	Names  []string
	Global bool
	Purge  bool
}

func (o RemoveOptions) Validate() error { return validateNames(o.Names) }

func (o RemoveOptions) Args() []string {
	args := quoteAll(o.Names)
	if o.Global {
		args = append(args, "--global")
	}
	if o.Purge {
		args = append(args, "--purge")
	}
	return args
}

type SearchOptions struct {
	Keyword      string
	OfficialOnly bool
	DistinctOnly bool
	// Page is the raw flag value; anything not a positive integer means 1.
	Page      string
	Sort      string
	Direction string
}

func (o SearchOptions) Validate() error {
	if strings.TrimSpace(o.Keyword) == "" {
		return errors.New("empty search keyword")
	}
	return nil
}

// Query resolves the options into a catalog query.
func (o SearchOptions) Query() (search.Query, error) {
	if err := o.Validate(); err != nil {
		return search.Query{}, err
	}
	opts := search.Options{
		OfficialOnly: o.OfficialOnly,
		DistinctOnly: o.DistinctOnly,
		Page:         search.ParsePage(o.Page),
	}
	if o.Sort != "" {
		mode, err := search.LookupSortMode(o.Sort)
		if err != nil {
			return search.Query{}, err
		}
		opts.Sort = mode
	}
	if o.Direction != "" {
		d, err := search.ParseDirection(o.Direction)
		if err != nil {
			return search.Query{}, err
		}
		opts.Direction = d
		opts.HasDirection = true
	}
	return search.NewQuery(o.Keyword, opts), nil
}

func validateNames(names []string) error {
	if len(names) == 0 {
		return errors.New("at least one package name is required")
	}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return errors.New("empty package name")
		}
	}
	return nil
}

var bareArg = regexp.MustCompile(`^[A-Za-z0-9._/:@+\\-]+$`)

// quoteArg wraps s in PowerShell single quotes unless it is a plain token.
func quoteArg(s string) string {
	if bareArg.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, quoteArg(s))
	}
	return out
}
