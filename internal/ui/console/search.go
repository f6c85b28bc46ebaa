package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gopak/scoopx/internal/manager"
	"github.com/gopak/scoopx/internal/search"
	"github.com/jedib0t/go-pretty/v6/text"
)

func (c *ConsoleUI) RunSearch(ctx context.Context, opts manager.SearchOptions) error {
	res, err := c.m.Search(ctx, opts)
	if err != nil {
		return err
	}
	renderSearch(c.out, res, c.now())
	return nil
}

// renderSearch prints every hit in the order the catalog returned them.
func renderSearch(w io.Writer, res manager.SearchResult, now time.Time) {
	fmt.Fprintln(w)
	for _, hit := range res.Envelope.Items {
		fmt.Fprintln(w, hitHeader(hit, res.Registry, now))
		fmt.Fprintln(w, "   "+hitDescription(hit))
		fmt.Fprintln(w)
	}
}

func hitHeader(hit search.Hit, reg search.Registry, now time.Time) string {
	var b strings.Builder
	b.WriteString(text.FgGreen.Sprint(hit.Name))
	if name, ok := reg.Lookup(hit.Metadata.Repository); ok {
		b.WriteString("/" + name)
	}
	b.WriteString("   " + hit.Version)
	if !hit.Metadata.Committed.IsZero() {
		b.WriteString(" - " + text.FgHiBlack.Sprint(relTime(hit.Metadata.Committed, now)))
	}
	return b.String()
}

var stripHighlight = strings.NewReplacer(search.HighlightPreTag, "", search.HighlightPostTag, "")

// hitDescription is the full description with each highlighted fragment
// marked in place. Fragments that do not occur verbatim are ignored.
func hitDescription(hit search.Hit) string {
	desc := hit.Description
	for _, frag := range hit.Highlights["Description"] {
		plain := stripHighlight.Replace(frag)
		if plain == "" || plain == frag {
			continue
		}
		if i := strings.Index(desc, plain); i >= 0 {
			desc = desc[:i] + frag + desc[i+len(plain):]
		}
	}
	return desc
}

func relTime(then, now time.Time) string {
	return humanize.RelTime(then, now, "ago", "from now")
}
