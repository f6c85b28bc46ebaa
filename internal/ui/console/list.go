package console

import (
	"context"
	"io"
	"time"

	"github.com/gopak/scoopx/internal/logging"
	"github.com/gopak/scoopx/internal/manager"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func (c *ConsoleUI) RunBuckets(ctx context.Context) error {
	infos, err := c.m.Buckets(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		logging.Info("No buckets found")
		return nil
	}
	renderBuckets(c.out, infos, c.now())
	return nil
}

func renderBuckets(w io.Writer, infos []manager.BucketInfo, now time.Time) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Bucket", "Last synced", "Status"})
	for _, b := range infos {
		tw.AppendRow(table.Row{text.Bold.Sprint(b.Name), lastSynced(b.State.LastSyncedAt, now), status(b)})
	}
	tw.Render()
}

func lastSynced(at string, now time.Time) string {
	if at == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return at
	}
	return relTime(t, now)
}

func status(b manager.BucketInfo) string {
	switch {
	case b.State.LastError != "":
		return text.FgRed.Sprint("failed: " + b.State.LastError)
	case b.State.LastAttemptAt == "":
		return text.FgHiBlack.Sprint("never synced")
	default:
		return text.FgGreen.Sprint("ok")
	}
}
