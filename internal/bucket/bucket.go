// Package bucket enumerates the local Scoop buckets and updates each one with
// a forced git pull. A failing bucket never stops the others.
package bucket

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gopak/scoopx/internal/config"
	"github.com/gopak/scoopx/internal/executil"
	"github.com/gopak/scoopx/internal/logging"
	"github.com/gopak/scoopx/internal/report"
	"github.com/gopak/scoopx/internal/scoop"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Bucket struct {
	Name  string
	Path  string
	IsDir bool
}

type Failure struct {
	Bucket string
	Output string
}

// Summary lists the outcome per bucket. Err is set only when the buckets
// directory itself could not be read.
type Summary struct {
	Updated []string
	Failed  []Failure
	Err     error
}

func (s Summary) OK() bool { return s.Err == nil && len(s.Failed) == 0 }

// Recorder persists per-bucket sync outcomes.
type Recorder interface {
	RecordSync(name string, at time.Time, errMsg string) error
}

// Root is the Scoop installation directory, two levels above the executable.
func Root(executablePath string) string {
	return filepath.Dir(filepath.Dir(executablePath))
}

// Dir is the buckets directory of the Scoop installation.
func Dir(h scoop.Handle) string {
	return filepath.Join(Root(h.ExecutablePath), "buckets")
}

// List returns every entry of dir sorted by name, flagging directories.
func List(dir string) ([]Bucket, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]Bucket, 0, len(entries))
	for _, e := range entries {
		out = append(out, Bucket{Name: e.Name(), Path: filepath.Join(dir, e.Name()), IsDir: e.IsDir()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type Synchronizer struct {
	exec     executil.Runner
	reporter report.Reporter
	recorder Recorder
	pull     string
	parallel int
	timeout  time.Duration
	now      func() time.Time
}

type Option func(*Synchronizer)

func WithReporter(rep report.Reporter) Option { return func(s *Synchronizer) { s.reporter = rep } }

func WithRecorder(rec Recorder) Option { return func(s *Synchronizer) { s.recorder = rec } }

func NewSynchronizer(cfg config.Buckets, exec executil.Runner, opts ...Option) (*Synchronizer, error) {
	timeout, err := config.Duration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("buckets.timeout: %w", err)
	}
	s := &Synchronizer{
		exec:     exec,
		reporter: report.Nop(),
		pull:     cfg.Pull,
		parallel: cfg.Parallel,
		timeout:  timeout,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// PullScript renders the pull template for one bucket directory.
func (s *Synchronizer) PullScript(path string) string {
	return strings.ReplaceAll(s.pull, "{path}", path)
}

// SyncAll pulls every bucket directory under the Scoop installation of h.
func (s *Synchronizer) SyncAll(ctx context.Context, h scoop.Handle) Summary {
	dir := Dir(h)
	all, err := List(dir)
	if err != nil {
		s.reporter.Fail("Read buckets failed", err.Error())
		return Summary{Err: fmt.Errorf("read buckets %s: %w", dir, err)}
	}
	buckets := make([]Bucket, 0, len(all))
	for _, b := range all {
		if !b.IsDir {
			continue
		}
		buckets = append(buckets, b)
	}

	var (
		mu  sync.Mutex
		sum Summary
	)
	record := func(b Bucket, errOut string) {
		mu.Lock()
		if errOut == "" {
			sum.Updated = append(sum.Updated, b.Name)
		} else {
			sum.Failed = append(sum.Failed, Failure{Bucket: b.Name, Output: errOut})
		}
		mu.Unlock()
		if s.recorder != nil {
			if err := s.recorder.RecordSync(b.Name, s.now(), errOut); err != nil {
				logging.L().Warn("record bucket state", zap.String("bucket", b.Name), zap.Error(err))
			}
		}
	}

	if s.parallel <= 1 {
		for _, b := range buckets {
			record(b, s.syncOne(ctx, b))
		}
		return sum
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for _, b := range buckets {
		b := b
		g.Go(func() error {
			record(b, s.syncOne(gctx, b))
			return nil
		})
	}
	_ = g.Wait()
	sort.Strings(sum.Updated)
	sort.Slice(sum.Failed, func(i, j int) bool { return sum.Failed[i].Bucket < sum.Failed[j].Bucket })
	return sum
}

// syncOne returns the captured error output, empty on success.
func (s *Synchronizer) syncOne(ctx context.Context, b Bucket) string {
	s.reporter.Start("Updating bucket " + text.Bold.Sprint(b.Name))
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	script := s.PullScript(b.Path)
	logging.Debug(fmt.Sprintf("%s [pull]: %s", b.Name, script))
	res := s.exec.Capture(ctx, script)
	errOut := res.Stderr
	if errOut == "" && res.Err != nil {
		errOut = res.Err.Error()
	}
	if errOut == "" && ctx.Err() != nil {
		errOut = ctx.Err().Error()
	}
	if errOut != "" {
		s.reporter.Fail(fmt.Sprintf("Update bucket '%s' failed", b.Name), errOut)
		logging.L().Warn("bucket pull failed", zap.String("bucket", b.Name), zap.String("stderr", errOut))
		return errOut
	}
	s.reporter.Success("Updated bucket " + text.Bold.Sprint(b.Name))
	logging.L().Info("bucket updated", zap.String("bucket", b.Name))
	return ""
}
