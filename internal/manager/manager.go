// Package manager turns scoopx subcommands into bucket syncs, catalog
// searches and forwarded scoop invocations.
package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/gopak/scoopx/internal/bucket"
	"github.com/gopak/scoopx/internal/config"
	"github.com/gopak/scoopx/internal/logging"
	"github.com/gopak/scoopx/internal/report"
	"github.com/gopak/scoopx/internal/scoop"
	"github.com/gopak/scoopx/internal/search"
	"github.com/gopak/scoopx/internal/state"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/zap"
)

type Resolver interface {
	Resolve(ctx context.Context) (scoop.Handle, error)
}

type Syncer interface {
	SyncAll(ctx context.Context, h scoop.Handle) bucket.Summary
}

type Searcher interface {
	Search(ctx context.Context, q search.Query) (search.Envelope, error)
	Registry(ctx context.Context) (search.Registry, error)
}

// StateStore is the per-bucket sync history.
type StateStore interface {
	GetBucketState(name string) (state.BucketState, bool)
	Names() []string
	RemoveBucketState(name string) error
}

type Manager struct {
	cfg      config.Config
	resolver Resolver
	buckets  Syncer
	searcher Searcher
	runner   Runner
	reporter report.Reporter
	state    StateStore
	handle   *scoop.Handle
}

type Option func(*Manager)

func WithReporter(rep report.Reporter) Option { return func(m *Manager) { m.reporter = rep } }

func WithState(s StateStore) Option { return func(m *Manager) { m.state = s } }

func New(cfg config.Config, resolver Resolver, buckets Syncer, searcher Searcher, runner Runner, opts ...Option) *Manager {
	m := &Manager{
		cfg:      cfg,
		resolver: resolver,
		buckets:  buckets,
		searcher: searcher,
		runner:   runner,
		reporter: report.Nop(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// resolve runs the resolver at most once per Manager.
func (m *Manager) resolve(ctx context.Context) (scoop.Handle, error) {
	if m.handle != nil {
		return *m.handle, nil
	}
	h, err := m.resolver.Resolve(ctx)
	if err != nil {
		return scoop.Handle{}, err
	}
	m.handle = &h
	return h, nil
}

// UpdateBuckets pulls every local bucket. Per-bucket failures are in the summary;
// the error is non-nil only when Scoop could not be resolved.
func (m *Manager) UpdateBuckets(ctx context.Context) (bucket.Summary, error) {
	h, err := m.resolve(ctx)
	if err != nil {
		return bucket.Summary{}, err
	}
	sum := m.buckets.SyncAll(ctx, h)
	logging.L().Info("buckets synced",
		zap.Strings("updated", sum.Updated),
		zap.Int("failed", len(sum.Failed)))
	return sum, nil
}

// Add syncs buckets, then forwards the install to scoop. A failed bucket sync is
// a warning and does not stop the install.
func (m *Manager) Add(ctx context.Context, opts AddOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	sum, err := m.UpdateBuckets(ctx)
	if err != nil {
		return err
	}
	switch {
	case sum.Err != nil:
		logging.Warn("buckets not updated: " + sum.Err.Error())
	case len(sum.Failed) > 0:
		logging.Warn(fmt.Sprintf("%d bucket(s) failed to update; installing from the current state", len(sum.Failed)))
	}
	return m.forward(ctx, "install", m.cfg.Scoop.Install, opts.Args())
}

// Remove forwards the uninstall to scoop without touching buckets.
func (m *Manager) Remove(ctx context.Context, opts RemoveOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if _, err := m.resolve(ctx); err != nil {
		return err
	}
	return m.forward(ctx, "uninstall", m.cfg.Scoop.Uninstall, opts.Args())
}

func (m *Manager) forward(ctx context.Context, step, verb string, args []string) error {
	script := strings.TrimSpace(verb + " " + strings.Join(args, " "))
	code, err := m.runner.Run(ctx, step, script)
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Step: step, Code: code}
	}
	return nil
}

type SearchResult struct {
	Query    search.Query
	Envelope search.Envelope
	Registry search.Registry
}

// Search fetches the bucket registry, then one page of catalog hits.
func (m *Manager) Search(ctx context.Context, opts SearchOptions) (SearchResult, error) {
	q, err := opts.Query()
	if err != nil {
		return SearchResult{}, err
	}
	m.reporter.Start("Fetching buckets...")
	reg, err := m.searcher.Registry(ctx)
	if err != nil {
		m.reporter.Fail("Fetching buckets failed", err.Error())
		return SearchResult{}, err
	}
	m.reporter.Start("Searching " + text.Bold.Sprint(q.Keyword) + "...")
	env, err := m.searcher.Search(ctx, q)
	if err != nil {
		m.reporter.Fail("Search failed", err.Error())
		return SearchResult{}, err
	}
	m.reporter.Success(fmt.Sprintf("Total %s results", text.Bold.Sprint(env.TotalCount)))
	return SearchResult{Query: q, Envelope: env, Registry: reg}, nil
}

type BucketInfo struct {
	Name  string
	Path  string
	State state.BucketState
}

// Buckets lists the local bucket directories with their last recorded sync and
// forgets the history of buckets that were removed from disk.
func (m *Manager) Buckets(ctx context.Context) ([]BucketInfo, error) {
	h, err := m.resolve(ctx)
	if err != nil {
		return nil, err
	}
	all, err := bucket.List(bucket.Dir(h))
	if err != nil {
		return nil, err
	}
	out := make([]BucketInfo, 0, len(all))
	for _, b := range all {
		if !b.IsDir {
			continue
		}
		info := BucketInfo{Name: b.Name, Path: b.Path}
		if m.state != nil {
			info.State, _ = m.state.GetBucketState(b.Name)
		}
		out = append(out, info)
	}
	m.pruneState(out)
	return out, nil
}

func (m *Manager) pruneState(present []BucketInfo) {
	if m.state == nil {
		return
	}
	onDisk := make(map[string]struct{}, len(present))
	for _, b := range present {
		onDisk[b.Name] = struct{}{}
	}
	for _, name := range m.state.Names() {
		if _, ok := onDisk[name]; ok {
			continue
		}
		if err := m.state.RemoveBucketState(name); err != nil {
			logging.L().Warn("prune bucket state", zap.String("bucket", name), zap.Error(err))
			continue
		}
		logging.Debug("forgot removed bucket " + name)
	}
}
