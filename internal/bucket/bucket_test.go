package bucket

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gopak/scoopx/internal/config"
	"github.com/gopak/scoopx/internal/executil"
	"github.com/gopak/scoopx/internal/report"
	"github.com/gopak/scoopx/internal/scoop"
	"github.com/gopak/scoopx/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGit fails the pull of any bucket path listed in stderr.
type fakeGit struct {
	mu      sync.Mutex
	stderr  map[string]string
	scripts []string
}

func (f *fakeGit) Capture(_ context.Context, script string) executil.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts = append(f.scripts, script)
	for name, msg := range f.stderr {
		if strings.Contains(script, string(filepath.Separator)+name+`"`) {
			return executil.Result{Stderr: msg, Code: 1}
		}
	}
	return executil.Result{}
}

func (f *fakeGit) Stream(context.Context, string) (int, error) { return 0, nil }

type memRecorder struct {
	mu   sync.Mutex
	seen map[string]string
}

func (m *memRecorder) RecordSync(name string, _ time.Time, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen == nil {
		m.seen = map[string]string{}
	}
	m.seen[name] = errMsg
	return nil
}

func scoopTree(t *testing.T, dirs ...string) scoop.Handle {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "shims"), 0o755))
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "buckets", d), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "buckets", "README.txt"), []byte("x"), 0o644))
	return scoop.Handle{ExecutablePath: filepath.Join(root, "shims", "scoop.ps1")}
}

func newSync(t *testing.T, ex executil.Runner, parallel int, opts ...Option) *Synchronizer {
	t.Helper()
	s, err := NewSynchronizer(config.Buckets{Pull: `cd "{path}" ; git pull -f`, Parallel: parallel}, ex, opts...)
	require.NoError(t, err)
	return s
}

func TestRoot(t *testing.T) {
	p := filepath.Join("home", "me", "scoop", "shims", "scoop.ps1")
	assert.Equal(t, filepath.Join("home", "me", "scoop"), Root(p))
}

func TestList_SkipsNothingButFlagsFiles(t *testing.T) {
	h := scoopTree(t, "main", "extras")
	all, err := List(Dir(h))
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "README.txt", all[0].Name)
	assert.False(t, all[0].IsDir)
	assert.Equal(t, "extras", all[1].Name)
	assert.True(t, all[1].IsDir)
}

func TestSyncAll_OnlyDirectories(t *testing.T) {
	h := scoopTree(t, "main", "extras")
	ex := &fakeGit{}
	rec := &report.Recorder{}
	sum := newSync(t, ex, 1, WithReporter(rec)).SyncAll(context.Background(), h)

	assert.True(t, sum.OK())
	assert.Equal(t, []string{"extras", "main"}, sum.Updated)
	assert.Len(t, ex.scripts, 2)
	for _, s := range ex.scripts {
		assert.NotContains(t, s, "README.txt")
		assert.True(t, strings.HasSuffix(s, `" ; git pull -f`))
	}
	assert.Equal(t, 2, rec.Count(report.KindStart))
	assert.Equal(t, 2, rec.Count(report.KindSuccess))
}

func TestSyncAll_FailureIsolation(t *testing.T) {
	h := scoopTree(t, "a-first", "b-second")
	ex := &fakeGit{stderr: map[string]string{"a-first": "fatal: could not read from remote"}}
	rec := &report.Recorder{}
	store := &memRecorder{}
	sum := newSync(t, ex, 1, WithReporter(rec), WithRecorder(store)).SyncAll(context.Background(), h)

	assert.False(t, sum.OK())
	require.Len(t, sum.Failed, 1)
	assert.Equal(t, "a-first", sum.Failed[0].Bucket)
	assert.Equal(t, "fatal: could not read from remote", sum.Failed[0].Output)
	assert.Equal(t, []string{"b-second"}, sum.Updated)

	events := rec.Events()
	require.Len(t, events, 4)
	assert.Equal(t, report.KindFail, events[1].Kind)
	assert.Equal(t, "fatal: could not read from remote", events[1].Detail)
	assert.Equal(t, report.KindSuccess, events[3].Kind)

	assert.Equal(t, "fatal: could not read from remote", store.seen["a-first"])
	assert.Equal(t, "", store.seen["b-second"])
}

func TestSyncAll_Parallel(t *testing.T) {
	h := scoopTree(t, "b1", "b2", "b3", "b4")
	ex := &fakeGit{stderr: map[string]string{"b2": "boom"}}
	sum := newSync(t, ex, 3).SyncAll(context.Background(), h)

	assert.Equal(t, []string{"b1", "b3", "b4"}, sum.Updated)
	require.Len(t, sum.Failed, 1)
	assert.Equal(t, "b2", sum.Failed[0].Bucket)
}

func TestSyncAll_ParallelRecordsState(t *testing.T) {
	names := []string{"b01", "b02", "b03", "b04", "b05", "b06", "b07", "b08", "b09", "b10", "b11", "b12"}
	h := scoopTree(t, names...)
	cfgDir := t.TempDir()
	st, err := state.NewManager(cfgDir)
	require.NoError(t, err)

	ex := &fakeGit{stderr: map[string]string{"b07": "fatal: repository not found"}}
	sum := newSync(t, ex, 6, WithRecorder(st)).SyncAll(context.Background(), h)
	require.Len(t, sum.Failed, 1)
	assert.Len(t, sum.Updated, len(names)-1)

	reloaded, err := state.NewManager(cfgDir)
	require.NoError(t, err, "state.json must stay readable after parallel writes")
	assert.Equal(t, names, reloaded.Names())
	bs, ok := reloaded.GetBucketState("b07")
	require.True(t, ok)
	assert.Equal(t, "fatal: repository not found", bs.LastError)
	assert.Empty(t, bs.LastSyncedAt)
}

func TestSyncAll_MissingBucketsDir(t *testing.T) {
	h := scoop.Handle{ExecutablePath: filepath.Join(t.TempDir(), "shims", "scoop.ps1")}
	rec := &report.Recorder{}
	sum := newSync(t, &fakeGit{}, 1, WithReporter(rec)).SyncAll(context.Background(), h)

	assert.Error(t, sum.Err)
	assert.False(t, sum.OK())
	assert.Equal(t, 1, rec.Count(report.KindFail))
}

func TestNewSynchronizer_BadTimeout(t *testing.T) {
	_, err := NewSynchronizer(config.Buckets{Pull: "{path}", Timeout: "later"}, &fakeGit{})
	assert.Error(t, err)
}
