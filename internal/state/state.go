package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

type BucketState struct {
	LastAttemptAt string `json:"last_attempt_at"`
	LastSyncedAt  string `json:"last_synced_at,omitempty"`
	LastError     string `json:"last_error,omitempty"`
}

type State struct {
	Buckets map[string]BucketState `json:"buckets"`
}

type Manager struct {
	path  string
	state State
	mu    sync.RWMutex
}

func NewManager(configDir string) (*Manager, error) {
	path := filepath.Join(configDir, "state.json")
	m := &Manager{
		path:  path,
		state: State{Buckets: make(map[string]BucketState)},
	}
	if err := m.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if m.state.Buckets == nil {
		m.state.Buckets = make(map[string]BucketState)
	}
	return m, nil
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &m.state)
}

// save writes the state through a temp file and a rename so a concurrent or
// interrupted write never leaves a truncated state.json. Callers hold m.mu.
func (m *Manager) save() error {
	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(m.path), "state-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), m.path)
}

func (m *Manager) GetBucketState(name string) (BucketState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bs, ok := m.state.Buckets[name]
	return bs, ok
}

// RecordSync stores the outcome of one bucket pull. An empty errMsg marks success
// and clears the previous error.
func (m *Manager) RecordSync(name string, at time.Time, errMsg string) error {
	stamp := at.UTC().Format(time.RFC3339)
	m.mu.Lock()
	defer m.mu.Unlock()
	bs := m.state.Buckets[name]
	bs.LastAttemptAt = stamp
	bs.LastError = errMsg
	if errMsg == "" {
		bs.LastSyncedAt = stamp
	}
	m.state.Buckets[name] = bs
	return m.save()
}

// Names lists every bucket with recorded state, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.state.Buckets))
	for name := range m.state.Buckets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RemoveBucketState forgets a bucket that no longer exists locally.
func (m *Manager) RemoveBucketState(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.Buckets[name]; !ok {
		return nil
	}
	delete(m.state.Buckets, name)
	return m.save()
}
