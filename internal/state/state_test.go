package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestManager_RecordSync(t *testing.T) {
	tmpDir := t.TempDir()
	m, err := NewManager(tmpDir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if err := m.RecordSync("main", at, ""); err != nil {
		t.Fatalf("RecordSync: %v", err)
	}

	got, ok := m.GetBucketState("main")
	if !ok {
		t.Fatal("GetBucketState: not found")
	}
	if got.LastSyncedAt != "2024-01-01T10:00:00Z" {
		t.Errorf("LastSyncedAt = %q", got.LastSyncedAt)
	}
	if got.LastError != "" {
		t.Errorf("LastError = %q, want empty", got.LastError)
	}
}

func TestManager_RecordSync_FailureKeepsLastSuccess(t *testing.T) {
	m, _ := NewManager(t.TempDir())
	ok := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	bad := ok.Add(time.Hour)
	m.RecordSync("extras", ok, "")
	m.RecordSync("extras", bad, "fatal: unable to access")

	got, _ := m.GetBucketState("extras")
	if got.LastSyncedAt != "2024-01-01T10:00:00Z" {
		t.Errorf("LastSyncedAt = %q, want previous success", got.LastSyncedAt)
	}
	if got.LastAttemptAt != "2024-01-01T11:00:00Z" {
		t.Errorf("LastAttemptAt = %q", got.LastAttemptAt)
	}
	if got.LastError != "fatal: unable to access" {
		t.Errorf("LastError = %q", got.LastError)
	}
}

func TestManager_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	m1, err := NewManager(tmpDir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := m1.RecordSync("main", time.Now(), ""); err != nil {
		t.Fatalf("RecordSync: %v", err)
	}

	m2, err := NewManager(tmpDir)
	if err != nil {
		t.Fatalf("NewManager (reload): %v", err)
	}
	if _, ok := m2.GetBucketState("main"); !ok {
		t.Fatal("GetBucketState after reload: not found")
	}

	if err := m2.RemoveBucketState("main"); err != nil {
		t.Fatalf("RemoveBucketState: %v", err)
	}
	m3, _ := NewManager(tmpDir)
	if _, ok := m3.GetBucketState("main"); ok {
		t.Fatal("bucket state should be gone after removal")
	}
}

func TestNewManager_CorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "state.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := NewManager(tmpDir); err == nil {
		t.Fatal("expected error for corrupt state file")
	}
}

func TestManager_ConcurrentRecordSync(t *testing.T) {
	tmpDir := t.TempDir()
	m, err := NewManager(tmpDir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := m.RecordSync(fmt.Sprintf("bucket%02d", i), time.Now(), ""); err != nil {
				t.Errorf("RecordSync: %v", err)
			}
		}(i)
	}
	wg.Wait()

	reloaded, err := NewManager(tmpDir)
	if err != nil {
		t.Fatalf("reload after concurrent writes: %v", err)
	}
	if n := len(reloaded.Names()); n != 16 {
		t.Fatalf("Names() = %d entries, want 16", n)
	}
	entries, _ := os.ReadDir(tmpDir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestManager_RemoveUnknownBucket(t *testing.T) {
	tmpDir := t.TempDir()
	m, _ := NewManager(tmpDir)
	if err := m.RemoveBucketState("ghost"); err != nil {
		t.Fatalf("RemoveBucketState: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "state.json")); !os.IsNotExist(err) {
		t.Fatalf("no write expected for an unknown bucket, stat err = %v", err)
	}
}
