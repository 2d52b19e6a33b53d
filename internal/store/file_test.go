package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"donationledger/internal/domain"
)

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	if err := s.Put(ctx, "owner", []byte("alice")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	err = s.InTx(ctx, func(kv domain.KVStore) error {
		return kv.Put(ctx, "balances/bob", []byte("10x"))
	})
	if err != nil {
		t.Fatalf("InTx error: %v", err)
	}

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	for key, want := range map[string]string{"owner": "alice", "balances/bob": "10x"} {
		got, ok, err := reopened.Get(ctx, key)
		if err != nil || !ok || string(got) != want {
			t.Fatalf("Get(%q) = %q, %v, %v; want %q", key, got, ok, err, want)
		}
	}
}

func TestFileStoreRollbackIsNotPersisted(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	boom := errors.New("boom")
	err = s.InTx(ctx, func(kv domain.KVStore) error {
		if err := kv.Put(ctx, "owner", []byte("alice")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, snapshotName)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("snapshot written for a failed transaction: %v", err)
	}
}

func TestFileStoreCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, snapshotName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileStore(dir); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := NewFileStore("  "); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}
