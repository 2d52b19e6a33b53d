package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const snapshotName = "ledger.json"

// NewFileStore returns a memory store that writes a snapshot of its whole
// state to dir/ledger.json on every commit and reloads it on start. It suits
// development setups without PostgreSQL.
func NewFileStore(dir string) (*MemoryStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("store: data dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure data dir: %w", err)
	}
	path := filepath.Join(dir, snapshotName)

	data, err := loadSnapshot(path)
	if err != nil {
		return nil, err
	}
	s := NewMemoryStore()
	s.data = data
	s.persist = func(data map[string][]byte) error {
		return writeSnapshot(path, data)
	}
	return s, nil
}

func loadSnapshot(path string) (map[string][]byte, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string][]byte), nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read snapshot: %w", err)
	}
	data := make(map[string][]byte)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("store: decode snapshot %s: %w", path, err)
	}
	return data, nil
}

// writeSnapshot replaces the file at path through a rename so a crash never
// leaves a half written snapshot.
func writeSnapshot(path string, data map[string][]byte) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("store: encode snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), snapshotName+".*")
	if err != nil {
		return fmt.Errorf("store: create snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("store: sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("store: replace snapshot: %w", err)
	}
	return nil
}
