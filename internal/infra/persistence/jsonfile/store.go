// Package jsonfile persists the record store to a single JSON snapshot
// file. It is the default durable driver: the full state is loaded on
// open and rewritten after every successful transaction.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"flyrecord/internal/infra/persistence/memory"
	"flyrecord/pkg/domain"
)

// Compile-time contract assertion ensuring the store satisfies the domain
// interface.
var _ domain.PersistentStore = (*Store)(nil)

// DefaultPath is used when no snapshot path is configured.
const DefaultPath = "data/records.json"

// Store wraps the in-memory implementation and snapshots it to a JSON
// file. An absent file is an empty store; a malformed file is a hard load
// error. Writes go through a temp file and rename so a failed write never
// corrupts the previous snapshot.
type Store struct {
	*memory.Store
	mu   sync.Mutex
	path string
}

// NewStore opens (or initializes) the snapshot file at path and hydrates
// the in-memory state from it.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	s := &Store{Store: memory.NewStore(), path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", s.path, err)
	}
	var snapshot memory.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	s.ImportState(snapshot)
	return nil
}

func (s *Store) persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.ExportState()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".records-*.json")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// RunInTransaction applies fn through the in-memory store, then rewrites
// the snapshot file. A persistence failure surfaces as a
// domain.PersistenceError without rolling back the committed state.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx memory.Transaction) error) error {
	if err := s.Store.RunInTransaction(ctx, fn); err != nil {
		return err
	}
	if err := s.persist(); err != nil {
		return domain.PersistenceError{Op: "snapshot", Err: err}
	}
	return nil
}

// Path returns the configured snapshot file path.
func (s *Store) Path() string { return s.path }
