package core_test

import (
	"context"
	"path/filepath"
	"testing"

	"flyrecord/internal/core"
	"flyrecord/internal/infra/persistence/jsonfile"
	"flyrecord/internal/infra/persistence/memory"
	"flyrecord/internal/infra/persistence/sqlite"
)

func TestOpenPersistentStoreDefaultsToJSONFile(t *testing.T) {
	t.Setenv("FLYRECORD_STORAGE_DRIVER", "")
	t.Setenv("FLYRECORD_JSON_PATH", filepath.Join(t.TempDir(), "records.json"))
	store, err := core.OpenPersistentStore(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := store.(*jsonfile.Store); !ok {
		t.Fatalf("expected jsonfile store, got %T", store)
	}
}

func TestOpenPersistentStoreMemory(t *testing.T) {
	t.Setenv("FLYRECORD_STORAGE_DRIVER", "memory")
	store, err := core.OpenPersistentStore(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}
}

func TestOpenPersistentStoreSQLite(t *testing.T) {
	t.Setenv("FLYRECORD_STORAGE_DRIVER", "sqlite")
	t.Setenv("FLYRECORD_SQLITE_PATH", filepath.Join(t.TempDir(), "records.db"))
	store, err := core.OpenPersistentStore(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s, ok := store.(*sqlite.Store)
	if !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}
	_ = s.DB().Close()
}

func TestOpenPersistentStoreUnknownDriver(t *testing.T) {
	t.Setenv("FLYRECORD_STORAGE_DRIVER", "cassandra")
	if _, err := core.OpenPersistentStore(context.Background()); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}
