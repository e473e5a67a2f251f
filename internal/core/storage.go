package core

import (
	"context"
	"fmt"
	"os"

	"flyrecord/internal/infra/persistence/jsonfile"
	"flyrecord/internal/infra/persistence/memory"
	"flyrecord/internal/infra/persistence/postgres"
	"flyrecord/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageJSONFile StorageDriver = "jsonfile" // single JSON snapshot file (default)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // shared PostgreSQL server
)

// OpenPersistentStore selects a backend using environment variables.
// Defaults to the JSON snapshot file when unset.
//
//	FLYRECORD_STORAGE_DRIVER: memory|jsonfile|sqlite|postgres (default jsonfile)
//	FLYRECORD_JSON_PATH: path to the snapshot file (default data/records.json)
//	FLYRECORD_SQLITE_PATH: path to sqlite file (default ./flyrecord.db)
//	FLYRECORD_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenPersistentStore(ctx context.Context) (PersistentStore, error) {
	driver := os.Getenv("FLYRECORD_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageJSONFile)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageJSONFile:
		return jsonfile.NewStore(os.Getenv("FLYRECORD_JSON_PATH"))
	case StorageSQLite:
		return sqlite.NewStore(os.Getenv("FLYRECORD_SQLITE_PATH"))
	case StoragePostgres:
		return postgres.NewStore(ctx, os.Getenv("FLYRECORD_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
