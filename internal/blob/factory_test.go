package blob_test

import (
	"context"
	"testing"

	"flyrecord/internal/blob"
)

func TestOpenSelectsDriverFromEnv(t *testing.T) {
	ctx := context.Background()

	t.Setenv("FLYRECORD_BLOB_DRIVER", "memory")
	store, err := blob.Open(ctx)
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if store.Driver() != blob.DriverMemory {
		t.Fatalf("unexpected driver %s", store.Driver())
	}

	t.Setenv("FLYRECORD_BLOB_DRIVER", "fs")
	t.Setenv("FLYRECORD_BLOB_FS_ROOT", t.TempDir())
	store, err = blob.Open(ctx)
	if err != nil {
		t.Fatalf("open fs: %v", err)
	}
	if store.Driver() != blob.DriverFilesystem {
		t.Fatalf("unexpected driver %s", store.Driver())
	}

	t.Setenv("FLYRECORD_BLOB_DRIVER", "tape")
	if _, err := blob.Open(ctx); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func TestOpenS3RequiresBucket(t *testing.T) {
	t.Setenv("FLYRECORD_BLOB_DRIVER", "s3")
	t.Setenv("FLYRECORD_BLOB_S3_BUCKET", "")
	if _, err := blob.Open(context.Background()); err == nil {
		t.Fatalf("expected missing bucket error")
	}
}
