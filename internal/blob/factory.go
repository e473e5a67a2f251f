package blob

import (
	"context"
	"fmt"
	"os"

	fsblob "flyrecord/internal/infra/blob/fs"
	memoryblob "flyrecord/internal/infra/blob/memory"
	s3blob "flyrecord/internal/infra/blob/s3"
)

// Open selects a blob.Store implementation using environment variables.
//
//	FLYRECORD_BLOB_DRIVER: fs|s3|memory (default fs)
//	FLYRECORD_BLOB_FS_ROOT: directory root when driver=fs (default ./blobdata)
//	(S3 specific variables documented in the s3 package)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("FLYRECORD_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		root := os.Getenv("FLYRECORD_BLOB_FS_ROOT")
		return fsblob.New(root)
	case DriverS3:
		return s3blob.OpenFromEnv(ctx)
	case DriverMemory:
		return memoryblob.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
