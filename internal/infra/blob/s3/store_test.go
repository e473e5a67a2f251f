package s3_test

import (
	"context"
	"testing"

	"flyrecord/internal/blob/core"
	s3blob "flyrecord/internal/infra/blob/s3"
)

func TestNewRequiresBucket(t *testing.T) {
	if _, err := s3blob.New(context.Background(), s3blob.Config{}); err == nil {
		t.Fatalf("expected bucket requirement error")
	}
}

func TestOpenFromEnvRequiresBucket(t *testing.T) {
	t.Setenv("FLYRECORD_BLOB_S3_BUCKET", "")
	if _, err := s3blob.OpenFromEnv(context.Background()); err == nil {
		t.Fatalf("expected missing bucket error")
	}
}

func TestNewReportsDriver(t *testing.T) {
	store, err := s3blob.New(context.Background(), s3blob.Config{
		Bucket:          "records",
		Region:          "us-east-1",
		Endpoint:        "http://127.0.0.1:9000",
		PathStyle:       true,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if store.Driver() != core.DriverS3 {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
}
