package minio

import (
	"context"
	"testing"

	"github.com/hupe1980/odorsearch/archive"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	bucket := "test-odorsearch"
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data, err := archive.Encode([]byte(`{"id":"run-1"}`), archive.Zstd)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "reports/run-1.json.zst", data))

	got, err := store.Get(ctx, "reports/run-1.json.zst")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "reports/")
	require.NoError(t, err)
	assert.Contains(t, names, "reports/run-1.json.zst")

	require.NoError(t, store.Delete(ctx, "reports/run-1.json.zst"))
	_, err = store.Get(ctx, "reports/run-1.json.zst")
	assert.ErrorIs(t, err, archive.ErrNotFound)
}

func TestKey(t *testing.T) {
	s := NewStore(nil, "bucket", "lab-a/")
	assert.Equal(t, "lab-a/reports/x.json", s.key("reports/x.json"))

	s = NewStore(nil, "bucket", "")
	assert.Equal(t, "reports/x.json", s.key("reports/x.json"))
}
