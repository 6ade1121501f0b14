package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/storage"
	"github.com/fhuszti/cms-uploads-go/test/testutil"
	"github.com/minio/minio-go/v7"
)

// setupBucket binds the storage layer to a fresh bucket and removes it, with
// its content, when the test ends.
func setupBucket(t *testing.T) (*storage.MinioStorage, *minio.Client, string) {
	t.Helper()
	ctx := context.Background()

	raw, err := testutil.NewMinioClient(minioEndpoint, minioAccessKey, minioSecretKey)
	if err != nil {
		t.Fatalf("minio client: %v", err)
	}
	client, err := storage.NewMinioClient(minioEndpoint, minioAccessKey, minioSecretKey, false)
	if err != nil {
		t.Fatalf("storage client: %v", err)
	}

	bucket := fmt.Sprintf("uploads-%d", time.Now().UnixNano())
	strg, err := client.WithBucket(ctx, bucket)
	if err != nil {
		t.Fatalf("WithBucket(%q): %v", bucket, err)
	}
	t.Cleanup(func() {
		if err := testutil.EmptyBucket(context.Background(), raw, bucket); err != nil {
			t.Errorf("cleanup bucket: %v", err)
		}
	})
	return strg, raw, bucket
}

func listKeys(t *testing.T, client *minio.Client, bucket, prefix string) []string {
	t.Helper()
	var keys []string
	for obj := range client.ListObjects(context.Background(), bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			t.Fatalf("list objects: %v", obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys
}

func setupDB(t *testing.T) *testutil.TestDB {
	t.Helper()
	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	t.Cleanup(func() {
		if err := testDB.Cleanup(); err != nil {
			t.Errorf("cleanup DB: %v", err)
		}
	})
	return testDB
}
