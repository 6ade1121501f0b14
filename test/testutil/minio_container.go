package testutil

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ory/dockertest/v3"
)

type MinIOContainerInfo struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Cleanup   func()
}

const (
	minioRootUser     = "minioadmin"
	minioRootPassword = "minioadmin"
)

func StartMinIOContainer() (*MinIOContainerInfo, error) {
	endpoint, purge, err := start(service{
		name: "minio",
		opts: dockertest.RunOptions{
			Repository: "minio/minio",
			Tag:        "latest",
			Env: []string{
				"MINIO_ROOT_USER=" + minioRootUser,
				"MINIO_ROOT_PASSWORD=" + minioRootPassword,
			},
			Cmd: []string{"server", "/data"},
		},
		port: "9000/tcp",
		ready: func(ctx context.Context, hostPort string) error {
			client, err := NewMinioClient(hostPort, minioRootUser, minioRootPassword)
			if err != nil {
				return err
			}
			_, err = client.ListBuckets(ctx)
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return &MinIOContainerInfo{
		Endpoint:  endpoint,
		AccessKey: minioRootUser,
		SecretKey: minioRootPassword,
		Cleanup:   purge,
	}, nil
}

// NewMinioClient returns a raw client, used by tests to inspect and clean
// buckets behind the storage layer's back.
func NewMinioClient(endpoint, accessKey, secretKey string) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
}

// EmptyBucket removes every object and then the bucket itself.
func EmptyBucket(ctx context.Context, client *minio.Client, bucket string) error {
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return obj.Err
		}
		if err := client.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("could not remove %q: %w", obj.Key, err)
		}
	}
	if err := client.RemoveBucket(ctx, bucket); err != nil {
		return fmt.Errorf("could not remove bucket %q: %w", bucket, err)
	}
	return nil
}
