package storage

import (
	"context"
	"io"
	"mime"
	"path"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	client     minioClient
	bucketName string
	newName    func(ext string) string
}

type Strg struct {
	Client minioClient
}

// compile-time check: *MinioStorage must satisfy port.Storage
var _ port.Storage = (*MinioStorage)(nil)

func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*Strg, error) {
	logger.Info(context.Background(), "initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &Strg{Client: client}, nil
}

// WithBucket returns a storage bound to bucket, creating the bucket if needed.
func (c *Strg) WithBucket(ctx context.Context, bucket string) (*MinioStorage, error) {
	ok, err := c.Client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, mapMinioErr(err)
	}
	if !ok {
		logger.Infof(ctx, "bucket %q does not exist, creating it...", bucket)
		if err := c.Client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, mapMinioErr(err)
		}
	}
	return &MinioStorage{client: c.Client, bucketName: bucket, newName: newObjectName}, nil
}

func (s *MinioStorage) SaveFile(ctx context.Context, dir, ext string, reader io.Reader, fileSize int64) (string, error) {
	key := objectKey(dir, s.newName(ext))
	logger.Debugf(ctx, "saving file %q into bucket %q...", key, s.bucketName)

	putOpts := minio.PutObjectOptions{}
	if ct := mime.TypeByExtension(ext); ct != "" {
		putOpts.ContentType = ct
	}

	if _, err := s.client.PutObject(ctx, s.bucketName, key, reader, fileSize, putOpts); err != nil {
		return "", mapMinioErr(err)
	}
	return key, nil
}

func (s *MinioStorage) StatFile(ctx context.Context, key string) (port.FileInfo, error) {
	logger.Debugf(ctx, "getting stats on file %q in bucket %q...", key, s.bucketName)

	info, err := s.client.StatObject(ctx, s.bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		return port.FileInfo{}, mapMinioErr(err)
	}
	ct := info.ContentType
	if ct == "" {
		ct = mime.TypeByExtension(path.Ext(key))
	}
	return port.FileInfo{
		SizeBytes:   info.Size,
		ContentType: ct,
	}, nil
}

func (s *MinioStorage) RemoveFile(ctx context.Context, key string) error {
	logger.Debugf(ctx, "removing file %q from bucket %q...", key, s.bucketName)

	err := s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
	return mapMinioErr(err)
}

func (s *MinioStorage) GetFile(ctx context.Context, key string) (io.ReadCloser, error) {
	logger.Debugf(ctx, "getting file %q from bucket %q...", key, s.bucketName)

	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	// GetObject is lazy: a missing key only surfaces on first access
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, mapMinioErr(err)
	}
	return obj, nil
}
