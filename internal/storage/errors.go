package storage

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fhuszti/cms-uploads-go/internal/usecase/upload"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return upload.ErrObjectNotFound
	case "NoSuchBucket":
		return upload.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return upload.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", upload.ErrInternal, err)
	}
}

func mapFsErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return upload.ErrObjectNotFound
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", upload.ErrUnauthorized, err)
	default:
		return fmt.Errorf("%w: %v", upload.ErrInternal, err)
	}
}
