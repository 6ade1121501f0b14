package upload

import "errors"

var (
	ErrInvalidFileType = errors.New("invalid file type")
	ErrInvalidContent  = errors.New("invalid file content")
	ErrFilenameTooLong = errors.New("filename too long")

	ErrObjectNotFound   = errors.New("storage: object not found")
	ErrInvalidObjectKey = errors.New("storage: invalid object key")
	ErrBucketNotFound   = errors.New("storage: bucket not found")
	ErrUnauthorized     = errors.New("storage: unauthorized")
	ErrInternal         = errors.New("storage: internal error")
)
