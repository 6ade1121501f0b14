package storage

import (
	"path"

	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

// newObjectName never reuses anything the client sent except the extension.
func newObjectName(ext string) string {
	return uuid.NewUUID().String() + ext
}

func objectKey(dir, name string) string {
	return path.Join(dir, name)
}
