package model

import (
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

// Category selects which allow-list governs an upload. It is chosen by the
// route receiving the file, never by the uploader.
type Category string

const (
	CategoryMedia    Category = "media"
	CategoryDocument Category = "document"
)

func (c Category) String() string {
	return string(c)
}

type Upload struct {
	ID               uuid.UUID `json:"id"`
	Category         Category  `json:"category"`
	ObjectKey        string    `json:"object_key"`
	OriginalFilename string    `json:"original_filename"`
	MimeType         *string   `json:"mime_type"`
	SizeBytes        int64     `json:"size_bytes"`
	Inspected        bool      `json:"inspected"`
	Metadata         Metadata  `json:"metadata"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
