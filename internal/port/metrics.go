package port

import "github.com/fhuszti/cms-uploads-go/internal/model"

// UploadRecorder counts the outcome of every upload attempt.
type UploadRecorder interface {
	RecordUpload(category model.Category, outcome string)
}
