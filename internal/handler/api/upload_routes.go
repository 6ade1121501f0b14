package api

import (
	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/usecase/upload"
	"github.com/go-chi/chi/v5"
)

// MountUploadRoutes registers POST /uploads/<alias> for every category alias,
// each bounded by the size limit of its category.
func MountUploadRoutes(r chi.Router, svc port.Uploader, recorder port.UploadRecorder, limits map[model.Category]int64) {
	for alias, category := range upload.CategoryAliases {
		r.Post("/uploads/"+alias, UploadFileHandler(svc, recorder, category, limits[category]))
	}
}
