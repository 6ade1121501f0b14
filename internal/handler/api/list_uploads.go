package api

import (
	"net/http"
	"strconv"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/usecase/upload"
	"github.com/fhuszti/cms-uploads-go/internal/validation"
)

type ListUploadsRequest struct {
	Category string `json:"category" validate:"omitempty,category"`
	Limit    int    `json:"limit"    validate:"gte=0,lte=100"`
	Offset   int    `json:"offset"   validate:"gte=0"`
}

func ListUploadsHandler(svc port.UploadLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req := ListUploadsRequest{Category: q.Get("category")}
		var err error
		if req.Limit, err = queryInt(q.Get("limit")); err != nil {
			WriteError(w, http.StatusBadRequest, "limit must be an integer", nil)
			return
		}
		if req.Offset, err = queryInt(q.Get("offset")); err != nil {
			WriteError(w, http.StatusBadRequest, "offset must be an integer", nil)
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		in := port.ListUploadsInput{Limit: req.Limit, Offset: req.Offset}
		if req.Category != "" {
			// already checked by the category rule
			in.Category, _ = upload.ParseCategory(req.Category)
		}

		out, err := svc.ListUploads(r.Context(), in)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not list uploads", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
	}
}

func queryInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
