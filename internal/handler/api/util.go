package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
)

const noStore = "no-store, max-age=0, must-revalidate"

type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError answers with {"error": msg}. err is only logged: client errors
// at warn level, server errors at error level.
func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	line := msg
	if err != nil {
		line = msg + ": " + err.Error()
	}
	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "❌  "+line, "status", status)
	} else {
		logger.Warn(ctx, "⚠️  "+line, "status", status)
	}

	w.Header().Set("Cache-Control", noStore)
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode %T response: %v", v, err)
		w.Header().Set("Cache-Control", noStore)
		payload, status = []byte(`{"error":"internal server error"}`), http.StatusInternalServerError
	}
	RespondRawJSON(w, status, append(payload, '\n'))
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Warnf(context.Background(), "⚠️  Failed to write JSON payload: %v", err)
	}
}
