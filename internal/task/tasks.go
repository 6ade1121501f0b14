package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeInspectUpload = "upload:inspect"

type InspectUploadPayload struct {
	UploadID string `json:"upload_id"`
}

// NewInspectUploadTask creates an Asynq task for inspecting an upload by ID.
func NewInspectUploadTask(uploadID string) (*asynq.Task, error) {
	p := InspectUploadPayload{UploadID: uploadID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal inspect-upload payload: %w", err)
	}
	return asynq.NewTask(TypeInspectUpload, data), nil
}

// ParseInspectUploadPayload parses the task payload to InspectUploadPayload.
func ParseInspectUploadPayload(t *asynq.Task) (InspectUploadPayload, error) {
	var p InspectUploadPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return InspectUploadPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
