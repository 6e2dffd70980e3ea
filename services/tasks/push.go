package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"carebook/models"
)

const TypePushSend = "push:send"

// NewPushTask packs one notification event for the push worker.
func NewPushTask(payload models.PushPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePushSend, b), nil
}
