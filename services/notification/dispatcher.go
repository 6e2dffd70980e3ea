package notification

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"carebook/config"
	"carebook/models"
	"carebook/services/tasks"
)

// AsynqDispatcher queues events onto Redis for the push worker. Handing off
// is the whole contract; delivery happens out of band, so a slow or dead
// push gateway can never stall a lifecycle transition.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher connects a dispatcher to the configured Redis queue.
func NewAsynqDispatcher() *AsynqDispatcher {
	return &AsynqDispatcher{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

func (d *AsynqDispatcher) Notify(ctx context.Context, ev Event) error {
	task, err := tasks.NewPushTask(models.PushPayload{
		RecipientID: ev.RecipientID,
		Role:        ev.Role,
		Kind:        ev.Kind,
		Title:       ev.Title,
		Body:        ev.Body,
		Data:        ev.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to build push task: %w", err)
	}
	if _, err := d.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue push task: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}
