package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"

	"carebook/config"
	"carebook/models"
	"carebook/services/notification"
	"carebook/services/tasks"
	"carebook/utils"
)

// InitPushWorker runs the asynq worker that drains the push queue in the
// background. Lifecycle code only ever enqueues; delivery failures stay in
// the queue's retry machinery and never touch booking state.
func InitPushWorker(resolver notification.TokenResolver) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePushSend, handlePushTask(resolver))

	go func() {
		log.Println("[PushWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[PushWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[PushWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handlePushTask(resolver notification.TokenResolver) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[PushWorker] invalid payload: %v", err)
			return err
		}

		token, err := resolver.TokenFor(ctx, p.RecipientID, p.Role)
		if err != nil || token == "" {
			// No registered device is not a retryable condition.
			log.Printf("[PushWorker] no device token for %s %s, dropping %s", p.Role, p.RecipientID, p.Kind)
			return nil
		}

		data := map[string]string{"kind": p.Kind, "role": p.Role}
		for k, v := range p.Data {
			data[k] = v
		}

		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: p.Title,
				Body:  p.Body,
			},
			Data: data,
		}
		if p.Kind == models.EventSecurityAlert {
			msg.Android = &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					ChannelID: "high_priority",
					Sound:     "default",
				},
			}
		}

		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			log.Printf("[PushWorker] failed to send %s to %s: %v", p.Kind, p.RecipientID, err)
			return err
		}
		return nil
	}
}
