package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roombooking/models"

	"github.com/hibiken/asynq"
)

const TypeWebhookDeliver = "booking:webhook"

// NewWebhookTask wraps a webhook payload for deferred delivery.
func NewWebhookTask(payload models.WebhookPayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeWebhookDeliver, b)
	opts := []asynq.Option{
		asynq.ProcessIn(delay),
		asynq.MaxRetry(10),
		asynq.TaskID("webhook:" + payload.Data.ID),
	}
	return task, opts, nil
}

// ParseWebhookTask decodes a payload built by NewWebhookTask.
func ParseWebhookTask(task *asynq.Task) (models.WebhookPayload, error) {
	var p models.WebhookPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return models.WebhookPayload{}, fmt.Errorf("invalid webhook task payload: %w", err)
	}
	return p, nil
}

// Enqueuer is the asynq client surface used by AsynqRetryQueue.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqRetryQueue hands failed webhook deliveries to the background worker.
type AsynqRetryQueue struct {
	Client Enqueuer
	Delay  time.Duration
}

func (q *AsynqRetryQueue) EnqueueWebhook(ctx context.Context, payload models.WebhookPayload) error {
	task, opts, err := NewWebhookTask(payload, q.Delay)
	if err != nil {
		return err
	}
	if _, err := q.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue webhook task: %w", err)
	}
	return nil
}
