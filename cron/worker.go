package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roombooking/models"
	"roombooking/services/tasks"

	"github.com/cenkalti/backoff/v5"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// WebhookDeliverer makes one delivery attempt; asynq owns the retries.
type WebhookDeliverer interface {
	Deliver(ctx context.Context, payload models.WebhookPayload) error
}

// StartWebhookWorker runs the deferred webhook worker in the background and
// returns the server so the caller can shut it down.
func StartWebhookWorker(redisOpts asynq.RedisClientOpt, deliverer WebhookDeliverer, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeWebhookDeliver, handleWebhookTask(deliverer, logger))

	// Start async worker with retry logic
	go func() {
		logger.Info("[WebhookWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(mux); err != nil {
				logger.Warn("[WebhookWorker] failed to start worker",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Error("[WebhookWorker] max retry attempts reached, deferred webhook delivery disabled")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}

func handleWebhookTask(deliverer WebhookDeliverer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseWebhookTask(task)
		if err != nil {
			logger.Error("[WebhookHandler] dropping task", zap.Error(err))
			return asynq.SkipRetry
		}

		if err := deliverer.Deliver(ctx, p); err != nil {
			logger.Warn("[WebhookHandler] delivery failed", zap.String("bookingId", p.Data.ID), zap.Error(err))
			var permanent *backoff.PermanentError
			if errors.As(err, &permanent) {
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			return err
		}
		logger.Info("[WebhookHandler] delivered", zap.String("bookingId", p.Data.ID))
		return nil
	}
}
