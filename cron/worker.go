package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"voltcare/config"
	outcomeRepo "voltcare/database/repository/outcome"
	"voltcare/models"
	"voltcare/services/tasks"

	"github.com/hibiken/asynq"
)

// InitConfirmationWorker runs the async worker in background. It consumes the
// delayed confirmation tasks enqueued after zero-cost bookings and flips the
// corresponding outcome record to confirmed.
func InitConfirmationWorker(outcomes outcomeRepo.OutcomeRepository) {
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
	mux.HandleFunc(tasks.TypeBookingConfirmation, handleConfirmationTask(outcomes))

	// Start async worker with retry logic
	go func() {
		log.Println("[ConfirmationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ConfirmationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ConfirmationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleConfirmationTask(outcomes outcomeRepo.OutcomeRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ConfirmationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ConfirmationHandler] invalid payload: %v", err)
			return err
		}

		if err := outcomes.MarkConfirmed(ctx, p.AppointmentID); err != nil {
			log.Printf("[ConfirmationHandler] failed to confirm appointment %d: %v", p.AppointmentID, err)
			return err
		}
		log.Printf("[ConfirmationHandler] appointment %d confirmed for customer %s", p.AppointmentID, p.CustomerID)
		return nil
	}
}
