package tasks

import (
	"encoding/json"
	"time"

	"voltcare/models"

	"github.com/hibiken/asynq"
)

const TypeBookingConfirmation = "booking:confirm"

// NewConfirmationTask builds the delayed confirmation task for a settled
// zero-cost booking.
func NewConfirmationTask(payload models.ConfirmationPayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingConfirmation, b)
	opts := []asynq.Option{asynq.ProcessIn(delay)}

	return task, opts, nil
}

// Scheduler enqueues background tasks on the shared asynq queue.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler returns a Scheduler backed by the given Redis queue options.
func NewScheduler(opts asynq.RedisClientOpt) *Scheduler {
	return &Scheduler{client: asynq.NewClient(opts)}
}

// ScheduleConfirmation enqueues the confirmation task to fire after delay.
func (s *Scheduler) ScheduleConfirmation(payload models.ConfirmationPayload, delay time.Duration) error {
	task, opts, err := NewConfirmationTask(payload, delay)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}

// Close releases the underlying queue client.
func (s *Scheduler) Close() error {
	return s.client.Close()
}
