package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeAppointmentExpire = "appointment:expire"

// ExpirePayload identifies the reservation to reclaim.
type ExpirePayload struct {
	AppointmentID string `json:"appointmentId"`
}

// NewExpireTask builds the delayed task that reclaims a pending reservation
// once its checkout session has expired.
func NewExpireTask(appointmentID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ExpirePayload{AppointmentID: appointmentID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler enqueues expiry sweeps through asynq.
type Scheduler struct {
	Client *asynq.Client
}

func (s *Scheduler) ScheduleExpiry(ctx context.Context, appointmentID string, at time.Time) error {
	task, opts, err := NewExpireTask(appointmentID, at)
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	return err
}
