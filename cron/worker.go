package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"clinicore/config"
	"clinicore/services/booking"
	"clinicore/services/tasks"

	"github.com/hibiken/asynq"
)

// InitExpiryWorker runs the async worker that reclaims pending reservations
// whose checkout sessions have expired.
func InitExpiryWorker(bookingSvc booking.BookingService) {
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
	mux.HandleFunc(tasks.TypeAppointmentExpire, handleExpireTask(bookingSvc))

	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleExpireTask(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryWorker] invalid payload: %v", err)
			return err
		}

		canceled, err := bookingSvc.ExpirePending(ctx, p.AppointmentID)
		if err != nil {
			log.Printf("[ExpiryWorker] failed to expire appointment %s: %v", p.AppointmentID, err)
			return err
		}
		if canceled {
			log.Printf("[ExpiryWorker] reclaimed slot of appointment %s", p.AppointmentID)
		}
		return nil
	}
}
