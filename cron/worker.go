package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dreamhi/config"
	"dreamhi/database"
	"dreamhi/models"
	"dreamhi/services/notification"
	"dreamhi/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingFinder is the part of the booking repository the worker needs to
// drop reminders of cancelled bookings.
type BookingFinder interface {
	GetByID(ctx context.Context, processID, bookingID string) (*models.Booking, error)
}

// RedisOpt builds the asynq connection shared by the client and the worker.
func RedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// InitReminderWorker runs the async worker in background and returns the
// server so the caller can shut it down.
func InitReminderWorker(bookings BookingFinder, notifSvc notification.NotificationService, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(config.AppConfig),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, HandleBookingReminder(bookings, notifSvc, logger))

	go monitorRedisConnection(logger)

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Error("Reminder worker gave up; reminders will not be delivered")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

// HandleBookingReminder delivers a reminder unless the booking was cancelled
// after the task was queued.
func HandleBookingReminder(bookings BookingFinder, notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseBookingReminder(task)
		if err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		booking, err := bookings.GetByID(ctx, p.ProcessID, p.BookingID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				logger.Warn("Reminder for unknown booking dropped", zap.String("bookingId", p.BookingID))
				return nil
			}
			return err
		}
		if booking.Status != models.BookingStatusConfirmed {
			logger.Info("Reminder for inactive booking dropped", zap.String("bookingId", p.BookingID), zap.String("status", booking.Status))
			return nil
		}

		data := map[string]string{
			"bookingId": p.BookingID,
			"processId": p.ProcessID,
			"date":      p.Date,
			"slotId":    p.SlotID,
			"fireDate":  p.FireDate,
		}
		if err := notifSvc.SendUserNotification(ctx, p.UserID, p.Title, p.Body, data); err != nil {
			logger.Error("Failed to deliver reminder", zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		logger.Info("Reminder delivered", zap.String("bookingId", p.BookingID), zap.String("userId", p.UserID))
		return nil
	}
}

// monitorRedisConnection pings the queue database periodically to detect
// failures at runtime.
func monitorRedisConnection(logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Reminder queue Redis connection lost", zap.Error(err))
		}
	}
}
