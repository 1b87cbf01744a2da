package worker

import (
	"context"
	"log"
	"time"

	"clinicbook/config"
	bookingRepo "clinicbook/database/repository/booking"
	practitionerRepo "clinicbook/database/repository/practitioner"
	"clinicbook/models"
	"clinicbook/services/scheduling"
	"clinicbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeAvailabilityWarm = "availability:warm"
	TypeBookingAudit     = "bookings:audit"

	warmHorizonDays = 14
)

func redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	}
}

// Init starts the background worker and its periodic schedule: an hourly
// availability cache warm across all departments, and a nightly audit that
// reconciles bookings against the practitioner directory.
func Init(engine scheduling.SchedulingEngine, bookings bookingRepo.BookingRepository, practitioners practitionerRepo.PractitionerRepository) {
	srv := asynq.NewServer(
		redisOpt(),
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAvailabilityWarm, handleAvailabilityWarm(engine))
	mux.HandleFunc(TypeBookingAudit, handleBookingAudit(bookings, practitioners))

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Printf("[Worker] failed to start: %v", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpt(), &asynq.SchedulerOpts{Location: time.Local})
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(TypeAvailabilityWarm, nil)); err != nil {
		log.Printf("[Worker] failed to register warm task: %v", err)
	}
	if _, err := scheduler.Register("0 3 * * *", asynq.NewTask(TypeBookingAudit, nil)); err != nil {
		log.Printf("[Worker] failed to register audit task: %v", err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[Worker] scheduler failed: %v", err)
		}
	}()
}

// handleAvailabilityWarm computes the next two weeks of availability for
// every department, populating the short-TTL cache ahead of read bursts.
// Results are discarded; only the cache side effect matters.
func handleAvailabilityWarm(engine scheduling.SchedulingEngine) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		logger := utils.GetLogger()
		today := time.Now()
		for _, dept := range models.Departments {
			for i := 0; i < warmHorizonDays; i++ {
				date := today.AddDate(0, 0, i).Format(scheduling.DateLayout)
				if _, err := engine.GetAvailability(ctx, dept.ID, date, ""); err != nil {
					logger.Warn("availability warm failed",
						zap.String("department", dept.ID), zap.String("date", date), zap.Error(err))
				}
			}
		}
		logger.Info("availability cache warmed", zap.Int("departments", len(models.Departments)))
		return nil
	}
}

// handleBookingAudit walks upcoming bookings and flags records whose
// practitioner no longer exists or whose department is not in the catalog.
// Orphans are logged for operator follow-up, never deleted automatically.
func handleBookingAudit(bookings bookingRepo.BookingRepository, practitioners practitionerRepo.PractitionerRepository) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		logger := utils.GetLogger()
		today := time.Now().Format(scheduling.DateLayout)

		upcoming, err := bookings.ListFromDate(ctx, today)
		if err != nil {
			logger.Error("booking audit: listing failed", zap.Error(err))
			return err
		}

		known := make(map[string]bool)
		orphans := 0
		for _, b := range upcoming {
			if _, ok := models.DepartmentByID(b.DepartmentID); !ok {
				orphans++
				logger.Warn("booking references unknown department",
					zap.String("booking", b.ID), zap.String("department", b.DepartmentID))
				continue
			}
			if b.PractitionerID == "" || b.PractitionerID == "demo" {
				continue
			}
			exists, seen := known[b.PractitionerID]
			if !seen {
				_, err := practitioners.GetByID(ctx, b.PractitionerID)
				exists = err == nil
				known[b.PractitionerID] = exists
			}
			if !exists {
				orphans++
				logger.Warn("booking references missing practitioner",
					zap.String("booking", b.ID), zap.String("practitioner", b.PractitionerID),
					zap.String("date", b.Date), zap.String("time", b.Time))
			}
		}

		logger.Info("booking audit complete",
			zap.Int("checked", len(upcoming)), zap.Int("orphans", orphans))
		return nil
	}
}
