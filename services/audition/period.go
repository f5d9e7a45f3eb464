package audition

import (
	"context"
	"errors"
	"time"

	"dreamhi/database"
	processRepo "dreamhi/database/repository/process"
	"dreamhi/models"

	"go.uber.org/zap"
)

// PeriodResolver computes the reservation window of a process.
type PeriodResolver struct {
	Processes processRepo.ProcessRepository
	Cache     PeriodCache // optional
	Logger    *zap.Logger
}

// FindBookPeriod returns the configured [start, end] window of the process.
// Cache failures fall back to the repository.
func (r *PeriodResolver) FindBookPeriod(ctx context.Context, processID string) (models.BookPeriod, error) {
	if r.Cache != nil {
		cached, err := r.Cache.Get(ctx, processID)
		if err != nil {
			r.Logger.Warn("Period cache read failed", zap.String("processId", processID), zap.Error(err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	process, err := loadProcess(ctx, r.Processes, processID)
	if err != nil {
		return models.BookPeriod{}, err
	}
	period := process.Period()

	if r.Cache != nil {
		if err := r.Cache.Set(ctx, processID, period); err != nil {
			r.Logger.Warn("Period cache write failed", zap.String("processId", processID), zap.Error(err))
		}
	}
	return period, nil
}

// CorrectBookPeriod stores a new window and drops the cached one, so the
// period served to clients and the one reservations are checked against stay
// the same. Periods must only be changed through here.
func (r *PeriodResolver) CorrectBookPeriod(ctx context.Context, processID string, period models.BookPeriod) error {
	start, err := time.Parse(models.DateLayout, period.StartDate)
	if err != nil {
		return InvalidArgument("startDate %q must be formatted as YYYY-MM-DD", period.StartDate)
	}
	end, err := time.Parse(models.DateLayout, period.EndDate)
	if err != nil {
		return InvalidArgument("endDate %q must be formatted as YYYY-MM-DD", period.EndDate)
	}
	if end.Before(start) {
		return InvalidArgument("startDate %s is after endDate %s", period.StartDate, period.EndDate)
	}

	if err := r.Processes.UpdatePeriod(ctx, processID, period.StartDate, period.EndDate); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return NotFound("process %s not found", processID)
		}
		return Internal(err, "failed to update book period")
	}

	if r.Cache != nil {
		if err := r.Cache.Invalidate(ctx, processID); err != nil {
			r.Logger.Error("Period cache invalidation failed; stale period until TTL",
				zap.String("processId", processID), zap.Error(err))
		}
	}
	return nil
}

// loadProcess maps repository errors onto the service taxonomy.
func loadProcess(ctx context.Context, repo processRepo.ProcessRepository, processID string) (*models.Process, error) {
	process, err := repo.GetProcess(ctx, processID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("process %s not found", processID)
		}
		return nil, Internal(err, "failed to load process")
	}
	return process, nil
}
