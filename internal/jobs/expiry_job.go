package jobs

import (
	"context"
	"time"

	"github.com/voyagedesk/travel-api/internal/domain"
	"go.uber.org/zap"
)

// ExpiryJobName is the scheduler name of the offer expiry job
const ExpiryJobName = "offer_expiry"

// DiscountExpirer switches off offers whose validity window has closed
type DiscountExpirer interface {
	DeactivateExpired(ctx context.Context) (int64, error)
}

// ExpiredTourLister finds tours past their expiry date
type ExpiredTourLister interface {
	ListExpired(ctx context.Context, before time.Time) ([]domain.TourDTO, error)
}

// ExpiryJob deactivates expired offers and reports tours that are no longer bookable.
// Offer evaluation already treats an expired offer as inapplicable; the job keeps the
// stored active flag in line with that so listings stay accurate.
type ExpiryJob struct {
	discounts DiscountExpirer
	tours     ExpiredTourLister
	logger    *zap.Logger
	timeout   time.Duration
	now       func() time.Time
}

func NewExpiryJob(discounts DiscountExpirer, tours ExpiredTourLister, logger *zap.Logger, timeout time.Duration) *ExpiryJob {
	return &ExpiryJob{
		discounts: discounts,
		tours:     tours,
		logger:    logger,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (j *ExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	deactivated, err := j.discounts.DeactivateExpired(ctx)
	if err != nil {
		j.logger.Error("discount expiry failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
	}

	var expiredTours int
	if j.tours != nil {
		now := j.now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		tours, err := j.tours.ListExpired(ctx, today)
		if err != nil {
			j.logger.Error("expired tour lookup failed", zap.Error(err))
		}
		expiredTours = len(tours)
		for _, t := range tours {
			fields := []zap.Field{zap.String("tour_id", t.ID.String()), zap.String("title", t.Title)}
			if t.ExpiryDate != nil {
				fields = append(fields, zap.String("expiry_date", *t.ExpiryDate))
			}
			j.logger.Info("tour expired", fields...)
		}
	}

	j.logger.Info("expiry job completed",
		zap.Int64("discounts_deactivated", deactivated),
		zap.Int("tours_expired", expiredTours),
		zap.Duration("duration", time.Since(start)))
}

// RegisterExpiryJob schedules the expiry job. With runAtStartup the job also runs once
// right away so offers that lapsed while the API was down are switched off.
func RegisterExpiryJob(scheduler *Scheduler, discounts DiscountExpirer, tours ExpiredTourLister, logger *zap.Logger, cronExpr string, timeout time.Duration, runAtStartup bool) error {
	job := NewExpiryJob(discounts, tours, logger, timeout)
	if err := scheduler.AddJob(ExpiryJobName, cronExpr, job.Run); err != nil {
		return err
	}
	if runAtStartup {
		return scheduler.RunNow(ExpiryJobName)
	}
	return nil
}
