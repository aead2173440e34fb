package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PendingImageJobName is the scheduler name of the stale upload cleanup
const PendingImageJobName = "pending_image_cleanup"

// StaleImageFailer fails image slots stuck in pending
type StaleImageFailer interface {
	FailStalePending(ctx context.Context, ttl time.Duration) (int, error)
}

// PendingImageJob fails upload slots that stayed pending longer than ttl
type PendingImageJob struct {
	images  StaleImageFailer
	ttl     time.Duration
	logger  *zap.Logger
	timeout time.Duration
}

func NewPendingImageJob(images StaleImageFailer, ttl time.Duration, logger *zap.Logger, timeout time.Duration) *PendingImageJob {
	return &PendingImageJob{
		images:  images,
		ttl:     ttl,
		logger:  logger,
		timeout: timeout,
	}
}

func (j *PendingImageJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	failed, err := j.images.FailStalePending(ctx, j.ttl)
	if err != nil {
		j.logger.Error("pending image cleanup failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if failed > 0 {
		j.logger.Info("pending image cleanup completed",
			zap.Int("images_failed", failed),
			zap.Duration("ttl", j.ttl),
			zap.Duration("duration", time.Since(start)))
	}
}

func RegisterPendingImageJob(scheduler *Scheduler, images StaleImageFailer, ttl time.Duration, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewPendingImageJob(images, ttl, logger, timeout)
	return scheduler.AddJob(PendingImageJobName, cronExpr, job.Run)
}
