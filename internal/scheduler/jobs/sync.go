package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/festa/backend/internal/syncsvc"
	"github.com/wonny/festa/backend/pkg/logger"
)

// SyncJob refreshes the current year's festival data from TourAPI daily
// Schedule: 01:00 (before the monthly generation job at 02:00)
type SyncJob struct {
	sync   *syncsvc.Service
	logger *logger.Logger
}

// NewSyncJob creates a new TourAPI sync job
func NewSyncJob(sync *syncsvc.Service, log *logger.Logger) *SyncJob {
	return &SyncJob{
		sync:   sync,
		logger: log,
	}
}

// Name returns the job name
func (j *SyncJob) Name() string {
	return "tourapi_sync"
}

// Schedule returns the cron schedule (01:00 daily, with seconds)
func (j *SyncJob) Schedule() string {
	return "0 0 1 * * *"
}

// Run syncs the festival list, then backfills overviews and images
func (j *SyncJob) Run(ctx context.Context) error {
	year := time.Now().Year()
	j.logger.WithField("year", year).Info("Starting scheduled TourAPI sync")

	result, err := j.sync.SyncFestivals(ctx, year)
	if err != nil {
		return fmt.Errorf("sync festivals: %w", err)
	}

	if _, err := j.sync.SyncOverviewsForYear(ctx, year); err != nil {
		return fmt.Errorf("sync overviews: %w", err)
	}
	if _, err := j.sync.SyncImagesForYear(ctx, year); err != nil {
		return fmt.Errorf("sync images: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"created": result.Created,
		"updated": result.Updated,
		"skipped": result.Skipped,
		"failed":  result.Failed,
	}).Info("TourAPI sync finished")

	return nil
}
