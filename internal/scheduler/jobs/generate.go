package jobs

import (
	"context"

	"github.com/wonny/festa/backend/pkg/logger"
)

// Generator 스케줄 경로가 사용하는 생성기 계약
type Generator interface {
	GenerateExpected(ctx context.Context) error
}

// GenerateJob runs pattern analysis and expected-festival generation monthly
// Schedule: 02:00 on day 1 (after the daily sync has refreshed the data)
type GenerateJob struct {
	generator Generator
	logger    *logger.Logger
}

// NewGenerateJob creates a new expected-festival generation job
func NewGenerateJob(generator Generator, log *logger.Logger) *GenerateJob {
	return &GenerateJob{
		generator: generator,
		logger:    log,
	}
}

// Name returns the job name
func (j *GenerateJob) Name() string {
	return "expected_generation"
}

// Schedule returns the cron schedule (02:00 on day 1 monthly, with seconds)
func (j *GenerateJob) Schedule() string {
	return "0 0 2 1 * *"
}

// Run executes pattern analysis and expected-festival generation.
// Failures are logged and swallowed; the next monthly run picks up.
func (j *GenerateJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled expected-festival generation")

	if err := j.generator.GenerateExpected(ctx); err != nil {
		j.logger.WithError(err).Error("Expected-festival generation failed")
		return nil
	}

	j.logger.Info("Expected-festival generation finished")
	return nil
}
