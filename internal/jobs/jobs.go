// Package jobs holds the scheduled batch work: nightly summary recomputation
// and the goal progress scan. The jobs carry no aggregation logic of their
// own; they invoke the services on a cadence.
package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
)

// BatchResult reports how much of a batch run succeeded.
type BatchResult struct {
	Processed int
	Total     int
}

// SummaryJob recomputes daily summaries for every active user.
type SummaryJob struct {
	db        *gorm.DB
	summaries service.ISummaryService
}

func NewSummaryJob(db *gorm.DB, summaries service.ISummaryService) *SummaryJob {
	return &SummaryJob{db: db, summaries: summaries}
}

// RecalculateDay rebuilds the given day's summary for every active user.
// A failure for one user is logged and counted, never aborts the batch.
func (j *SummaryJob) RecalculateDay(ctx context.Context, day time.Time) (BatchResult, error) {
	var users []models.User
	if err := j.db.WithContext(ctx).Where("is_active = ?", true).Find(&users).Error; err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Total: len(users)}
	for _, user := range users {
		summary, err := j.summaries.GetOrCreate(ctx, user.ID, day)
		if err == nil {
			err = j.summaries.Recalculate(ctx, summary)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"date":    day.Format("2006-01-02"),
				"error":   err.Error(),
			}).Error("failed_to_calculate_summary")
			continue
		}
		result.Processed++
	}

	logrus.WithFields(logrus.Fields{
		"processed": result.Processed,
		"total":     result.Total,
	}).Info("daily_summaries_calculated")

	return result, nil
}

// RecalculateYesterday is the nightly entry point.
func (j *SummaryJob) RecalculateYesterday(ctx context.Context) (BatchResult, error) {
	return j.RecalculateDay(ctx, time.Now().AddDate(0, 0, -1))
}

// GoalJob runs the periodic goal progress scan.
type GoalJob struct {
	goals service.IGoalService
}

func NewGoalJob(goals service.IGoalService) *GoalJob {
	return &GoalJob{goals: goals}
}

func (j *GoalJob) Run(ctx context.Context) error {
	_, _, err := j.goals.CheckProgress(ctx)
	return err
}

// RunWithRetry executes fn, retrying on a batch-wide failure up to attempts
// times with a doubling backoff between tries. Per-item failures inside fn
// are the job's own concern and do not trigger a retry.
func RunWithRetry(ctx context.Context, name string, attempts int, backoff time.Duration, fn func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}

		logrus.WithFields(logrus.Fields{
			"job":     name,
			"attempt": attempt,
			"error":   err.Error(),
		}).Error("job_attempt_failed")

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
