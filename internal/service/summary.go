package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/cache"
	"github.com/nutrilog/backend/internal/models"
)

// summaryStaleAfter is how long a summary stays fresh after a recompute.
// A read past this age triggers recalculation before the summary is served.
const summaryStaleAfter = 300 * time.Second

// LogChanged is the domain event emitted when a food or water log for a
// (user, date) is created or deleted. The summary engine consumes it to
// invalidate the cached aggregate for that day.
type LogChanged struct {
	UserID uuid.UUID
	Date   time.Time
}

// LogChangedHandler consumes LogChanged events.
type LogChangedHandler interface {
	HandleLogChanged(ctx context.Context, event LogChanged)
}

// SummaryService owns the per-user per-day aggregate: lazy creation,
// staleness-driven recomputation and cache invalidation. Recalculation is
// idempotent and derives purely from the log tables, so a lost update under
// concurrent writers self-heals on the next recompute.
type SummaryService struct {
	db    *gorm.DB
	cache cache.Cache

	mu    sync.Mutex
	dirty map[string]struct{}
}

var _ LogChangedHandler = (*SummaryService)(nil)

// NewSummaryService creates a SummaryService backed by db and an advisory
// cache. Pass cache.Disabled{} to run without caching; correctness holds
// either way.
func NewSummaryService(db *gorm.DB, c cache.Cache) *SummaryService {
	return &SummaryService{
		db:    db,
		cache: c,
		dirty: make(map[string]struct{}),
	}
}

func summaryCacheKey(userID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("daily_summary:%s:%s", userID, date.Format("2006-01-02"))
}

// GetOrCreate returns the summary for (userID, date), creating it on first
// access with the user's current profile targets as defaults. A freshly
// created, invalidated or stale summary is recalculated before being served.
func (s *SummaryService) GetOrCreate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DailySummary, error) {
	day := dateOnly(date)
	key := summaryCacheKey(userID, day)

	if !s.isDirty(key) {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var cached models.DailySummary
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var summary models.DailySummary
	created := false
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		summary = models.DailySummary{UserID: userID, Date: day}
		s.applyDefaultTargets(ctx, &summary)
		if err := s.db.WithContext(ctx).Create(&summary).Error; err != nil {
			return nil, err
		}
		created = true
	} else if err != nil {
		return nil, err
	}

	if created || s.isDirty(key) || time.Since(summary.UpdatedAt) > summaryStaleAfter {
		if err := s.Recalculate(ctx, &summary); err != nil {
			return nil, err
		}
	} else {
		s.cacheSummary(ctx, &summary)
	}

	return &summary, nil
}

// Recalculate overwrites every computed field of the summary from the
// underlying food and water logs and persists the result. Calling it twice
// with unchanged logs yields identical output.
func (s *SummaryService) Recalculate(ctx context.Context, summary *models.DailySummary) error {
	day := dateOnly(summary.Date)

	var totals struct {
		Calories float64
		Protein  float64
		Carbs    float64
		Fat      float64
	}
	err := s.db.WithContext(ctx).Model(&models.FoodLog{}).
		Select("COALESCE(SUM(calories), 0) AS calories, COALESCE(SUM(protein), 0) AS protein, COALESCE(SUM(carbs), 0) AS carbs, COALESCE(SUM(fat), 0) AS fat").
		Where("user_id = ? AND date = ?", summary.UserID, day).
		Scan(&totals).Error
	if err != nil {
		return err
	}

	mealCalories := make(map[string]float64, len(models.MealTypes))
	for _, mealType := range models.MealTypes {
		var calories float64
		err := s.db.WithContext(ctx).Model(&models.FoodLog{}).
			Select("COALESCE(SUM(calories), 0)").
			Where("user_id = ? AND date = ? AND meal_type = ?", summary.UserID, day, mealType).
			Scan(&calories).Error
		if err != nil {
			return err
		}
		mealCalories[mealType] = calories
	}

	var waterML int
	err = s.db.WithContext(ctx).Model(&models.WaterLog{}).
		Select("COALESCE(SUM(amount_ml), 0)").
		Where("user_id = ? AND date = ?", summary.UserID, day).
		Scan(&waterML).Error
	if err != nil {
		return err
	}

	summary.TotalCalories = totals.Calories
	summary.TotalProtein = totals.Protein
	summary.TotalCarbs = totals.Carbs
	summary.TotalFat = totals.Fat
	summary.BreakfastCalories = mealCalories[models.MealBreakfast]
	summary.LunchCalories = mealCalories[models.MealLunch]
	summary.DinnerCalories = mealCalories[models.MealDinner]
	summary.SnackCalories = mealCalories[models.MealSnack]
	summary.WaterIntakeML = waterML

	if err := s.db.WithContext(ctx).Save(summary).Error; err != nil {
		return err
	}

	key := summaryCacheKey(summary.UserID, day)
	s.clearDirty(key)
	s.cacheSummary(ctx, summary)

	logrus.WithFields(logrus.Fields{
		"user_id":        summary.UserID,
		"date":           day.Format("2006-01-02"),
		"total_calories": summary.TotalCalories,
	}).Info("summary_recalculated")

	return nil
}

// Invalidate marks the (userID, date) aggregate as stale. It does not
// recompute; recomputation happens lazily on the next GetOrCreate.
func (s *SummaryService) Invalidate(ctx context.Context, userID uuid.UUID, date time.Time) {
	key := summaryCacheKey(userID, dateOnly(date))
	s.mu.Lock()
	s.dirty[key] = struct{}{}
	s.mu.Unlock()
	if err := s.cache.Delete(ctx, key); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("summary_cache_delete_failed")
	}
}

// HandleLogChanged consumes a LogChanged event by invalidating the affected
// day's aggregate.
func (s *SummaryService) HandleLogChanged(ctx context.Context, event LogChanged) {
	s.Invalidate(ctx, event.UserID, event.Date)
}

// PeriodStats aggregates persisted summaries over an inclusive date range.
// Days without a summary row are excluded from the averages, not treated as
// zero-calorie days; they only lower the adherence percentage.
type PeriodStats struct {
	AvgCalories         float64 `json:"avg_calories"`
	AvgProtein          float64 `json:"avg_protein"`
	AvgCarbs            float64 `json:"avg_carbs"`
	AvgFat              float64 `json:"avg_fat"`
	DaysLogged          int     `json:"days_logged"`
	TotalDays           int     `json:"total_days"`
	AdherencePercentage float64 `json:"adherence_percentage"`
}

// GetPeriodStats computes mean intake and adherence for [startDate, endDate].
func (s *SummaryService) GetPeriodStats(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*PeriodStats, error) {
	start := dateOnly(startDate)
	end := dateOnly(endDate)

	var row struct {
		AvgCalories float64
		AvgProtein  float64
		AvgCarbs    float64
		AvgFat      float64
		DaysLogged  int
	}
	err := s.db.WithContext(ctx).Model(&models.DailySummary{}).
		Select("COALESCE(AVG(total_calories), 0) AS avg_calories, COALESCE(AVG(total_protein), 0) AS avg_protein, COALESCE(AVG(total_carbs), 0) AS avg_carbs, COALESCE(AVG(total_fat), 0) AS avg_fat, COUNT(id) AS days_logged").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	totalDays := int(end.Sub(start).Hours()/24) + 1
	adherence := 0.0
	if totalDays > 0 {
		adherence = round2(float64(row.DaysLogged) / float64(totalDays) * 100)
	}

	return &PeriodStats{
		AvgCalories:         row.AvgCalories,
		AvgProtein:          row.AvgProtein,
		AvgCarbs:            row.AvgCarbs,
		AvgFat:              row.AvgFat,
		DaysLogged:          row.DaysLogged,
		TotalDays:           totalDays,
		AdherencePercentage: adherence,
	}, nil
}

// applyDefaultTargets seeds a new summary with the user's current profile
// targets. A missing profile leaves the targets null.
func (s *SummaryService) applyDefaultTargets(ctx context.Context, summary *models.DailySummary) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", summary.UserID).First(&profile).Error
	if err != nil {
		return
	}
	summary.TargetCalories = copyInt(profile.DailyCalorieTarget)
	summary.TargetProtein = copyInt(profile.DailyProteinTarget)
	summary.TargetCarbs = copyInt(profile.DailyCarbsTarget)
	summary.TargetFat = copyInt(profile.DailyFatTarget)
}

// cacheSummary refreshes the cached copy of a summary. The TTL is the
// freshness remaining since the last recompute, never the full window, so a
// cached copy can not be served past the staleness deadline. Cache failures
// are logged and ignored; the database row stays authoritative.
func (s *SummaryService) cacheSummary(ctx context.Context, summary *models.DailySummary) {
	ttl := summaryStaleAfter - time.Since(summary.UpdatedAt)
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	key := summaryCacheKey(summary.UserID, dateOnly(summary.Date))
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("summary_cache_set_failed")
	}
}

func (s *SummaryService) isDirty(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.dirty[key]
	return ok
}

func (s *SummaryService) clearDirty(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dirty, key)
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// dateOnly truncates a timestamp to midnight UTC so log, summary and water
// rows for the same calendar day always compare equal.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
