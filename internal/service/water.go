package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
)

// WaterService records water intake and keeps the day's summary water total
// in step without a full recompute.
type WaterService struct {
	db        *gorm.DB
	summaries *SummaryService
}

func NewWaterService(db *gorm.DB, summaries *SummaryService) *WaterService {
	return &WaterService{db: db, summaries: summaries}
}

// LogWater appends a water entry and bumps the summary's running total.
// Returns the created entry and the day's total after the write.
func (s *WaterService) LogWater(ctx context.Context, userID uuid.UUID, amountML int, date time.Time) (*models.WaterLog, int, error) {
	if amountML <= 0 {
		return nil, 0, &ValidationError{Field: "amount_ml", Message: "must be positive"}
	}

	day := dateOnly(date)

	// Settle the summary before the new entry exists so the increment below
	// cannot be double-counted by a recalculation.
	summary, err := s.summaries.GetOrCreate(ctx, userID, day)
	if err != nil {
		return nil, 0, err
	}

	log := models.WaterLog{
		UserID:   userID,
		Date:     day,
		AmountML: amountML,
	}
	if err := s.db.WithContext(ctx).Create(&log).Error; err != nil {
		return nil, 0, err
	}
	summary.WaterIntakeML += amountML
	if err := s.db.WithContext(ctx).Save(summary).Error; err != nil {
		return nil, 0, err
	}
	s.summaries.cacheSummary(ctx, summary)

	total, err := s.DailyWaterIntake(ctx, userID, log.Date)
	if err != nil {
		return nil, 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"amount_ml": amountML,
	}).Info("water_logged")

	return &log, total, nil
}

// DailyWaterIntake sums the day's water entries in milliliters.
func (s *WaterService) DailyWaterIntake(ctx context.Context, userID uuid.UUID, date time.Time) (int, error) {
	var total int
	err := s.db.WithContext(ctx).Model(&models.WaterLog{}).
		Select("COALESCE(SUM(amount_ml), 0)").
		Where("user_id = ? AND date = ?", userID, dateOnly(date)).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
