package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/levy-pm/co-moge-zjesc/models"
)

// FeedbackRepository appends telemetry rows. There are deliberately no
// update or delete methods.
type FeedbackRepository struct {
	DB *gorm.DB
}

// NewFeedbackRepository creates and returns a new FeedbackRepository.
func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

// Create inserts a feedback row.
func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	return r.DB.WithContext(ctx).Create(fb).Error
}
