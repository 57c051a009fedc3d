package repository

import (
	"context"

	"github.com/sonit/feedbacksite/internal/database"
	"github.com/sonit/feedbacksite/internal/models"
	"github.com/sonit/feedbacksite/internal/utils"
	"gorm.io/gorm"
)

// GormFeedbackRepository is a GORM implementation of FeedbackRepository
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// Create creates a new feedback item
func (r *GormFeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

// FindByID finds a feedback item by ID
func (r *GormFeedbackRepository) FindByID(ctx context.Context, id uint64) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).First(&feedback, id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// FindOwned finds a feedback item by ID through its sub-tab and tab to the owning account
func (r *GormFeedbackRepository) FindOwned(ctx context.Context, id, ownerAccountID uint64) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).
		Joins("JOIN sub_tabs ON sub_tabs.id = feedback.sub_tab_id").
		Joins("JOIN tabs ON tabs.id = sub_tabs.tab_id").
		Where("feedback.id = ? AND tabs.owner_account_id = ?", id, ownerAccountID).
		First(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// List retrieves feedback with filtering and pagination, newest first
func (r *GormFeedbackRepository) List(ctx context.Context, filter FeedbackFilter) ([]models.Feedback, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := r.filtered(ctx, filter).Order("feedback.created_at DESC, feedback.id DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.NewPaginationParams(filter.Page, filter.PageSize)))
	}

	feedback := []models.Feedback{}
	if err := listQuery.Find(&feedback).Error; err != nil {
		return nil, 0, err
	}

	return feedback, total, nil
}

func (r *GormFeedbackRepository) filtered(ctx context.Context, filter FeedbackFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Feedback{})

	if filter.TabID != nil || filter.OwnerAccountID != nil {
		query = query.Joins("JOIN sub_tabs ON sub_tabs.id = feedback.sub_tab_id")
	}
	if filter.OwnerAccountID != nil {
		query = query.Joins("JOIN tabs ON tabs.id = sub_tabs.tab_id").
			Where("tabs.owner_account_id = ?", *filter.OwnerAccountID)
	}
	if filter.TabID != nil {
		query = query.Where("sub_tabs.tab_id = ?", *filter.TabID)
	}
	if filter.SubTabID != nil {
		query = query.Where("feedback.sub_tab_id = ?", *filter.SubTabID)
	}
	if filter.Category != nil {
		query = query.Where("feedback.category = ?", *filter.Category)
	}
	if filter.Priority != nil {
		query = query.Where("feedback.priority = ?", *filter.Priority)
	}

	return query
}

// Update updates a feedback item
func (r *GormFeedbackRepository) Update(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Save(feedback).Error
}

// Delete deletes a feedback item
func (r *GormFeedbackRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Feedback{}, id).Error
}
