package repository

import (
	"context"

	"github.com/sonit/feedbacksite/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSubTabRepository is a GORM implementation of SubTabRepository
type GormSubTabRepository struct {
	db *gorm.DB
}

// NewSubTabRepository creates a new SubTabRepository
func NewSubTabRepository(db *gorm.DB) SubTabRepository {
	return &GormSubTabRepository{db: db}
}

// Create creates a new sub-tab
func (r *GormSubTabRepository) Create(ctx context.Context, subTab *models.SubTab) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(subTab).Error
}

// FindOwned finds a sub-tab by ID whose tab belongs to the given account
func (r *GormSubTabRepository) FindOwned(ctx context.Context, id, ownerAccountID uint64) (*models.SubTab, error) {
	var subTab models.SubTab
	if err := r.db.WithContext(ctx).
		Joins("JOIN tabs ON tabs.id = sub_tabs.tab_id").
		Where("sub_tabs.id = ? AND tabs.owner_account_id = ?", id, ownerAccountID).
		First(&subTab).Error; err != nil {
		return nil, err
	}
	return &subTab, nil
}

// FindByName finds a sub-tab of a tab by name
func (r *GormSubTabRepository) FindByName(ctx context.Context, tabID uint64, name string) (*models.SubTab, error) {
	var subTab models.SubTab
	if err := r.db.WithContext(ctx).
		Where("tab_id = ? AND name = ?", tabID, name).
		First(&subTab).Error; err != nil {
		return nil, err
	}
	return &subTab, nil
}

// FindDefault finds the default sub-tab of a tab
func (r *GormSubTabRepository) FindDefault(ctx context.Context, tabID uint64) (*models.SubTab, error) {
	var subTab models.SubTab
	if err := r.db.WithContext(ctx).
		Where("tab_id = ? AND is_default = ?", tabID, true).
		First(&subTab).Error; err != nil {
		return nil, err
	}
	return &subTab, nil
}

// ListByTab lists all sub-tabs of a tab, default first
func (r *GormSubTabRepository) ListByTab(ctx context.Context, tabID uint64) ([]models.SubTab, error) {
	var subTabs []models.SubTab
	if err := r.db.WithContext(ctx).
		Where("tab_id = ?", tabID).
		Order("is_default DESC, created_at ASC, id ASC").
		Find(&subTabs).Error; err != nil {
		return nil, err
	}
	return subTabs, nil
}

// Update updates a sub-tab
func (r *GormSubTabRepository) Update(ctx context.Context, subTab *models.SubTab) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(subTab).Error
}

// Delete deletes a sub-tab and its feedback in a transaction
func (r *GormSubTabRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sub_tab_id = ?", id).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.SubTab{}, id).Error
	})
}
