package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sonit/feedbacksite/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCreateTab is returned when creating the tab fails inside the create transaction.
	ErrCreateTab = errors.New("tab repository: create tab failed")
	// ErrCreateDefaultSubTab is returned when creating the default sub-tab fails inside the create transaction.
	ErrCreateDefaultSubTab = errors.New("tab repository: create default sub-tab failed")
)

// GormTabRepository is a GORM implementation of TabRepository
type GormTabRepository struct {
	db *gorm.DB
}

// NewTabRepository creates a new TabRepository
func NewTabRepository(db *gorm.DB) TabRepository {
	return &GormTabRepository{db: db}
}

// CreateWithDefaultSubTab creates a tab and its default sub-tab atomically.
// The wrapped driver error is kept so callers can detect unique violations.
func (r *GormTabRepository) CreateWithDefaultSubTab(ctx context.Context, tab *models.Tab, subTab *models.SubTab) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(tab).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateTab, err)
		}

		subTab.TabID = tab.ID
		subTab.IsDefault = true

		if err := tx.Omit(clause.Associations).Create(subTab).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateDefaultSubTab, err)
		}

		return nil
	})
}

// FindOwned finds a tab by ID that belongs to the given account
func (r *GormTabRepository) FindOwned(ctx context.Context, id, ownerAccountID uint64) (*models.Tab, error) {
	var tab models.Tab
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_account_id = ?", id, ownerAccountID).
		First(&tab).Error; err != nil {
		return nil, err
	}
	return &tab, nil
}

// FindByName finds an account's tab by name
func (r *GormTabRepository) FindByName(ctx context.Context, ownerAccountID uint64, name string) (*models.Tab, error) {
	var tab models.Tab
	if err := r.db.WithContext(ctx).
		Where("owner_account_id = ? AND name = ?", ownerAccountID, name).
		First(&tab).Error; err != nil {
		return nil, err
	}
	return &tab, nil
}

// ListByOwner lists all tabs of an account, oldest first
func (r *GormTabRepository) ListByOwner(ctx context.Context, ownerAccountID uint64) ([]models.Tab, error) {
	var tabs []models.Tab
	if err := r.db.WithContext(ctx).
		Where("owner_account_id = ?", ownerAccountID).
		Order("created_at ASC, id ASC").
		Find(&tabs).Error; err != nil {
		return nil, err
	}
	return tabs, nil
}

// Update updates a tab
func (r *GormTabRepository) Update(ctx context.Context, tab *models.Tab) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(tab).Error
}

// Delete deletes a tab and all related data in a transaction
func (r *GormTabRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subTabIDs := tx.Model(&models.SubTab{}).Select("id").Where("tab_id = ?", id)

		// Delete all feedback in the tab
		if err := tx.Where("sub_tab_id IN (?)", subTabIDs).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}

		// Delete all sub-tabs
		if err := tx.Where("tab_id = ?", id).Delete(&models.SubTab{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Tab{}, id).Error
	})
}
