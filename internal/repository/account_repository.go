package repository

import (
	"context"

	"github.com/sonit/feedbacksite/internal/models"
	"gorm.io/gorm"
)

// GormAccountRepository is a GORM implementation of AccountRepository
type GormAccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &GormAccountRepository{db: db}
}

// Create creates a new account
func (r *GormAccountRepository) Create(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// FindByID finds an account by ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uint64) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByUsername finds an account by username
func (r *GormAccountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByEmail finds an account by email
func (r *GormAccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// Update updates an account
func (r *GormAccountRepository) Update(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// Delete deletes an account and everything it owns in a transaction
func (r *GormAccountRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tabIDs := tx.Model(&models.Tab{}).Select("id").Where("owner_account_id = ?", id)
		subTabIDs := tx.Model(&models.SubTab{}).Select("id").Where("tab_id IN (?)", tabIDs)

		if err := tx.Where("sub_tab_id IN (?)", subTabIDs).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}

		if err := tx.Where("tab_id IN (?)", tabIDs).Delete(&models.SubTab{}).Error; err != nil {
			return err
		}

		if err := tx.Where("owner_account_id = ?", id).Delete(&models.Tab{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Account{}, id).Error
	})
}
