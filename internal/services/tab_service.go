package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sonit/feedbacksite/internal/constants"
	apierrors "github.com/sonit/feedbacksite/internal/errors"
	"github.com/sonit/feedbacksite/internal/models"
	"github.com/sonit/feedbacksite/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTabNotFound  = apierrors.Missing("tab not found")
	ErrTabNameTaken = apierrors.Duplicate("a tab with this name already exists")
)

// TabService provides business logic for tab operations.
type TabService struct {
	store repository.Store
}

// NewTabService creates a new TabService.
func NewTabService(store repository.Store) *TabService {
	return &TabService{
		store: store,
	}
}

// CreateTabInput represents parameters to create a new tab.
type CreateTabInput struct {
	Name           string
	OwnerAccountID uint64
}

// CreateTab creates a tab together with its default sub-tab.
func (s *TabService) CreateTab(ctx context.Context, input CreateTabInput) (*models.Tab, error) {
	name, err := normalizeName("tab", input.Name)
	if err != nil {
		return nil, err
	}

	tab := &models.Tab{
		Name:           name,
		OwnerAccountID: input.OwnerAccountID,
	}

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Accounts().FindByID(ctx, input.OwnerAccountID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to find account: %w", err)
		}

		if _, err := tx.Tabs().FindByName(ctx, input.OwnerAccountID, name); err == nil {
			return ErrTabNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check tab name: %w", err)
		}

		defaultSubTab := &models.SubTab{Name: constants.DefaultSubTabName}
		if err := tx.Tabs().CreateWithDefaultSubTab(ctx, tab, defaultSubTab); err != nil {
			switch {
			case errors.Is(err, repository.ErrCreateTab) && errors.Is(err, gorm.ErrDuplicatedKey):
				return ErrTabNameTaken
			default:
				return fmt.Errorf("failed to create tab: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tab, nil
}

// ListTabs returns the account's tabs, oldest first.
func (s *TabService) ListTabs(ctx context.Context, ownerAccountID uint64) ([]models.Tab, error) {
	tabs, err := s.store.Tabs().ListByOwner(ctx, ownerAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tabs: %w", err)
	}
	return tabs, nil
}

// GetTab returns a tab owned by the caller.
func (s *TabService) GetTab(ctx context.Context, id, callerID uint64) (*models.Tab, error) {
	return findOwnedTab(ctx, s.store, id, callerID)
}

// GetTabByName returns the caller's tab with the given name.
func (s *TabService) GetTabByName(ctx context.Context, name string, callerID uint64) (*models.Tab, error) {
	name, err := normalizeName("tab", name)
	if err != nil {
		return nil, err
	}

	return findTabByName(ctx, s.store, name, callerID)
}

// RenameTab changes the name of a tab owned by the caller.
func (s *TabService) RenameTab(ctx context.Context, id, callerID uint64, newName string) (*models.Tab, error) {
	name, err := normalizeName("tab", newName)
	if err != nil {
		return nil, err
	}

	var tab *models.Tab
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		found, err := findOwnedTab(ctx, tx, id, callerID)
		if err != nil {
			return err
		}

		if existing, err := tx.Tabs().FindByName(ctx, callerID, name); err == nil {
			if existing.ID != found.ID {
				return ErrTabNameTaken
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check tab name: %w", err)
		}

		found.Name = name
		if err := tx.Tabs().Update(ctx, found); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTabNameTaken
			}
			return fmt.Errorf("failed to update tab: %w", err)
		}

		tab = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tab, nil
}

// DeleteTab removes a tab owned by the caller with its sub-tabs and feedback.
func (s *TabService) DeleteTab(ctx context.Context, id, callerID uint64) error {
	return s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := findOwnedTab(ctx, tx, id, callerID); err != nil {
			return err
		}

		if err := tx.Tabs().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete tab: %w", err)
		}
		return nil
	})
}

// findOwnedTab answers ErrTabNotFound both for missing tabs and for tabs of
// another account.
func findOwnedTab(ctx context.Context, store repository.Store, id, callerID uint64) (*models.Tab, error) {
	tab, err := store.Tabs().FindOwned(ctx, id, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTabNotFound
		}
		return nil, fmt.Errorf("failed to find tab: %w", err)
	}
	return tab, nil
}

func findTabByName(ctx context.Context, store repository.Store, name string, callerID uint64) (*models.Tab, error) {
	tab, err := store.Tabs().FindByName(ctx, callerID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTabNotFound
		}
		return nil, fmt.Errorf("failed to find tab: %w", err)
	}
	return tab, nil
}
