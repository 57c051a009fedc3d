package services

import (
	"context"
	"errors"
	"fmt"

	apierrors "github.com/sonit/feedbacksite/internal/errors"
	"github.com/sonit/feedbacksite/internal/models"
	"github.com/sonit/feedbacksite/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSubTabNotFound      = apierrors.Missing("sub-tab not found")
	ErrSubTabNameTaken     = apierrors.Duplicate("a sub-tab with this name already exists in the tab")
	ErrAmbiguousParentTab  = apierrors.Validation("exactly one of tab_id or tab_name is required")
	ErrDefaultSubTabDelete = apierrors.Validation("the default sub-tab cannot be deleted; delete the tab instead")
)

// SubTabService provides business logic for sub-tab operations.
type SubTabService struct {
	store repository.Store
}

// NewSubTabService creates a new SubTabService.
func NewSubTabService(store repository.Store) *SubTabService {
	return &SubTabService{
		store: store,
	}
}

// CreateSubTabInput represents parameters to create a new sub-tab.
// The parent tab is given by exactly one of TabID or TabName.
type CreateSubTabInput struct {
	Name           string
	TabID          *uint64
	TabName        *string
	OwnerAccountID uint64
}

// CreateSubTab creates a sub-tab under one of the caller's tabs.
func (s *SubTabService) CreateSubTab(ctx context.Context, input CreateSubTabInput) (*models.SubTab, error) {
	if (input.TabID == nil) == (input.TabName == nil) {
		return nil, ErrAmbiguousParentTab
	}

	name, err := normalizeName("sub-tab", input.Name)
	if err != nil {
		return nil, err
	}

	var tabName string
	if input.TabName != nil {
		if tabName, err = normalizeName("tab", *input.TabName); err != nil {
			return nil, err
		}
	}

	subTab := &models.SubTab{Name: name}

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		var (
			tab *models.Tab
			err error
		)
		if input.TabID != nil {
			tab, err = findOwnedTab(ctx, tx, *input.TabID, input.OwnerAccountID)
		} else {
			tab, err = findTabByName(ctx, tx, tabName, input.OwnerAccountID)
		}
		if err != nil {
			return err
		}

		if _, err := tx.SubTabs().FindByName(ctx, tab.ID, name); err == nil {
			return ErrSubTabNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check sub-tab name: %w", err)
		}

		subTab.TabID = tab.ID
		if err := tx.SubTabs().Create(ctx, subTab); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSubTabNameTaken
			}
			return fmt.Errorf("failed to create sub-tab: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return subTab, nil
}

// ListSubTabs returns the sub-tabs of one of the caller's tabs, default first.
func (s *SubTabService) ListSubTabs(ctx context.Context, tabID, callerID uint64) ([]models.SubTab, error) {
	if _, err := findOwnedTab(ctx, s.store, tabID, callerID); err != nil {
		return nil, err
	}

	subTabs, err := s.store.SubTabs().ListByTab(ctx, tabID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-tabs: %w", err)
	}
	return subTabs, nil
}

// GetSubTab returns a sub-tab whose tab belongs to the caller.
func (s *SubTabService) GetSubTab(ctx context.Context, id, callerID uint64) (*models.SubTab, error) {
	return findOwnedSubTab(ctx, s.store, id, callerID)
}

// GetSubTabByName returns the sub-tab with the given name in one of the caller's tabs.
func (s *SubTabService) GetSubTabByName(ctx context.Context, tabID uint64, name string, callerID uint64) (*models.SubTab, error) {
	name, err := normalizeName("sub-tab", name)
	if err != nil {
		return nil, err
	}

	if _, err := findOwnedTab(ctx, s.store, tabID, callerID); err != nil {
		return nil, err
	}

	subTab, err := s.store.SubTabs().FindByName(ctx, tabID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubTabNotFound
		}
		return nil, fmt.Errorf("failed to find sub-tab: %w", err)
	}
	return subTab, nil
}

// RenameSubTab changes the name of a sub-tab. The default sub-tab may be renamed.
func (s *SubTabService) RenameSubTab(ctx context.Context, id, callerID uint64, newName string) (*models.SubTab, error) {
	name, err := normalizeName("sub-tab", newName)
	if err != nil {
		return nil, err
	}

	var subTab *models.SubTab
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		found, err := findOwnedSubTab(ctx, tx, id, callerID)
		if err != nil {
			return err
		}

		if existing, err := tx.SubTabs().FindByName(ctx, found.TabID, name); err == nil {
			if existing.ID != found.ID {
				return ErrSubTabNameTaken
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check sub-tab name: %w", err)
		}

		found.Name = name
		if err := tx.SubTabs().Update(ctx, found); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSubTabNameTaken
			}
			return fmt.Errorf("failed to update sub-tab: %w", err)
		}

		subTab = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return subTab, nil
}

// DeleteSubTab removes a sub-tab and its feedback.
func (s *SubTabService) DeleteSubTab(ctx context.Context, id, callerID uint64) error {
	return s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		subTab, err := findOwnedSubTab(ctx, tx, id, callerID)
		if err != nil {
			return err
		}
		if subTab.IsDefault {
			return ErrDefaultSubTabDelete
		}

		if err := tx.SubTabs().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete sub-tab: %w", err)
		}
		return nil
	})
}

func findOwnedSubTab(ctx context.Context, store repository.Store, id, callerID uint64) (*models.SubTab, error) {
	subTab, err := store.SubTabs().FindOwned(ctx, id, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubTabNotFound
		}
		return nil, fmt.Errorf("failed to find sub-tab: %w", err)
	}
	return subTab, nil
}
