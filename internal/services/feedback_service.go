package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sonit/feedbacksite/internal/constants"
	apierrors "github.com/sonit/feedbacksite/internal/errors"
	"github.com/sonit/feedbacksite/internal/models"
	"github.com/sonit/feedbacksite/internal/repository"
	"github.com/sonit/feedbacksite/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrFeedbackNotFound   = apierrors.Missing("feedback not found")
	ErrEmptyContent       = apierrors.Validation("content cannot be empty")
	ErrContentTooLong     = apierrors.Validation(fmt.Sprintf("content must be at most %d characters", constants.MaxContentLength))
	ErrInvalidPriority    = apierrors.Validation("priority must be one of LOW, MEDIUM, HIGH")
	ErrAmbiguousOwner     = apierrors.Validation("exactly one of sub_tab_id or tab_id is required")
	ErrEmptyCategory      = apierrors.Validation("category cannot be empty")
	ErrTitleTooLong       = apierrors.Validation(fmt.Sprintf("title must be at most %d characters", constants.MaxTitleLength))
	ErrCategoryTooLong    = apierrors.Validation(fmt.Sprintf("category must be at most %d characters", constants.MaxCategoryLength))
	ErrEmptyFeedbackPatch = apierrors.Validation("no fields to update")
)

// FeedbackService provides business logic for feedback operations.
type FeedbackService struct {
	store repository.Store
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(store repository.Store) *FeedbackService {
	return &FeedbackService{
		store: store,
	}
}

// CreateFeedbackInput represents parameters to create feedback. The owner is
// given by exactly one of SubTabID or TabID; a tab resolves to its default sub-tab.
type CreateFeedbackInput struct {
	Title    *string
	Content  string
	Priority *string
	Category *string
	SubTabID *uint64
	TabID    *uint64
	CallerID uint64
}

// CreateFeedback creates feedback in one of the caller's sub-tabs.
func (s *FeedbackService) CreateFeedback(ctx context.Context, input CreateFeedbackInput) (*models.Feedback, error) {
	if (input.SubTabID == nil) == (input.TabID == nil) {
		return nil, ErrAmbiguousOwner
	}

	feedback := &models.Feedback{}
	if err := applyFeedbackFields(feedback, feedbackFields{
		Title:    input.Title,
		Content:  &input.Content,
		Priority: input.Priority,
		Category: input.Category,
	}); err != nil {
		return nil, err
	}

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		var subTabID uint64
		if input.SubTabID != nil {
			subTab, err := findOwnedSubTab(ctx, tx, *input.SubTabID, input.CallerID)
			if err != nil {
				return err
			}
			subTabID = subTab.ID
		} else {
			tab, err := findOwnedTab(ctx, tx, *input.TabID, input.CallerID)
			if err != nil {
				return err
			}
			subTab, err := tx.SubTabs().FindDefault(ctx, tab.ID)
			if err != nil {
				return fmt.Errorf("failed to find default sub-tab: %w", err)
			}
			subTabID = subTab.ID
		}

		feedback.SubTabID = subTabID
		if err := tx.Feedback().Create(ctx, feedback); err != nil {
			return fmt.Errorf("failed to create feedback: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return feedback, nil
}

type queryKind int

const (
	bySubTab queryKind = iota
	byTab
	byAccount
	byCategory
	byPriority
)

// FeedbackQuery selects which feedback ListFeedback returns. Build one with
// BySubTab, ByTab, ByAccount, ByCategory or ByPriority.
type FeedbackQuery struct {
	kind     queryKind
	id       uint64
	callerID uint64
	value    string
}

// BySubTab selects the feedback of one of the caller's sub-tabs.
func BySubTab(subTabID, callerID uint64) FeedbackQuery {
	return FeedbackQuery{kind: bySubTab, id: subTabID, callerID: callerID}
}

// ByTab selects the feedback in every sub-tab of one of the caller's tabs.
func ByTab(tabID, callerID uint64) FeedbackQuery {
	return FeedbackQuery{kind: byTab, id: tabID, callerID: callerID}
}

// ByAccount selects all of the caller's feedback.
func ByAccount(callerID uint64) FeedbackQuery {
	return FeedbackQuery{kind: byAccount, callerID: callerID}
}

// ByCategory selects feedback in a category across all accounts.
func ByCategory(category string) FeedbackQuery {
	return FeedbackQuery{kind: byCategory, value: category}
}

// ByPriority selects feedback with a priority across all accounts.
func ByPriority(priority string) FeedbackQuery {
	return FeedbackQuery{kind: byPriority, value: priority}
}

// FeedbackList is one page of feedback.
type FeedbackList struct {
	Items      []models.Feedback
	Pagination utils.PaginationResponse
}

// ListFeedback returns a page of feedback, newest first.
func (s *FeedbackService) ListFeedback(ctx context.Context, query FeedbackQuery, params utils.PaginationParams) (*FeedbackList, error) {
	filter := repository.FeedbackFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	switch query.kind {
	case bySubTab:
		if _, err := findOwnedSubTab(ctx, s.store, query.id, query.callerID); err != nil {
			return nil, err
		}
		filter.SubTabID = &query.id
	case byTab:
		if _, err := findOwnedTab(ctx, s.store, query.id, query.callerID); err != nil {
			return nil, err
		}
		filter.TabID = &query.id
	case byAccount:
		filter.OwnerAccountID = &query.callerID
	case byCategory:
		category := strings.TrimSpace(query.value)
		if category == "" {
			return nil, ErrEmptyCategory
		}
		filter.Category = &category
	case byPriority:
		priority := models.Priority(query.value)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
		filter.Priority = &priority
	}

	items, total, err := s.store.Feedback().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	return &FeedbackList{
		Items: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}, nil
}

// GetFeedback returns feedback by ID. Feedback is publicly readable.
func (s *FeedbackService) GetFeedback(ctx context.Context, id uint64) (*models.Feedback, error) {
	feedback, err := s.store.Feedback().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	return feedback, nil
}

// UpdateFeedbackInput holds the fields to change. Nil fields keep their value.
type UpdateFeedbackInput struct {
	Title    *string
	Content  *string
	Priority *string
	Category *string
}

// UpdateFeedback applies a partial update to feedback owned by the caller.
func (s *FeedbackService) UpdateFeedback(ctx context.Context, id, callerID uint64, input UpdateFeedbackInput) (*models.Feedback, error) {
	if input.Title == nil && input.Content == nil && input.Priority == nil && input.Category == nil {
		return nil, ErrEmptyFeedbackPatch
	}

	// Validate against a scratch copy so bad input is rejected before the lookup.
	if err := applyFeedbackFields(&models.Feedback{Content: "-"}, feedbackFields(input)); err != nil {
		return nil, err
	}

	var feedback *models.Feedback
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		found, err := findOwnedFeedback(ctx, tx, id, callerID)
		if err != nil {
			return err
		}

		if err := applyFeedbackFields(found, feedbackFields(input)); err != nil {
			return err
		}

		if err := tx.Feedback().Update(ctx, found); err != nil {
			return fmt.Errorf("failed to update feedback: %w", err)
		}

		feedback = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return feedback, nil
}

// DeleteFeedback removes feedback owned by the caller.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, id, callerID uint64) error {
	return s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := findOwnedFeedback(ctx, tx, id, callerID); err != nil {
			return err
		}

		if err := tx.Feedback().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete feedback: %w", err)
		}
		return nil
	})
}

// findOwnedFeedback answers ErrFeedbackNotFound for feedback of another account.
func findOwnedFeedback(ctx context.Context, store repository.Store, id, callerID uint64) (*models.Feedback, error) {
	feedback, err := store.Feedback().FindOwned(ctx, id, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	return feedback, nil
}

type feedbackFields struct {
	Title    *string
	Content  *string
	Priority *string
	Category *string
}

// applyFeedbackFields validates the supplied fields and copies them onto
// feedback. An empty title or category clears it.
func applyFeedbackFields(feedback *models.Feedback, fields feedbackFields) error {
	if fields.Content != nil {
		if strings.TrimSpace(*fields.Content) == "" {
			return ErrEmptyContent
		}
		if utf8.RuneCountInString(*fields.Content) > constants.MaxContentLength {
			return ErrContentTooLong
		}
		feedback.Content = *fields.Content
	}

	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		if utf8.RuneCountInString(title) > constants.MaxTitleLength {
			return ErrTitleTooLong
		}
		feedback.Title = optional(title)
	}

	if fields.Category != nil {
		category := strings.TrimSpace(*fields.Category)
		if utf8.RuneCountInString(category) > constants.MaxCategoryLength {
			return ErrCategoryTooLong
		}
		feedback.Category = optional(category)
	}

	if fields.Priority != nil {
		priority := models.Priority(*fields.Priority)
		if !priority.Valid() {
			return ErrInvalidPriority
		}
		feedback.Priority = &priority
	}

	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
