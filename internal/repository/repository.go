package repository

import (
	"context"

	"github.com/sonit/feedbacksite/internal/models"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// Create creates a new account
	Create(ctx context.Context, account *models.Account) error

	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uint64) (*models.Account, error)

	// FindByUsername finds an account by username
	FindByUsername(ctx context.Context, username string) (*models.Account, error)

	// FindByEmail finds an account by email
	FindByEmail(ctx context.Context, email string) (*models.Account, error)

	// Update updates an account
	Update(ctx context.Context, account *models.Account) error

	// Delete deletes an account together with its tabs, sub-tabs and feedback
	Delete(ctx context.Context, id uint64) error
}

// TabRepository defines the interface for tab data access
type TabRepository interface {
	// CreateWithDefaultSubTab creates a tab and its default sub-tab atomically
	CreateWithDefaultSubTab(ctx context.Context, tab *models.Tab, subTab *models.SubTab) error

	// FindOwned finds a tab by ID that belongs to the given account
	FindOwned(ctx context.Context, id, ownerAccountID uint64) (*models.Tab, error)

	// FindByName finds an account's tab by name
	FindByName(ctx context.Context, ownerAccountID uint64, name string) (*models.Tab, error)

	// ListByOwner lists all tabs of an account
	ListByOwner(ctx context.Context, ownerAccountID uint64) ([]models.Tab, error)

	// Update updates a tab
	Update(ctx context.Context, tab *models.Tab) error

	// Delete deletes a tab together with its sub-tabs and feedback
	Delete(ctx context.Context, id uint64) error
}

// SubTabRepository defines the interface for sub-tab data access
type SubTabRepository interface {
	// Create creates a new sub-tab
	Create(ctx context.Context, subTab *models.SubTab) error

	// FindOwned finds a sub-tab by ID whose tab belongs to the given account
	FindOwned(ctx context.Context, id, ownerAccountID uint64) (*models.SubTab, error)

	// FindByName finds a sub-tab of a tab by name
	FindByName(ctx context.Context, tabID uint64, name string) (*models.SubTab, error)

	// FindDefault finds the default sub-tab of a tab
	FindDefault(ctx context.Context, tabID uint64) (*models.SubTab, error)

	// ListByTab lists all sub-tabs of a tab
	ListByTab(ctx context.Context, tabID uint64) ([]models.SubTab, error)

	// Update updates a sub-tab
	Update(ctx context.Context, subTab *models.SubTab) error

	// Delete deletes a sub-tab together with its feedback
	Delete(ctx context.Context, id uint64) error
}

// FeedbackRepository defines the interface for feedback data access
type FeedbackRepository interface {
	// Create creates a new feedback item
	Create(ctx context.Context, feedback *models.Feedback) error

	// FindByID finds a feedback item by ID
	FindByID(ctx context.Context, id uint64) (*models.Feedback, error)

	// FindOwned finds a feedback item by ID whose ownership chain ends at the given account
	FindOwned(ctx context.Context, id, ownerAccountID uint64) (*models.Feedback, error)

	// List retrieves feedback with filtering and pagination
	List(ctx context.Context, filter FeedbackFilter) ([]models.Feedback, int64, error)

	// Update updates a feedback item
	Update(ctx context.Context, feedback *models.Feedback) error

	// Delete deletes a feedback item
	Delete(ctx context.Context, id uint64) error
}

// FeedbackFilter holds filtering options for listing feedback.
// Nil fields are not filtered on.
type FeedbackFilter struct {
	SubTabID       *uint64
	TabID          *uint64
	OwnerAccountID *uint64
	Category       *string
	Priority       *models.Priority
	Page           int
	PageSize       int
}

// Store groups the repositories that share one database handle.
type Store interface {
	Accounts() AccountRepository
	Tabs() TabRepository
	SubTabs() SubTabRepository
	Feedback() FeedbackRepository

	// WithinTransaction runs fn with a Store bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}
