package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormStore is a GORM implementation of Store
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a new Store
func NewStore(db *gorm.DB) Store {
	return &GormStore{db: db}
}

func (s *GormStore) Accounts() AccountRepository { return NewAccountRepository(s.db) }

func (s *GormStore) Tabs() TabRepository { return NewTabRepository(s.db) }

func (s *GormStore) SubTabs() SubTabRepository { return NewSubTabRepository(s.db) }

func (s *GormStore) Feedback() FeedbackRepository { return NewFeedbackRepository(s.db) }

// WithinTransaction runs fn inside a database transaction
func (s *GormStore) WithinTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
