package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sonit/feedbacksite/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestAccountRepository_Create_TranslatesDuplicateKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `accounts`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'username'"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Account{Username: "alice", Email: "alice@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTabRepository_CreateWithDefaultSubTab_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTabRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `tabs`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `sub_tabs`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	tab := &models.Tab{Name: "Product", OwnerAccountID: 1}
	subTab := &models.SubTab{Name: "General"}
	err := repo.CreateWithDefaultSubTab(context.Background(), tab, subTab)

	require.ErrorIs(t, err, ErrCreateDefaultSubTab)
	assert.NotErrorIs(t, err, ErrCreateTab)
	assert.Equal(t, uint64(1), subTab.TabID)
	assert.True(t, subTab.IsDefault)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTabRepository_CreateWithDefaultSubTab_DuplicateName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTabRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `tabs`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	err := repo.CreateWithDefaultSubTab(context.Background(), &models.Tab{Name: "Product", OwnerAccountID: 1}, &models.SubTab{Name: "General"})

	assert.ErrorIs(t, err, ErrCreateTab)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepository_FindOwned_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	mock.ExpectQuery("SELECT .+ FROM `feedback` JOIN sub_tabs ON sub_tabs.id = feedback.sub_tab_id JOIN tabs ON tabs.id = sub_tabs.tab_id WHERE feedback.id = \\? AND tabs.owner_account_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "sub_tab_id"}))

	_, err := repo.FindOwned(context.Background(), 5, 7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepository_List_PropagatesDriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	category := "ux"
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `feedback` WHERE feedback.category = \\?").
		WithArgs(category).
		WillReturnError(errors.New("connection reset"))

	_, _, err := repo.List(context.Background(), FeedbackFilter{Category: &category, Page: 1, PageSize: 20})
	assert.EqualError(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubTabRepository_Delete_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubTabRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `feedback` WHERE sub_tab_id = \\?").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM `sub_tabs` WHERE `sub_tabs`.`id` = \\?").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 4)
	assert.EqualError(t, err, "lock wait timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_WithinTransaction(t *testing.T) {
	t.Run("commits when fn succeeds", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `feedback`").WillReturnResult(sqlmock.NewResult(9, 1))
		mock.ExpectCommit()

		err := store.WithinTransaction(context.Background(), func(tx Store) error {
			return tx.Feedback().Create(context.Background(), &models.Feedback{Content: "hello", SubTabID: 2})
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := NewStore(db)
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := store.WithinTransaction(context.Background(), func(tx Store) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
