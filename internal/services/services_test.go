package services

import (
	"context"
	"testing"
	"time"

	"github.com/sonit/feedbacksite/internal/models"
	"github.com/sonit/feedbacksite/internal/repository"
	"github.com/sonit/feedbacksite/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "Str0ng!pass"

type serviceTestEnv struct {
	ctx      context.Context
	db       *gorm.DB
	clock    *testutil.Clock
	store    repository.Store
	auth     *AuthService
	tabs     *TabService
	subTabs  *SubTabService
	feedback *FeedbackService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	clock := testutil.NewClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	db := testutil.OpenDB(t, clock)
	store := repository.NewStore(db)

	return serviceTestEnv{
		ctx:      context.Background(),
		db:       db,
		clock:    clock,
		store:    store,
		auth:     NewAuthService(store),
		tabs:     NewTabService(store),
		subTabs:  NewSubTabService(store),
		feedback: NewFeedbackService(store),
	}
}

func (env serviceTestEnv) register(t *testing.T, username string) *models.Account {
	t.Helper()

	account, err := env.auth.Register(env.ctx, RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	return account
}

func (env serviceTestEnv) createTab(t *testing.T, ownerID uint64, name string) *models.Tab {
	t.Helper()

	tab, err := env.tabs.CreateTab(env.ctx, CreateTabInput{Name: name, OwnerAccountID: ownerID})
	require.NoError(t, err)
	return tab
}

func (env serviceTestEnv) createFeedback(t *testing.T, callerID, subTabID uint64, content string) *models.Feedback {
	t.Helper()

	feedback, err := env.feedback.CreateFeedback(env.ctx, CreateFeedbackInput{
		Content:  content,
		SubTabID: &subTabID,
		CallerID: callerID,
	})
	require.NoError(t, err)
	return feedback
}

func (env serviceTestEnv) count(t *testing.T, model any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, env.db.Model(model).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T {
	return &v
}
