package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sonit/feedbacksite/internal/auth"
	"github.com/sonit/feedbacksite/internal/constants"
	"github.com/sonit/feedbacksite/internal/dto"
	"github.com/sonit/feedbacksite/internal/repository"
	"github.com/sonit/feedbacksite/internal/services"
	"github.com/sonit/feedbacksite/internal/testutil"
)

const (
	testSecret   = "handler-test-secret-0123456789ab"
	testPassword = "Str0ng!pass"
)

type handlerTestEnv struct {
	db     *gorm.DB
	clock  *testutil.Clock
	router *gin.Engine
	tokens *auth.TokenIssuer
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := testutil.NewClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	db := testutil.OpenDB(t, clock)
	store := repository.NewStore(db)
	tokens := auth.NewTokenIssuer(testSecret, time.Hour)

	authService := services.NewAuthService(store)
	tabService := services.NewTabService(store)
	subTabService := services.NewSubTabService(store)
	feedbackService := services.NewFeedbackService(store)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte(testSecret))))
	RegisterRoutes(r.Group("/api"), Handlers{
		Auth:     NewAuthHandler(authService, tokens),
		Tab:      NewTabHandler(tabService, subTabService, feedbackService),
		SubTab:   NewSubTabHandler(subTabService, feedbackService),
		Feedback: NewFeedbackHandler(feedbackService, nil),
	}, tokens)

	return handlerTestEnv{
		db:     db,
		clock:  clock,
		router: r,
		tokens: tokens,
	}
}

// client carries the credentials of one account across requests.
type client struct {
	env     handlerTestEnv
	cookies []*http.Cookie
	token   string
	id      uint64
}

func (env handlerTestEnv) anonymous() *client {
	return &client{env: env}
}

// signUp registers and logs in an account, keeping its session cookie.
func (env handlerTestEnv) signUp(t *testing.T, username string) *client {
	t.Helper()

	c := env.anonymous()
	w := c.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	c.cookies = w.Result().Cookies()
	c.token = login.AccessToken
	c.id = login.Account.ID
	return c
}

// bearerOnly returns a copy that authenticates with the access token only.
func (c *client) bearerOnly() *client {
	return &client{env: c.env, token: c.token, id: c.id}
}

func (c *client) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	if c.cookies == nil && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	w := httptest.NewRecorder()
	c.env.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (c *client) createTab(t *testing.T, name string) dto.TabDTO {
	t.Helper()

	w := c.do(t, http.MethodPost, "/api/tabs", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.TabDTO](t, w)
}

func (c *client) submitFeedback(t *testing.T, body map[string]any) dto.FeedbackDTO {
	t.Helper()

	w := c.do(t, http.MethodPost, "/api/feedback/submit", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.FeedbackDTO](t, w)
}
