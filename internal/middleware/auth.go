package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sonit/feedbacksite/internal/constants"
	apierrors "github.com/sonit/feedbacksite/internal/errors"
)

// TokenVerifier resolves a bearer token to an account ID
type TokenVerifier interface {
	Verify(token string) (uint64, error)
}

// RequireAuth checks if the request is authenticated, first via session
// cookie and then via an Authorization bearer token
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := sessionUserID(c); ok {
			c.Set(constants.ContextKeyUserID, userID)
			c.Next()
			return
		}

		if token, ok := bearerToken(c); ok && tokens != nil {
			if userID, err := tokens.Verify(token); err == nil {
				c.Set(constants.ContextKeyUserID, userID)
				c.Next()
				return
			}
		}

		apierrors.Unauthorized(c, "")
		c.Abort()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

func sessionUserID(c *gin.Context) (uint64, bool) {
	// Routes mounted without the sessions middleware have no session.
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return 0, false
	}

	session := sessions.Default(c)
	return toUint64(session.Get(constants.ContextKeyUserID))
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
