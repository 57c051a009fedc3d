package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sonit/feedbacksite/internal/constants"
	apierrors "github.com/sonit/feedbacksite/internal/errors"
)

// RequireResourceID parses the ":id" path parameter and stores it in the
// context. Ownership is checked by the services, which answer 404 rather
// than 403 so the existence of other accounts' data is not leaked.
func RequireResourceID(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid "+resource+" ID")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyResourceID, id)
		c.Next()
	}
}

// GetResourceID retrieves the ID stored by RequireResourceID
func GetResourceID(c *gin.Context) (uint64, bool) {
	id, exists := c.Get(constants.ContextKeyResourceID)
	if !exists {
		return 0, false
	}
	return toUint64(id)
}
