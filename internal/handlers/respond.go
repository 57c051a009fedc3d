package handlers

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/sonit/feedbacksite/internal/errors"
	"github.com/sonit/feedbacksite/internal/middleware"
)

const invalidBody = "Invalid request body"

// respondError writes the error body for err using the request logger
func respondError(c *gin.Context, err error) {
	apierrors.Respond(c, middleware.Logger(c), err)
}

// callerAndResource reads the authenticated account and the ":id" parameter.
// It writes the error response and returns false when either is missing.
func callerAndResource(c *gin.Context) (callerID, resourceID uint64, ok bool) {
	callerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, 0, false
	}

	resourceID, exists = middleware.GetResourceID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, 0, false
	}

	return callerID, resourceID, true
}
