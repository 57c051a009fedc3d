package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sonit/feedbacksite/internal/dto"
	apierrors "github.com/sonit/feedbacksite/internal/errors"
	"github.com/sonit/feedbacksite/internal/middleware"
	"github.com/sonit/feedbacksite/internal/services"
	"github.com/sonit/feedbacksite/internal/utils"
)

// SubTabHandler serves sub-tab endpoints.
type SubTabHandler struct {
	subTabService   *services.SubTabService
	feedbackService *services.FeedbackService
}

// NewSubTabHandler creates a new SubTabHandler.
func NewSubTabHandler(subTabService *services.SubTabService, feedbackService *services.FeedbackService) *SubTabHandler {
	return &SubTabHandler{
		subTabService:   subTabService,
		feedbackService: feedbackService,
	}
}

// CreateSubTab creates a sub-tab under a tab given by tab_id or tab_name
func (h *SubTabHandler) CreateSubTab(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateSubTabRequest struct {
		Name    string  `json:"name" binding:"required"`
		TabID   *uint64 `json:"tab_id"`
		TabName *string `json:"tab_name"`
	}

	var req CreateSubTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, invalidBody)
		return
	}

	subTab, err := h.subTabService.CreateSubTab(c.Request.Context(), services.CreateSubTabInput{
		Name:           req.Name,
		TabID:          req.TabID,
		TabName:        req.TabName,
		OwnerAccountID: userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubTabDTO(*subTab))
}

// GetSubTab returns a sub-tab by ID
func (h *SubTabHandler) GetSubTab(c *gin.Context) {
	userID, subTabID, ok := callerAndResource(c)
	if !ok {
		return
	}

	subTab, err := h.subTabService.GetSubTab(c.Request.Context(), subTabID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubTabDTO(*subTab))
}

// RenameSubTab changes a sub-tab's name
func (h *SubTabHandler) RenameSubTab(c *gin.Context) {
	userID, subTabID, ok := callerAndResource(c)
	if !ok {
		return
	}

	var req tabNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, invalidBody)
		return
	}

	subTab, err := h.subTabService.RenameSubTab(c.Request.Context(), subTabID, userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubTabDTO(*subTab))
}

// DeleteSubTab deletes a sub-tab with its feedback
func (h *SubTabHandler) DeleteSubTab(c *gin.Context) {
	userID, subTabID, ok := callerAndResource(c)
	if !ok {
		return
	}

	if err := h.subTabService.DeleteSubTab(c.Request.Context(), subTabID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListFeedback returns the feedback in a sub-tab
func (h *SubTabHandler) ListFeedback(c *gin.Context) {
	userID, subTabID, ok := callerAndResource(c)
	if !ok {
		return
	}

	list, err := h.feedbackService.ListFeedback(c.Request.Context(), services.BySubTab(subTabID, userID), utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedbackListResponse(list.Items, list.Pagination))
}
