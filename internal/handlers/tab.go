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

// TabHandler serves tab endpoints.
type TabHandler struct {
	tabService      *services.TabService
	subTabService   *services.SubTabService
	feedbackService *services.FeedbackService
}

// NewTabHandler creates a new TabHandler.
func NewTabHandler(tabService *services.TabService, subTabService *services.SubTabService, feedbackService *services.FeedbackService) *TabHandler {
	return &TabHandler{
		tabService:      tabService,
		subTabService:   subTabService,
		feedbackService: feedbackService,
	}
}

type tabNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTab creates a tab for the current account
func (h *TabHandler) CreateTab(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req tabNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, invalidBody)
		return
	}

	tab, err := h.tabService.CreateTab(c.Request.Context(), services.CreateTabInput{
		Name:           req.Name,
		OwnerAccountID: userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTabDTO(*tab))
}

// ListTabs returns the current account's tabs.
// With ?name= it returns the single tab of that name instead.
func (h *TabHandler) ListTabs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if name, ok := c.GetQuery("name"); ok {
		tab, err := h.tabService.GetTabByName(c.Request.Context(), name, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToTabDTO(*tab))
		return
	}

	tabs, err := h.tabService.ListTabs(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTabListResponse(tabs))
}

// GetTab returns a tab by ID
func (h *TabHandler) GetTab(c *gin.Context) {
	userID, tabID, ok := callerAndResource(c)
	if !ok {
		return
	}

	tab, err := h.tabService.GetTab(c.Request.Context(), tabID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTabDTO(*tab))
}

// RenameTab changes a tab's name
func (h *TabHandler) RenameTab(c *gin.Context) {
	userID, tabID, ok := callerAndResource(c)
	if !ok {
		return
	}

	var req tabNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, invalidBody)
		return
	}

	tab, err := h.tabService.RenameTab(c.Request.Context(), tabID, userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTabDTO(*tab))
}

// DeleteTab deletes a tab with its sub-tabs and feedback
func (h *TabHandler) DeleteTab(c *gin.Context) {
	userID, tabID, ok := callerAndResource(c)
	if !ok {
		return
	}

	if err := h.tabService.DeleteTab(c.Request.Context(), tabID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSubTabs returns the sub-tabs of a tab.
// With ?name= it returns the single sub-tab of that name instead.
func (h *TabHandler) ListSubTabs(c *gin.Context) {
	userID, tabID, ok := callerAndResource(c)
	if !ok {
		return
	}

	if name, ok := c.GetQuery("name"); ok {
		subTab, err := h.subTabService.GetSubTabByName(c.Request.Context(), tabID, name, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToSubTabDTO(*subTab))
		return
	}

	subTabs, err := h.subTabService.ListSubTabs(c.Request.Context(), tabID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubTabListResponse(subTabs))
}

// ListFeedback returns the feedback in every sub-tab of a tab
func (h *TabHandler) ListFeedback(c *gin.Context) {
	userID, tabID, ok := callerAndResource(c)
	if !ok {
		return
	}

	list, err := h.feedbackService.ListFeedback(c.Request.Context(), services.ByTab(tabID, userID), utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedbackListResponse(list.Items, list.Pagination))
}
