package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sonit/feedbacksite/internal/dto"
	apierrors "github.com/sonit/feedbacksite/internal/errors"
	"github.com/sonit/feedbacksite/internal/middleware"
	"github.com/sonit/feedbacksite/internal/services"
	"github.com/sonit/feedbacksite/internal/utils"
)

// FeedbackHandler serves feedback endpoints.
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
	advisor         *services.PriorityAdvisor
}

// NewFeedbackHandler creates a new FeedbackHandler. advisor may be nil.
func NewFeedbackHandler(feedbackService *services.FeedbackService, advisor *services.PriorityAdvisor) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		advisor:         advisor,
	}
}

// SubmitFeedback creates feedback in a sub-tab, or in a tab's default sub-tab
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SubmitFeedbackRequest struct {
		Title    *string `json:"title"`
		Content  string  `json:"content"`
		Priority *string `json:"priority"`
		Category *string `json:"category"`
		SubTabID *uint64 `json:"sub_tab_id"`
		TabID    *uint64 `json:"tab_id"`
	}

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, invalidBody)
		return
	}

	feedback, err := h.feedbackService.CreateFeedback(c.Request.Context(), services.CreateFeedbackInput{
		Title:    req.Title,
		Content:  req.Content,
		Priority: req.Priority,
		Category: req.Category,
		SubTabID: req.SubTabID,
		TabID:    req.TabID,
		CallerID: userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeedbackDTO(*feedback))
}

// ListMyFeedback returns the current account's feedback
func (h *FeedbackHandler) ListMyFeedback(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	h.list(c, services.ByAccount(userID))
}

// ListByCategory returns feedback in a category
func (h *FeedbackHandler) ListByCategory(c *gin.Context) {
	h.list(c, services.ByCategory(c.Param("category")))
}

// ListByPriority returns feedback with a priority
func (h *FeedbackHandler) ListByPriority(c *gin.Context) {
	h.list(c, services.ByPriority(c.Param("priority")))
}

func (h *FeedbackHandler) list(c *gin.Context, query services.FeedbackQuery) {
	list, err := h.feedbackService.ListFeedback(c.Request.Context(), query, utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedbackListResponse(list.Items, list.Pagination))
}

// GetFeedback returns feedback by ID; no authentication is required
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid feedback ID")
		return
	}

	feedback, err := h.feedbackService.GetFeedback(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedbackDTO(*feedback))
}

// UpdateFeedback applies a partial update; omitted fields keep their value
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	userID, feedbackID, ok := callerAndResource(c)
	if !ok {
		return
	}

	type UpdateFeedbackRequest struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Priority *string `json:"priority"`
		Category *string `json:"category"`
	}

	var req UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, invalidBody)
		return
	}

	feedback, err := h.feedbackService.UpdateFeedback(c.Request.Context(), feedbackID, userID, services.UpdateFeedbackInput{
		Title:    req.Title,
		Content:  req.Content,
		Priority: req.Priority,
		Category: req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedbackDTO(*feedback))
}

// DeleteFeedback deletes feedback owned by the current account
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	userID, feedbackID, ok := callerAndResource(c)
	if !ok {
		return
	}

	if err := h.feedbackService.DeleteFeedback(c.Request.Context(), feedbackID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SuggestPriority asks the priority advisor to classify free text
func (h *FeedbackHandler) SuggestPriority(c *gin.Context) {
	type SuggestPriorityRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, invalidBody)
		return
	}

	priority, err := h.advisor.SuggestPriority(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PrioritySuggestionResponse{Priority: priority})
}
