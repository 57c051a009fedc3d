package dto

import (
	"time"

	"github.com/sonit/feedbacksite/internal/models"
	"github.com/sonit/feedbacksite/internal/utils"
)

// FeedbackDTO represents feedback in API responses
type FeedbackDTO struct {
	ID        uint64           `json:"id"`
	Title     *string          `json:"title"`
	Content   string           `json:"content"`
	Priority  *models.Priority `json:"priority"`
	Category  *string          `json:"category"`
	SubTabID  uint64           `json:"sub_tab_id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// FeedbackListResponse represents a paginated list of feedback
type FeedbackListResponse struct {
	Feedback   []FeedbackDTO            `json:"feedback"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// PrioritySuggestionResponse carries a suggested priority
type PrioritySuggestionResponse struct {
	Priority models.Priority `json:"priority"`
}

// ToFeedbackDTO converts a Feedback model to FeedbackDTO
func ToFeedbackDTO(feedback models.Feedback) FeedbackDTO {
	return FeedbackDTO{
		ID:        feedback.ID,
		Title:     feedback.Title,
		Content:   feedback.Content,
		Priority:  feedback.Priority,
		Category:  feedback.Category,
		SubTabID:  feedback.SubTabID,
		CreatedAt: feedback.CreatedAt,
		UpdatedAt: feedback.UpdatedAt,
	}
}

// ToFeedbackListResponse converts a page of feedback to a list response
func ToFeedbackListResponse(items []models.Feedback, pagination utils.PaginationResponse) FeedbackListResponse {
	feedback := make([]FeedbackDTO, len(items))
	for i, item := range items {
		feedback[i] = ToFeedbackDTO(item)
	}
	return FeedbackListResponse{
		Feedback:   feedback,
		Pagination: pagination,
	}
}
