package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/sonit/feedbacksite/internal/errors"
	"github.com/sonit/feedbacksite/internal/models"
)

func newTestAdvisor(t *testing.T, reply string) *PriorityAdvisor {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  req.Model,
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    openai.ChatMessageRoleAssistant,
						Content: reply,
					},
					FinishReason: openai.FinishReasonStop,
				},
			},
		})
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewPriorityAdvisorWithConfig(cfg, "")
}

func TestPriorityAdvisor_SuggestPriority(t *testing.T) {
	advisor := newTestAdvisor(t, " high.\n")

	priority, err := advisor.SuggestPriority(context.Background(), "Checkout fails for every customer")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, priority)
}

func TestPriorityAdvisor_UnexpectedReply(t *testing.T) {
	advisor := newTestAdvisor(t, "It depends")

	_, err := advisor.SuggestPriority(context.Background(), "Something")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apierrors.ErrValidation)
	assert.NotErrorIs(t, err, apierrors.ErrUnavailable)
}

func TestPriorityAdvisor_EmptyText(t *testing.T) {
	advisor := newTestAdvisor(t, "LOW")

	_, err := advisor.SuggestPriority(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPriorityText)
}

func TestPriorityAdvisor_NotConfigured(t *testing.T) {
	var advisor *PriorityAdvisor

	_, err := advisor.SuggestPriority(context.Background(), "anything")
	require.ErrorIs(t, err, ErrAdvisorUnavailable)
	assert.ErrorIs(t, err, apierrors.ErrUnavailable)
}
