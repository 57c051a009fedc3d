package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"github.com/sonit/feedbacksite/internal/constants"
	apierrors "github.com/sonit/feedbacksite/internal/errors"
	"github.com/sonit/feedbacksite/internal/models"
)

var (
	ErrAdvisorUnavailable = apierrors.Unavailable("priority suggestions are not configured")
	ErrEmptyPriorityText  = apierrors.Validation("text cannot be empty")
	ErrPriorityTextLong   = apierrors.Validation(fmt.Sprintf("text must be at most %d characters", constants.MaxPriorityTextLength))
)

const priorityPrompt = `You triage user feedback. Classify the feedback below by urgency.

Feedback:
%s

Answer with exactly one word: LOW, MEDIUM or HIGH.
- HIGH: broken functionality, data loss, security or payment problems
- MEDIUM: degraded experience or a clear improvement request
- LOW: cosmetic issues, questions and general remarks`

// PriorityAdvisor suggests a feedback priority using an OpenAI chat model.
// A nil advisor reports ErrAdvisorUnavailable.
type PriorityAdvisor struct {
	client *openai.Client
	model  string
}

// NewPriorityAdvisor creates an advisor for the public OpenAI API.
func NewPriorityAdvisor(apiKey, model string) *PriorityAdvisor {
	return NewPriorityAdvisorWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewPriorityAdvisorWithConfig creates an advisor with a custom client configuration.
func NewPriorityAdvisorWithConfig(cfg openai.ClientConfig, model string) *PriorityAdvisor {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &PriorityAdvisor{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// SuggestPriority classifies text as LOW, MEDIUM or HIGH.
func (a *PriorityAdvisor) SuggestPriority(ctx context.Context, text string) (models.Priority, error) {
	if a == nil || a.client == nil {
		return "", ErrAdvisorUnavailable
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyPriorityText
	}
	if utf8.RuneCountInString(text) > constants.MaxPriorityTextLength {
		return "", ErrPriorityTextLong
	}

	resp, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf(priorityPrompt, text),
				},
			},
			Temperature: 0,
			MaxTokens:   5,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	priority := models.Priority(strings.ToUpper(strings.Trim(strings.TrimSpace(content), ".")))
	if !priority.Valid() {
		return "", fmt.Errorf("unexpected priority from model: %q", content)
	}

	return priority, nil
}
