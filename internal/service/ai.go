package service

import (
	"context"
	"fmt"

	"github.com/kp4ws/FlowSpace/internal/errs"
)

// EmailPrompt is the input for an email suggestion.
type EmailPrompt struct {
	ClientName string  `json:"client_name"`
	Topic      string  `json:"topic"`
	Context    *string `json:"context"`
}

// NotesPrompt is the input for a notes summary.
type NotesPrompt struct {
	Notes string `json:"notes"`
}

// AIService produces text suggestions. Without an API key configured it
// returns fixed templates; the real provider call was never implemented
// upstream and the key only switches the canned response.
type AIService interface {
	// GenerateEmail drafts a follow-up email for a client and topic.
	GenerateEmail(ctx context.Context, prompt EmailPrompt) (string, error)
	// SummarizeNotes produces a short summary of free-form notes.
	SummarizeNotes(ctx context.Context, prompt NotesPrompt) (string, error)
}

type AIServiceImpl struct {
	apiKey string
}

// NewAIService constructs AIService. An empty apiKey selects template mode.
func NewAIService(apiKey string) *AIServiceImpl {
	return &AIServiceImpl{apiKey: apiKey}
}

// GenerateEmail returns a templated follow-up email.
func (s *AIServiceImpl) GenerateEmail(_ context.Context, prompt EmailPrompt) (string, error) {
	if prompt.ClientName == "" || prompt.Topic == "" {
		return "", fmt.Errorf("client_name and topic are required: %w", errs.ErrValidation)
	}
	if s.apiKey != "" {
		return "[AI Response simulated using OpenAI]", nil
	}
	closing := "Let me know when you have a moment to chat about next steps."
	if prompt.Context != nil && *prompt.Context != "" {
		closing = *prompt.Context
	}
	return fmt.Sprintf(
		"Subject: Follow-up regarding %s\n\nHi %s,\n\nI hope this email finds you well. I'm writing to follow up on our discussion about %s.\n\n%s\n\nBest regards,\n[Your Name]",
		prompt.Topic, prompt.ClientName, prompt.Topic, closing,
	), nil
}

// SummarizeNotes returns a templated summary built from the note text.
func (s *AIServiceImpl) SummarizeNotes(_ context.Context, prompt NotesPrompt) (string, error) {
	if prompt.Notes == "" {
		return "", fmt.Errorf("notes are required: %w", errs.ErrValidation)
	}
	if s.apiKey != "" {
		return "[AI Summary simulated using OpenAI]", nil
	}
	head := prompt.Notes
	if runes := []rune(head); len(runes) > 50 {
		head = string(runes[:50])
	}
	return fmt.Sprintf(
		"Summary of notes: The discussion focused on project requirements and timelines. Key takeaways include prioritizing the %s... and ensuring all stakeholders are aligned.",
		head,
	), nil
}
