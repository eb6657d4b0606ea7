package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kp4ws/FlowSpace/internal/errs"
)

func TestAIService_GenerateEmail_Template(t *testing.T) {
	t.Parallel()
	s := NewAIService("")

	out, err := s.GenerateEmail(context.Background(), EmailPrompt{ClientName: "Acme", Topic: "the redesign"})
	if err != nil {
		t.Fatalf("GenerateEmail: %v", err)
	}
	if !strings.HasPrefix(out, "Subject: Follow-up regarding the redesign") {
		t.Fatalf("unexpected subject line: %q", out)
	}
	if !strings.Contains(out, "Hi Acme,") {
		t.Fatalf("greeting missing: %q", out)
	}
	if !strings.Contains(out, "Let me know when you have a moment") {
		t.Fatalf("default closing missing: %q", out)
	}
}

func TestAIService_GenerateEmail_ContextOverridesClosing(t *testing.T) {
	t.Parallel()
	s := NewAIService("")

	extra := "The invoice is attached."
	out, err := s.GenerateEmail(context.Background(), EmailPrompt{ClientName: "Acme", Topic: "billing", Context: &extra})
	if err != nil {
		t.Fatalf("GenerateEmail: %v", err)
	}
	if !strings.Contains(out, extra) || strings.Contains(out, "Let me know when you have a moment") {
		t.Fatalf("context closing not applied: %q", out)
	}
}

func TestAIService_GenerateEmail_Validation(t *testing.T) {
	t.Parallel()
	s := NewAIService("")

	if _, err := s.GenerateEmail(context.Background(), EmailPrompt{Topic: "x"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on missing client_name, got %v", err)
	}
	if _, err := s.GenerateEmail(context.Background(), EmailPrompt{ClientName: "x"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on missing topic, got %v", err)
	}
}

func TestAIService_SummarizeNotes_TruncatesHead(t *testing.T) {
	t.Parallel()
	s := NewAIService("")

	long := strings.Repeat("a", 80)
	out, err := s.SummarizeNotes(context.Background(), NotesPrompt{Notes: long})
	if err != nil {
		t.Fatalf("SummarizeNotes: %v", err)
	}
	if !strings.Contains(out, strings.Repeat("a", 50)+"...") {
		t.Fatalf("head not truncated to 50: %q", out)
	}
	if strings.Contains(out, strings.Repeat("a", 51)) {
		t.Fatalf("head longer than 50: %q", out)
	}
}

func TestAIService_SummarizeNotes_TruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()
	s := NewAIService("")

	long := strings.Repeat("é", 80)
	out, err := s.SummarizeNotes(context.Background(), NotesPrompt{Notes: long})
	if err != nil {
		t.Fatalf("SummarizeNotes: %v", err)
	}
	if !utf8.ValidString(out) {
		t.Fatalf("summary contains invalid UTF-8: %q", out)
	}
	if !strings.Contains(out, strings.Repeat("é", 50)+"...") {
		t.Fatalf("head not truncated to 50 runes: %q", out)
	}
}

func TestAIService_SummarizeNotes_RequiresNotes(t *testing.T) {
	t.Parallel()
	s := NewAIService("")

	if _, err := s.SummarizeNotes(context.Background(), NotesPrompt{}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestAIService_KeyedModeReturnsSimulatedResponses(t *testing.T) {
	t.Parallel()
	s := NewAIService("sk-test")

	out, err := s.GenerateEmail(context.Background(), EmailPrompt{ClientName: "Acme", Topic: "x"})
	if err != nil || out != "[AI Response simulated using OpenAI]" {
		t.Fatalf("keyed email: out=%q err=%v", out, err)
	}
	out, err = s.SummarizeNotes(context.Background(), NotesPrompt{Notes: "x"})
	if err != nil || out != "[AI Summary simulated using OpenAI]" {
		t.Fatalf("keyed summary: out=%q err=%v", out, err)
	}
}
