// Package affirm composes completed tasks into a prompt, drives the model
// session manager, and maps every failure to user-facing fallback text. The
// checklist's task tracking must never be blocked by AI subsystem failure,
// so callers always get a usable result and a status code, never a raw
// model error.
package affirm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/calahan-dev/dailyctl/internal/genai"
	"github.com/calahan-dev/dailyctl/internal/task"
)

// Status codes carried on every Result.
const (
	StatusSuccess       = "success"
	StatusUnavailable   = "unavailable"
	StatusQuotaExceeded = "quota-exceeded"
	StatusActivation    = "requires-activation"
	StatusError         = "error"
)

// Result is the outcome of an affirmation request.
type Result struct {
	Text            string `json:"text"`
	IsUsingFallback bool   `json:"isUsingFallback"`
	Status          string `json:"status"`
}

var fallbackAffirmations = []string{
	"Great work! You're making progress! 🌟",
	"Keep it up! Every task completed is a step forward. 💪",
	"You're doing amazing! Stay focused! ✨",
	"Progress over perfection! You're crushing it! 🎯",
	"Every completion brings you closer to your goals! 🚀",
}

// Service generates affirmations from completed tasks.
type Service struct {
	manager *genai.Manager
}

// NewService creates an affirmation service over the given session manager.
func NewService(manager *genai.Manager) *Service {
	return &Service{manager: manager}
}

// BuildPromptContext renders the completed-task list for the prompt.
func BuildPromptContext(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "No tasks completed yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I've completed %d task(s) today:\n", len(tasks))
	for i, t := range tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s", t.Text)
	}
	return b.String()
}

// GenerateAffirmation produces an affirmation for the given completed tasks.
// If the model is unavailable it returns a fallback immediately without
// attempting session creation; any failure along the generation path is
// classified into a status code with matching fallback text.
func (s *Service) GenerateAffirmation(ctx context.Context, tasks []task.Task) Result {
	if s.manager.CheckAvailability(ctx) == genai.AvailabilityNo {
		return Result{
			Text:            RandomFallback(),
			IsUsingFallback: true,
			Status:          StatusUnavailable,
		}
	}

	// Creating the session triggers the model download if needed.
	session, err := s.manager.InitSession(ctx)
	if err != nil {
		return classify(err)
	}

	promptContext := BuildPromptContext(tasks)
	prompt := promptContext + "\n\nPlease provide a warm, encouraging affirmation that acknowledges my progress and motivates me to continue."

	text, err := session.Summarize(ctx, prompt, promptContext)
	if err != nil {
		return classify(err)
	}

	return Result{
		Text:            text,
		IsUsingFallback: false,
		Status:          StatusSuccess,
	}
}

func classify(err error) Result {
	switch {
	case errors.Is(err, genai.ErrQuota):
		return Result{
			Text:            "Daily AI limit reached. Try again tomorrow!",
			IsUsingFallback: true,
			Status:          StatusQuotaExceeded,
		}
	case errors.Is(err, genai.ErrActivationRequired):
		return Result{
			Text:            "Run dailyctl from an interactive terminal (or set model.auto_download) to enable AI affirmations.",
			IsUsingFallback: true,
			Status:          StatusActivation,
		}
	default:
		return Result{
			Text:            RandomFallback(),
			IsUsingFallback: true,
			Status:          StatusError,
		}
	}
}

// RandomFallback uniformly selects one of the pre-written affirmations.
func RandomFallback() string {
	return fallbackAffirmations[rand.IntN(len(fallbackAffirmations))]
}
