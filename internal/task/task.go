// Package task provides the Task data structure for the daily checklist.
// Tasks are atomic one-line items owned by the store for a single day.
package task

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// idAlphabet is the character set used for generating task IDs
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// idLength is the length of generated task IDs
	idLength = 8
)

var (
	idPattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

	// ErrInvalidID indicates that a task ID doesn't match the required format
	ErrInvalidID = errors.New("invalid task ID: must be 8 lowercase alphanumeric characters")

	// ErrEmptyText indicates that a task's text is empty or whitespace-only
	ErrEmptyText = errors.New("task text must not be empty")
)

// Task represents a single checklist item for the current day.
// Only the store mutates tasks; callers receive copies.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

// New constructs a pending task with a freshly generated ID.
// Returns ErrEmptyText if text is empty or whitespace-only.
func New(text string) (Task, error) {
	if err := ValidateText(text); err != nil {
		return Task{}, err
	}
	return Task{
		ID:   NewID(),
		Text: strings.TrimSpace(text),
	}, nil
}

// NewID generates an 8-character lowercase alphanumeric task ID
// using the nanoid algorithm with a custom alphabet.
// Panics if ID generation fails, as this is a critical system failure.
func NewID() string {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		panic(fmt.Sprintf("critical: failed to generate task ID: %v", err))
	}
	return id
}

// ValidateID checks whether the given string is a valid task ID.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return ErrInvalidID
	}
	return nil
}

// ValidateText checks whether the given task text is non-empty.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}
