package assistant

import (
	"errors"
	"fmt"

	"github.com/jonathan/career-pulse/internal/types"
)

// Placeholder texts shown in place of generated content.
const (
	UnavailableText   = "API Key not configured. Please set it up to use AI features."
	UnavailableItem   = "API Key not configured."
	SummaryFailedText = "Failed to generate summary. Please try again."
	BulletFailedText  = "Failed to generate suggestion. Please try again."
	SkillsFailedItem  = "Failed to generate skills."
)

// ErrUnavailable is the cause of every result produced without a credential.
var ErrUnavailable = errors.New("generative text service not configured")

// GenerationError wraps a failed round trip to the provider.
type GenerationError struct {
	Type    types.PromptType
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s generation failed: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s generation failed: %s", e.Type, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// TextResult is the outcome of a summary or bullet request. On failure Err is
// set, Placeholder is true and Value holds the user-facing placeholder text.
type TextResult struct {
	Value       string
	Err         error
	Placeholder bool
}

// Display returns what a front end shows: the content or the placeholder.
func (r TextResult) Display() string { return r.Value }

// ListResult is the outcome of a skills request, tagged like TextResult.
type ListResult struct {
	Value       []string
	Err         error
	Placeholder bool
}

func (r ListResult) Display() []string { return r.Value }

func textFailure(text string, err error) TextResult {
	return TextResult{Value: text, Err: err, Placeholder: true}
}

func listFailure(item string, err error) ListResult {
	return ListResult{Value: []string{item}, Err: err, Placeholder: true}
}
