package resolve

import (
	"fmt"
	"strings"
)

// Engine error codes. Profile-shape violations surface as profile.ErrorList
// from validation; these cover failures inside the engine itself.
const (
	ErrCodeShapeMismatch      = "ERR_SHAPE_MISMATCH"
	ErrCodeCounterUnavailable = "ERR_COUNTER_UNAVAILABLE"
	ErrCodeBaseDirNotFound    = "ERR_BASE_DIR_NOT_FOUND"
	ErrCodePatternEscapesBase = "ERR_PATTERN_ESCAPES_BASE"
	ErrCodeBadPattern         = "ERR_BAD_PATTERN"
)

// Error carries structured context for a resolution failure: the offending
// key path, glob pattern, or identifier mode.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	KeyPath string `json:"key_path,omitempty"`
	Pattern string `json:"pattern,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, 2)
	if e.KeyPath != "" {
		parts = append(parts, fmt.Sprintf("key %q", e.KeyPath))
	}
	if e.Pattern != "" {
		parts = append(parts, fmt.Sprintf("pattern %q", e.Pattern))
	}
	if e.Mode != "" {
		parts = append(parts, fmt.Sprintf("mode %q", e.Mode))
	}

	prefix := "resolve"
	if len(parts) > 0 {
		prefix = "resolve: " + strings.Join(parts, ", ")
	}

	message := e.Message
	if message == "" {
		message = e.Code
	}
	return fmt.Sprintf("%s: %s", prefix, message)
}

func shapeMismatchError(keyPath, message string) *Error {
	return &Error{Code: ErrCodeShapeMismatch, KeyPath: keyPath, Message: message}
}

func counterUnavailableError(err error) *Error {
	message := "no counter collaborator configured"
	if err != nil {
		message = "counter unavailable: " + err.Error()
	}
	return &Error{Code: ErrCodeCounterUnavailable, Mode: "sequential", Message: message}
}
