package profile

import (
	"fmt"
	"strings"
)

// Profile error codes.
const (
	ErrCodeParse             = "ERR_PARSE"
	ErrCodeMissingField      = "ERR_MISSING_FIELD"
	ErrCodeUnknownIDMode     = "ERR_UNKNOWN_ID_MODE"
	ErrCodeInvalidHashLength = "ERR_INVALID_HASH_LENGTH"
	ErrCodeDuplicateKeepKey  = "ERR_DUPLICATE_KEEP_KEY"
	ErrCodeBlankKeepKey      = "ERR_BLANK_KEEP_KEY"
)

// ProfileError carries structured validation information for a profile file.
type ProfileError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Key     string `json:"key,omitempty"`
}

func (e ProfileError) Error() string {
	parts := make([]string, 0, 2)
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	prefix := "profile"
	if len(parts) > 0 {
		prefix = strings.Join(parts, ": ")
	}

	message := e.Message
	if message == "" {
		message = e.Code
	}
	return fmt.Sprintf("%s: %s", prefix, message)
}

// ErrorList groups profile errors.
type ErrorList struct {
	Errors []ProfileError `json:"errors"`
}

func (e *ErrorList) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return ""
	}
	lines := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}

func (e *ErrorList) Add(err ProfileError) {
	e.Errors = append(e.Errors, err)
}

func (e *ErrorList) Empty() bool {
	return e == nil || len(e.Errors) == 0
}

// Has reports whether the list contains an error with the given code.
func (e *ErrorList) Has(code string) bool {
	if e == nil {
		return false
	}
	for _, err := range e.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}
