// Package clierr defines structured CLI errors with machine-readable codes.
package clierr

import "fmt"

// Error codes. Every code except InternalError maps to exit code 1.
const (
	InvalidInput     = "INVALID_INPUT"
	InvalidPlatform  = "INVALID_PLATFORM"
	InvalidAgent     = "INVALID_AGENT"
	NoSkillsSelected = "NO_SKILLS_SELECTED"
	SkillNotFound    = "SKILL_NOT_FOUND"
	CatalogNotFound  = "CATALOG_NOT_FOUND"
	ConfigNotFound   = "CONFIG_NOT_FOUND"
	ConfigExists     = "CONFIG_ALREADY_EXISTS"
	InternalError    = "INTERNAL_ERROR"
)

// Error is a CLI error carrying a code, a human message, and optional details
// rendered in JSON mode.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// New creates an Error with the given code and message.
func New(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Message
}

// WithDetails attaches structured details and returns the same error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns the process exit code for this error.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // internal errors exit with 2
	}
	return 1
}

// SilentError signals an exit code without printing anything. Used when the
// command has already reported its results.
type SilentError struct {
	Code int
}

func (e *SilentError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}
