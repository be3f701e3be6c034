// Package util provides utility functions and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for parse and execution failures
var (
	ErrInvalidFormat    = errors.New("invalid format")
	ErrUnknownToken     = errors.New("unknown vocabulary token")
	ErrStructure        = errors.New("structural sequencing error")
	ErrCommandFailed    = errors.New("remote command failed")
	ErrValidationFailed = errors.New("validation failed")
	ErrNotFound         = errors.New("resource not found")
)

// FormatError reports a value that does not match its address grammar
type FormatError struct {
	Kind  string // "IPv4", "IPv6", "MAC"
	Value string
}

func (e *FormatError) Error() string {
	if strings.TrimSpace(e.Value) == "" {
		return fmt.Sprintf("invalid %s format: empty value", e.Kind)
	}
	return fmt.Sprintf("invalid %s format: %q", e.Kind, e.Value)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

// NewFormatError creates a new format error
func NewFormatError(kind, value string) *FormatError {
	return &FormatError{Kind: kind, Value: value}
}

// VocabularyError reports a token outside a closed vocabulary
type VocabularyError struct {
	Vocabulary string
	Token      string
}

func (e *VocabularyError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Vocabulary, e.Token)
}

func (e *VocabularyError) Unwrap() error {
	return ErrUnknownToken
}

// NewVocabularyError creates a new vocabulary error
func NewVocabularyError(vocabulary, token string) *VocabularyError {
	return &VocabularyError{Vocabulary: vocabulary, Token: token}
}

// SequenceError reports a line that appears where no record can own it.
// Line is the 0-based index into the non-blank input lines.
type SequenceError struct {
	Line   int
	Text   string
	Reason string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *SequenceError) Unwrap() error {
	return ErrStructure
}

// NewSequenceError creates a new sequencing error
func NewSequenceError(line int, text, reason string) *SequenceError {
	return &SequenceError{Line: line, Text: text, Reason: reason}
}

// CommandError represents a command that exited with a non-zero status
type CommandError struct {
	Command    string
	ExitStatus int
	Stderr     string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitStatus)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return ErrCommandFailed
}

// NewCommandError creates a command failure error
func NewCommandError(command string, exitStatus int, stderr string) *CommandError {
	return &CommandError{
		Command:    command,
		ExitStatus: exitStatus,
		Stderr:     stderr,
	}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error from messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddError adds an error message unconditionally
func (v *ValidationBuilder) AddError(message string) *ValidationBuilder {
	v.errors = append(v.errors, message)
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
