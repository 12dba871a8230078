// Package errors provides custom error types for the icdmap system.
// These errors enable programmatic error checking across the loader,
// resolver, projector and the generators, and give the CLI descriptive
// messages for the failures that abort a run.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are re-exported so callers need a single errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the icdmap system
var (
	// ErrUnknownComponent indicates a (subsystem, component) pair absent from the prefix registry
	ErrUnknownComponent = errors.New("unknown component")

	// ErrMalformedDocument indicates a declaration document that failed to parse or is missing sections
	ErrMalformedDocument = errors.New("malformed document")

	// ErrOutputWrite indicates an output file or path could not be created or written
	ErrOutputWrite = errors.New("output write failure")

	// ErrInvalidSelection indicates a diagram was requested without any primary-selection criteria
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")
)

// UnknownComponentError is returned when a referenced (subsystem, component)
// pair has no prefix registered. Callers log it and skip the offending item.
type UnknownComponentError struct {
	Subsystem string
	Component string

	// UnknownSubsystem is set when no component of Subsystem is registered
	UnknownSubsystem bool
}

// Error implements the error interface
func (e *UnknownComponentError) Error() string {
	switch {
	case e.UnknownSubsystem && e.Component != "":
		return fmt.Sprintf("component %s: unknown subsystem %s", e.Component, e.Subsystem)
	case e.UnknownSubsystem || e.Component == "":
		return fmt.Sprintf("unknown subsystem %s", e.Subsystem)
	}
	return fmt.Sprintf("component %s not in subsystem %s", e.Component, e.Subsystem)
}

// Is implements errors.Is support
func (e *UnknownComponentError) Is(target error) bool {
	return target == ErrUnknownComponent || target == ErrNotFound
}

// NewUnknownComponentError creates a new UnknownComponentError
func NewUnknownComponentError(subsystem, component string) *UnknownComponentError {
	return &UnknownComponentError{Subsystem: subsystem, Component: component}
}

// NewUnknownSubsystemError creates an UnknownComponentError for a component
// referenced in a subsystem that has no registered components at all.
func NewUnknownSubsystemError(subsystem, component string) *UnknownComponentError {
	return &UnknownComponentError{Subsystem: subsystem, Component: component, UnknownSubsystem: true}
}

// MalformedDocumentError represents a declaration document that could not
// be parsed or lacks a required field.
type MalformedDocumentError struct {
	Origin  string // file path or collection name
	Format  string // "yaml", "json", "toml"
	Message string
	Err     error
}

// Error implements the error interface
func (e *MalformedDocumentError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("malformed %s document %s: %s", e.Format, e.Origin, e.Message)
	}
	return fmt.Sprintf("malformed document %s: %s", e.Origin, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// NewMalformedDocumentError creates a new MalformedDocumentError
func NewMalformedDocumentError(origin, format, message string, err error) *MalformedDocumentError {
	return &MalformedDocumentError{
		Origin:  origin,
		Format:  format,
		Message: message,
		Err:     err,
	}
}

// OutputWriteError represents a destination that could not be created or written.
// It is fatal for the run that produced it.
type OutputWriteError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("error creating output file %s: %s", e.Path, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *OutputWriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *OutputWriteError) Is(target error) bool {
	return target == ErrOutputWrite
}

// NewOutputWriteError creates a new OutputWriteError
func NewOutputWriteError(path string, err error) *OutputWriteError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &OutputWriteError{Path: path, Message: message, Err: err}
}

// InvalidSelectionError is returned when diagram generation has nothing to select.
type InvalidSelectionError struct {
	Message string
}

// Error implements the error interface
func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection: %s", e.Message)
}

// Is implements errors.Is support
func (e *InvalidSelectionError) Is(target error) bool {
	return target == ErrInvalidSelection || target == ErrInvalidInput
}

// NewInvalidSelectionError creates a new InvalidSelectionError
func NewInvalidSelectionError(message string) *InvalidSelectionError {
	return &InvalidSelectionError{Message: message}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "walk", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ProcessError represents an error from an external process or command
type ProcessError struct {
	Operation string // What operation was being performed
	Command   string // The command that was executed
	Output    string // Stdout/stderr output from the process
	ExitCode  int    // Exit code if available
	Err       error  // Underlying error
}

// Error implements the error interface
func (e *ProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("process error during %s (command: %s): %v\nOutput: %s", e.Operation, e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("process error during %s (command: %s): %v", e.Operation, e.Command, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// NewProcessError creates a new ProcessError
func NewProcessError(operation, command, output string, err error) *ProcessError {
	return &ProcessError{
		Operation: operation,
		Command:   command,
		Output:    output,
		Err:       err,
	}
}

// Helper functions for error checking

// IsUnknownComponent checks if an error is an unknown component error
func IsUnknownComponent(err error) bool {
	return errors.Is(err, ErrUnknownComponent)
}

// IsMalformedDocument checks if an error is a malformed document error
func IsMalformedDocument(err error) bool {
	return errors.Is(err, ErrMalformedDocument)
}

// IsOutputWrite checks if an error is an output write failure
func IsOutputWrite(err error) bool {
	return errors.Is(err, ErrOutputWrite)
}

// IsInvalidSelection checks if an error is an invalid selection error
func IsInvalidSelection(err error) bool {
	return errors.Is(err, ErrInvalidSelection)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapOutput wraps an error as an OutputWriteError
func WrapOutput(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewOutputWriteError(path, err)
}

// WrapMalformed wraps a decode error as a MalformedDocumentError
func WrapMalformed(origin, format string, err error) error {
	if err == nil {
		return nil
	}
	return NewMalformedDocumentError(origin, format, err.Error(), err)
}
