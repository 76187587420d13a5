package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryRender  Category = "render"
	CategoryConfig  Category = "config"
	CategoryServer  Category = "server"
	CategoryPublish Category = "publish"
	CategoryCLI     Category = "cli"
)

// Location represents a position in a source document.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// VmarkError is a structured error with source location, suggestions, and
// documentation.
type VmarkError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (render, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the document position where the error occurred.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is input showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *VmarkError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *VmarkError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a document location to the error.
func (e *VmarkError) WithLocation(file string, line, column int) *VmarkError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *VmarkError) WithSuggestion(s string) *VmarkError {
	e.Suggestion = s
	return e
}

// WithExample adds an input example to the error.
func (e *VmarkError) WithExample(ex string) *VmarkError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *VmarkError) WithDetail(d string) *VmarkError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *VmarkError) Wrap(err error) *VmarkError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a VmarkError from a registered error code.
func New(code string) *VmarkError {
	template, ok := registry[code]
	if !ok {
		return &VmarkError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &VmarkError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new VmarkError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *VmarkError {
	return &VmarkError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a VmarkError.
func FromError(err error, code string) *VmarkError {
	if err == nil {
		return nil
	}
	if ve, ok := err.(*VmarkError); ok {
		return ve
	}
	return New(code).Wrap(err)
}
