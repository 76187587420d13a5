// Package errors provides structured, actionable error messages for vmark.
//
// The errors package implements an error system that:
//   - Shows exact source locations (file, line, column)
//   - Explains what went wrong in plain language
//   - Suggests how to fix issues with input examples
//   - Links to documentation for deeper understanding
//
// # Error Categories
//
// Errors are organized into categories:
//   - render: pipeline failures (parse, transform, reparse)
//   - config: vmark.json problems
//   - server: preview server failures
//   - publish: export and upload failures
//   - cli: command line usage errors
//
// # Error Codes
//
// Each error has a unique code (e.g., "E002") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("E002").
//	    WithLocation("docs/intro.md", 15, 0).
//	    WithSuggestion("Remove the failing transform from the list or fix its input")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E002: Tree transform failed
//	//
//	//   docs/intro.md:15
//	//
//	//     13 │ Some paragraph.
//	//     14 │
//	//   → 15 │ ```mermaid
//	//     16 │ graph TD
//	//     17 │ ```
//	//
//	//   Hint: Remove the failing transform from the list or fix its input
//	//
//	//   Learn more: https://vmark.dev/docs/errors/E002
package errors
