// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Library operations
	OpLibraryLoad   Op = "load library"
	OpLibraryReload Op = "reload library"

	// Media index operations
	OpIndexOpen Op = "open media index"
	OpIndexScan Op = "scan media index"

	// Exclusion operations
	OpExcludeAdd    Op = "exclude path"
	OpExcludeRemove Op = "remove excluded path"
	OpExcludeList   Op = "list excluded paths"

	// Watch operations
	OpWatchStart Op = "watch library sources"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpStateOpen  Op = "open application state"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
