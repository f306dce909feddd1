package browser

import (
	"fmt"
	"strings"

	"github.com/gravitational/trace"
)

// failure returns a CompareFailed error with message when given, the default otherwise
func failure(message string, format string, args ...interface{}) error {
	if message != "" {
		return trace.CompareFailed("%v", message)
	}
	return trace.CompareFailed(format, args...)
}

func contains(text, expected string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.Contains(strings.ToLower(text), strings.ToLower(expected))
	}
	return strings.Contains(text, expected)
}

func equal(actual, expected string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.EqualFold(actual, expected)
	}
	return actual == expected
}

func plural(count int, what string) string {
	if count == 1 {
		return fmt.Sprintf("%v %v", count, what)
	}
	return fmt.Sprintf("%v %vs", count, what)
}
