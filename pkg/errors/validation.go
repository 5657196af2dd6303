package errors

import (
	"strings"
	"unicode/utf8"
)

// ValidateItems checks a word list received over the API. The file format
// cannot express an item containing "\n", so such items are rejected, as is
// invalid UTF-8. maxItems <= 0 disables the count limit.
func ValidateItems(items []string, maxItems int) error {
	if maxItems > 0 && len(items) > maxItems {
		return New(ErrCodeTooLarge, "too many items: %d (max %d)", len(items), maxItems)
	}
	for i, it := range items {
		if strings.Contains(it, "\n") {
			return New(ErrCodeInvalidInput, "item %d contains a newline", i)
		}
		if !utf8.ValidString(it) {
			return New(ErrCodeInvalidInput, "item %d is not valid UTF-8", i)
		}
	}
	return nil
}

// ValidateFormat checks an export format against the allowed set.
func ValidateFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
}
