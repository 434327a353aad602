// Package sanitize normalizes free-form text fields before they reach the
// reply pipeline or the store.
package sanitize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmpty   = errors.New("field is empty")
	ErrTooLong = errors.New("field too long")
)

// FieldError reports which field failed validation and the limit involved,
// so callers can render a precise user-facing message.
type FieldError struct {
	Field string
	Limit int
	Err   error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrTooLong) {
		return fmt.Sprintf("%s exceeds %d characters", e.Field, e.Limit)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *FieldError) Unwrap() error { return e.Err }

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Clean strips HTML-like tags and control characters and trims surrounding
// whitespace. It is total: any input yields some (possibly empty) string.
func Clean(raw string) string {
	cleaned := tagPattern.ReplaceAllString(raw, "")
	cleaned = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, cleaned)
	return strings.TrimSpace(cleaned)
}

// ValidateMessage sanitizes a text/sender pair and enforces the length
// limits. Limits are counted in runes so multi-byte characters are not
// penalized.
func ValidateMessage(text, sender string, maxText, maxSender int) (string, string, error) {
	text = Clean(text)
	if text == "" {
		return "", "", &FieldError{Field: "text", Err: ErrEmpty}
	}
	if utf8.RuneCountInString(text) > maxText {
		return "", "", &FieldError{Field: "text", Limit: maxText, Err: ErrTooLong}
	}

	sender = Clean(sender)
	if sender == "" {
		return "", "", &FieldError{Field: "sender", Err: ErrEmpty}
	}
	if utf8.RuneCountInString(sender) > maxSender {
		return "", "", &FieldError{Field: "sender", Limit: maxSender, Err: ErrTooLong}
	}

	return text, sender, nil
}
