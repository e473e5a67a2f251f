// Package validation provides the field-level checks shared by all record
// types. Every check is a pure function returning an error message, or the
// empty string when the value passes.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
)

// Errors maps field names to human-readable validation messages. An empty
// map means the checked data is valid.
type Errors map[string]string

// Add records a message for a field unless the message is empty or the
// field already carries an error.
func (e Errors) Add(field, message string) {
	if message == "" {
		return
	}
	if _, exists := e[field]; exists {
		return
	}
	e[field] = message
}

// Merge copies entries from other, keeping existing entries on conflict.
func (e Errors) Merge(other Errors) {
	for field, message := range other {
		e.Add(field, message)
	}
}

// Summary renders the error map as a single "field: message" list with
// fields in deterministic order.
func (e Errors) Summary() string {
	if len(e) == 0 {
		return ""
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return strings.Join(parts, "; ")
}

// Required checks that a string field carries a non-blank value.
func Required(value, fieldName string) string {
	if strings.TrimSpace(value) == "" {
		return fmt.Sprintf("%s cannot be empty", fieldName)
	}
	return ""
}

// String checks that the value length falls within [minLength, maxLength].
func String(value, fieldName string, minLength, maxLength int) string {
	if len(value) < minLength {
		return fmt.Sprintf("%s must be at least %d characters", fieldName, minLength)
	}
	if len(value) > maxLength {
		return fmt.Sprintf("%s must be at most %d characters", fieldName, maxLength)
	}
	return ""
}

// Integer checks that the value falls within the optional [min, max] bounds.
// A nil bound is unconstrained.
func Integer(value int, fieldName string, min, max *int) string {
	if min != nil && value < *min {
		return fmt.Sprintf("%s must be at least %d", fieldName, *min)
	}
	if max != nil && value > *max {
		return fmt.Sprintf("%s must be at most %d", fieldName, *max)
	}
	return ""
}

// PhoneNumber checks that the value is non-empty, contains only digits,
// spaces, '+', '-', '(' and ')', and includes at least one digit.
func PhoneNumber(value, fieldName string) string {
	if msg := String(value, fieldName, 1, 100); msg != "" {
		return msg
	}
	hasDigit := false
	for _, r := range value {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case r == ' ' || r == '+' || r == '-' || r == '(' || r == ')':
		default:
			return fmt.Sprintf("%s contains invalid characters", fieldName)
		}
	}
	if !hasDigit {
		return fmt.Sprintf("%s must contain some digits", fieldName)
	}
	return ""
}

// Date checks that the value is a populated date-time rather than the
// zero value a missing or unparsed date leaves behind.
func Date(value time.Time, fieldName string) string {
	if value.IsZero() {
		return fmt.Sprintf("%s must be a date-time value", fieldName)
	}
	return ""
}

// IntPtr is a convenience for Integer bounds.
func IntPtr(v int) *int { return &v }
