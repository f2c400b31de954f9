// Package validation checks operator-entered form values against
// declarative field rules.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adroitalarm/shopdesk/internal/common"
)

// FieldRule describes what a single form field accepts.
type FieldRule struct {
	Field string
	// Label names the field in the "is required" message. Defaults to
	// Field with its first letter capitalized.
	Label    string
	Required bool
	// RequiredMessage overrides the "<Label> is required" message.
	RequiredMessage string
	Pattern         *regexp.Regexp
	MinLength       int
	MaxLength       int
	// Message is reported when Pattern or a length bound fails.
	Message string
	// List treats the value as comma separated; each trimmed item must
	// match Pattern and duplicates are rejected.
	List bool
}

// Rules is an ordered set of field rules.
type Rules []FieldRule

// FieldError is a failed field.
type FieldError struct {
	Field   string
	Message string
}

// Errors collects failures in rule order.
type Errors []FieldError

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Summary joins every message.
func (e Errors) Summary() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Err returns nil when there are no failures, otherwise an error wrapping
// common.ErrValidation.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return common.NewUserError(e.Summary(), common.ErrValidation)
}

// Check validates one value and returns the failure message, or "".
func (r FieldRule) Check(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if r.Required {
			if r.RequiredMessage != "" {
				return r.RequiredMessage
			}
			return r.label() + " is required"
		}
		return ""
	}

	if r.List {
		return r.checkList(trimmed)
	}

	n := utf8.RuneCountInString(value)
	if r.MinLength > 0 && n < r.MinLength {
		return r.message()
	}
	if r.MaxLength > 0 && n > r.MaxLength {
		return r.message()
	}
	if r.Pattern != nil && !r.Pattern.MatchString(trimmed) {
		return r.message()
	}
	return ""
}

func (r FieldRule) checkList(value string) string {
	items := SplitList(value)
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if r.Pattern != nil && !r.Pattern.MatchString(item) {
			return r.message()
		}
	}
	for _, item := range items {
		if seen[item] {
			return "Duplicate subcategories are not allowed"
		}
		seen[item] = true
	}
	return ""
}

func (r FieldRule) label() string {
	if r.Label != "" {
		return r.Label
	}
	if r.Field == "" {
		return "Field"
	}
	return strings.ToUpper(r.Field[:1]) + r.Field[1:]
}

func (r FieldRule) message() string {
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("%s is invalid", r.label())
}

// Validate checks values against every rule, in order.
func (rs Rules) Validate(values map[string]string) Errors {
	var errs Errors
	for _, r := range rs {
		if msg := r.Check(values[r.Field]); msg != "" {
			errs = append(errs, FieldError{Field: r.Field, Message: msg})
		}
	}
	return errs
}

// SplitList splits a comma-separated value, trimming items and dropping
// empty ones.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
