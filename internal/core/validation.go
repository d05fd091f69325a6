package core

// validation.go checks a submission before anything touches the store.
//
// Only two fields are inspected: name must be a non-blank string and phone
// must be a string made of digits, whitespace, "+", "-", "(" and ")" with at
// least five characters. Every other field is free-form. Validate returns
// all problems at once so the form can show them together.

import (
	"regexp"
	"strings"
)

// Validation error codes.
const (
	CodeMissingField  = "MissingField"
	CodeInvalidFormat = "InvalidFormat"
)

// phonePattern accepts the characters people type into phone fields. There is
// no upper length bound and the value is not normalized.
var phonePattern = regexp.MustCompile(`^[\d\s\-+()]{5,}$`)

// ValidationError represents a single rejected field.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is the full list of problems with one submission.
// A non-empty list means the submission is rejected.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns the client-facing message of every error, in order.
func (e ValidationErrors) Messages() []string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Message
	}
	return msgs
}

// Validate checks the required fields of s and returns every failure.
// It returns nil when the submission can be stored.
func Validate(s Submission) ValidationErrors {
	var errs ValidationErrors

	if name, ok := s.Name.(string); !ok || strings.TrimSpace(name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Code:    CodeMissingField,
			Message: "name is required",
		})
	}

	if phone, ok := s.Phone.(string); !ok || !phonePattern.MatchString(phone) {
		errs = append(errs, ValidationError{
			Field:   "phone",
			Code:    CodeInvalidFormat,
			Message: "phone has an invalid format: use at least 5 digits, spaces, +, -, ( or )",
		})
	}

	return errs
}
