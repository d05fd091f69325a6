package core

import (
	"fmt"
	"strings"
	"time"
)

// Submission is an application as received from a client, before validation.
// Values stay untyped so a JSON body carrying a number or object where a
// string belongs can be told apart from a missing field. Form bodies only
// ever produce strings or nil.
type Submission struct {
	Name    any
	Phone   any
	Email   any
	Format  any
	Date    any
	Message any

	// Honeypot is the hidden anti-spam field. Browsers leave it empty.
	Honeypot any
}

// HoneypotFilled reports whether the hidden field came back with a value.
func (s Submission) HoneypotFilled() bool {
	v, ok := s.Honeypot.(string)
	return ok && strings.TrimSpace(v) != ""
}

// NewApplication is a validated submission ready to be inserted.
// Optional fields are nil when the client did not provide them.
type NewApplication struct {
	Name    string
	Phone   string
	Email   *string
	Format  *string
	Date    *string
	Message *string
}

// Application is one stored lead. Rows are never updated or deleted.
type Application struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Format    *string   `json:"format,omitempty"`
	Date      *string   `json:"date,omitempty"`
	Message   *string   `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Normalize converts a submission that passed Validate into insert values:
// name and phone are trimmed, empty optional fields become nil.
func Normalize(s Submission) NewApplication {
	name, _ := s.Name.(string)
	phone, _ := s.Phone.(string)

	return NewApplication{
		Name:    strings.TrimSpace(name),
		Phone:   strings.TrimSpace(phone),
		Email:   optional(s.Email),
		Format:  optional(s.Format),
		Date:    optional(s.Date),
		Message: optional(s.Message),
	}
}

// optional maps an absent or empty value to nil. Non-string JSON values
// are stored in their printed form.
func optional(v any) *string {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = t
	default:
		s = fmt.Sprint(t)
	}
	if s == "" {
		return nil
	}
	return &s
}

// application builds the stored view of n once the store has assigned an id.
func (n NewApplication) application(id int64, ts time.Time) Application {
	return Application{
		ID:        id,
		Name:      n.Name,
		Phone:     n.Phone,
		Email:     n.Email,
		Format:    n.Format,
		Date:      n.Date,
		Message:   n.Message,
		Timestamp: ts,
	}
}
