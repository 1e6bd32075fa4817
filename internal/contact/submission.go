// Package contact implements the contact form: its client-side state and
// validation, the submitter that posts it, and the backend endpoint that
// archives and mails the message.
package contact

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Notification copy shown to the visitor.
const (
	MsgMissingFields = "Please fill in all fields."
	MsgInvalidEmail  = "Please enter a valid email address."
	MsgSending       = "Sending your message..."
	MsgSent          = "Thank you for your message! I'll get back to you soon."
	MsgFailed        = "Sorry, there was an error sending your message. Please try again later."
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// Submission is the JSON body of POST /api/contact/submit.
type Submission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,simple_email"`
	Message string `json:"message" validate:"required"`
}

// Normalize returns a copy with every field trimmed.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}
}

// ValidationError rejects a submission before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Validate checks s after trimming. Missing fields are reported before a
// malformed email.
func Validate(s Submission) error {
	s = s.Normalize()
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate submission")
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return &ValidationError{Field: strings.ToLower(fe.Field()), Message: MsgMissingFields}
		}
	}
	return &ValidationError{Field: "email", Message: MsgInvalidEmail}
}
