// Package contact validates contact form submissions and hands them to an
// email relay.
package contact

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Submission is one filled-in contact form.
type Submission struct {
	Name        string `form:"name" json:"name" validate:"required,min=3,max=80,fullname"`
	Email       string `form:"email" json:"email" validate:"required,max=120,email"`
	ProjectType string `form:"projectType" json:"projectType" validate:"required,min=2,max=80"`
	Message     string `form:"message" json:"message" validate:"required,min=10,max=2000"`
}

// Normalize returns s with every field trimmed.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:        strings.TrimSpace(s.Name),
		Email:       strings.TrimSpace(s.Email),
		ProjectType: strings.TrimSpace(s.ProjectType),
		Message:     strings.TrimSpace(s.Message),
	}
}

// Message keys for field errors, resolvable by the translation table.
const (
	KeyRequired = "contact.invalid.required"
	KeyTooShort = "contact.invalid.tooShort"
	KeyTooLong  = "contact.invalid.tooLong"
	KeyEmail    = "contact.invalid.email"
	KeyFullName = "contact.invalid.fullName"
)

// FieldError is the first failed rule of a form field.
type FieldError struct {
	Field string
	Key   string
}

// ValidationErrors lists field failures in form order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Key
	}
	return "invalid submission: " + strings.Join(parts, ", ")
}

// Key returns the message key for field, or "" when the field is valid.
func (v ValidationErrors) Key(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Key
		}
	}
	return ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	if err := v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return len(strings.Fields(fl.Field().String())) >= 2
	}); err != nil {
		panic(err)
	}
	return v
}

var ruleKeys = map[string]string{
	"required": KeyRequired,
	"min":      KeyTooShort,
	"max":      KeyTooLong,
	"email":    KeyEmail,
	"fullname": KeyFullName,
}

// Validate checks a normalized submission. It returns ValidationErrors when
// any field fails.
func Validate(s Submission) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Key: ruleKeys[fe.Tag()]})
	}
	return out
}
