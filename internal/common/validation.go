package common

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("field '%s' %s", e.Field, e.Message)
}

// ValidationRule checks one field value. A nil result means the value passed.
type ValidationRule func(field string, value interface{}) *ValidationError

// Validator collects rule failures across form fields so a request can be
// rejected with every problem reported at once.
type Validator struct {
	errs []ValidationError
}

func NewValidator() *Validator {
	return &Validator{}
}

// Field runs each rule against the value, recording failures.
func (v *Validator) Field(field string, value interface{}, rules ...ValidationRule) *Validator {
	for _, rule := range rules {
		if ve := rule(field, value); ve != nil {
			v.errs = append(v.errs, *ve)
		}
	}
	return v
}

func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) Errors() []ValidationError {
	return v.errs
}

// Error folds the collected failures into one error, nil when clean.
func (v *Validator) Error() error {
	if len(v.errs) == 0 {
		return nil
	}
	return errors.New(v.ErrorMessage())
}

func (v *Validator) ErrorMessage() string {
	parts := make([]string, 0, len(v.errs))
	for _, ve := range v.errs {
		parts = append(parts, ve.Error())
	}
	return strings.Join(parts, "; ")
}

// Required rejects nil, empty and blank string values.
func Required(field string, value interface{}) *ValidationError {
	switch s := value.(type) {
	case nil:
		return &ValidationError{Field: field, Message: "is required"}
	case string:
		if strings.TrimSpace(s) == "" {
			return &ValidationError{Field: field, Message: "is required"}
		}
	case *string:
		if s == nil || strings.TrimSpace(*s) == "" {
			return &ValidationError{Field: field, Message: "is required"}
		}
	}
	return nil
}

// OneOf builds a rule accepting only the listed values, compared without
// case. An empty string passes; pair with Required for mandatory fields.
func OneOf(allowed ...string) ValidationRule {
	return func(field string, value interface{}) *ValidationError {
		s, ok := value.(string)
		if !ok {
			return &ValidationError{Field: field, Message: "must be a string"}
		}
		if s == "" {
			return nil
		}
		for _, want := range allowed {
			if strings.EqualFold(s, want) {
				return nil
			}
		}
		return &ValidationError{Field: field, Message: "must be one of " + strings.Join(allowed, "|")}
	}
}
