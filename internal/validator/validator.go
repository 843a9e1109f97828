// Package validator provides a Validator type for accumulating field-level
// validation errors. Struct tag rules are evaluated with go-playground/validator
// and reported under the field's JSON name.
package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// rules is shared by every Validator; *playground.Validate caches struct
// metadata and is safe for concurrent use.
var rules = newRules()

func newRules() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())

	// Report fields by their JSON key so messages line up with the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// notblank rejects strings made only of whitespace.
	_ = v.RegisterValidation("notblank", func(fl playground.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return true
		}
		return strings.TrimSpace(field.String()) != ""
	})

	return v
}

// FieldError is a single field failure as returned to API clients.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// If key already has an error it is not overwritten, so the first
// failure for a field is always the one that is reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key with message only when ok is false.
//
//	v.Check(len(title) > 0, "title", "é obrigatório")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Struct evaluates the `validate:"..."` tags on s and records one message per
// failing field.
func (v *Validator) Struct(s any) {
	err := rules.Struct(s)
	if err == nil {
		return
	}

	fieldErrs, ok := err.(playground.ValidationErrors)
	if !ok {
		// InvalidValidationError means s was not a struct: a programming error.
		panic(err)
	}

	for _, fe := range fieldErrs {
		v.AddError(fe.Field(), message(fe))
	}
}

// FieldErrors returns the recorded errors sorted by field name.
func (v *Validator) FieldErrors() []FieldError {
	out := make([]FieldError, 0, len(v.Errors))
	for field, msg := range v.Errors {
		out = append(out, FieldError{Field: field, Error: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "é obrigatório"
	case "notblank":
		return "não pode estar em branco"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("deve ser no máximo %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("deve ter pelo menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("deve ser no mínimo %s", fe.Param())
	case "gt":
		return fmt.Sprintf("deve ser maior que %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("deve ser um dos valores: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("falhou na regra %s=%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("falhou na regra %s", fe.Tag())
	}
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}
