// Package validation wraps go-playground/validator with a shared instance
// that reports fields by their JSON names.
//
// # Usage
//
//	type Update struct {
//	    YearlyGoal int `json:"yearly_goal" validate:"min=0,max=1000"`
//	}
//
//	if err := validation.Struct(&update); err != nil {
//	    var verr *validation.Error
//	    if errors.As(err, &verr) { ... verr.Fields ... }
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Error is returned when a struct fails validation. Fields maps the JSON
// path of each offending field to a human-readable message.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewError builds an Error for a single field. Used by custom checks that
// the tag-based validator cannot express.
func NewError(field, message string) *Error {
	return &Error{Fields: map[string]string{field: message}}
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates s and converts validator errors into *Error.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Error{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fieldPath(fe)] = friendlyMessage(fe)
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace:
// "FormulaConfig.year.ranges[0].weight" -> "year.ranges[0].weight".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "unique":
		return "must not contain duplicates"
	case "dive":
		return "contains an invalid element"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
