// Package validation wraps a shared go-playground validator instance.
package validation

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get returns the shared validator instance.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct validates s against its `validate` struct tags.
func Struct(s any) error {
	return Get().Struct(s)
}

// Var validates a single value against the given tag, e.g. "gte=1,lte=5".
func Var(field any, tag string) error {
	return Get().Var(field, tag)
}
