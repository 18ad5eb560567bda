// Package validation collects per-field input errors into a single error
// that unwraps to ErrInvalid.
package validation

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrInvalid is the sentinel every validation failure unwraps to.
var ErrInvalid = errors.New("validation failed")

// Error maps field names to messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(keys, ", "))
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// FieldErrors exposes Fields for error responses.
func (e *Error) FieldErrors() map[string]string {
	return e.Fields
}

// Collector accumulates field errors. The zero value is ready to use.
type Collector struct {
	fields map[string]string
}

// Add records msg for field. The first message for a field wins.
func (c *Collector) Add(field, msg string) {
	if c.fields == nil {
		c.fields = make(map[string]string)
	}
	if _, exists := c.fields[field]; !exists {
		c.fields[field] = msg
	}
}

// Required records field as missing when value is blank.
func (c *Collector) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.Add(field, "required")
	}
}

// Check records msg for field when ok is false.
func (c *Collector) Check(ok bool, field, msg string) {
	if !ok {
		c.Add(field, msg)
	}
}

// Err returns an *Error when anything was recorded, otherwise nil.
func (c *Collector) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &Error{Fields: maps.Clone(c.fields)}
}

// Invalid returns an *Error for a single field.
func Invalid(field, msg string) error {
	return &Error{Fields: map[string]string{field: msg}}
}
