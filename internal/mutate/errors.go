package mutate

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type DuplicateError struct {
	Kind string
	Name string
}

func (e DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Kind, e.Name)
}

// IsNoop reports whether err only means "the intent was rejected and nothing changed".
func IsNoop(err error) bool {
	var nf NotFoundError
	var ve ValidationError
	var de DuplicateError
	return errors.As(err, &nf) || errors.As(err, &ve) || errors.As(err, &de)
}

func errBlank(field string) error {
	return ValidationError{Field: field, Reason: "must not be blank"}
}
