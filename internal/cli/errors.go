package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type requiredError struct {
	field string
}

func (e requiredError) Error() string {
	return fmt.Sprintf("%s must not be blank", e.field)
}

func errRequired(field string) error {
	return requiredError{field: field}
}
