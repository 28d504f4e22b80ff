package inventory

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when removing an item that is not in stock.
// Call sites wrap it with the item name; match with errors.Is.
var ErrNotFound = errors.New("item not found")

// ValidationError reports an invalid argument to a store operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("inventory: invalid %s: %s", e.Field, e.Reason)
}

// IOError reports a failed load or save against the inventory file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("inventory: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
