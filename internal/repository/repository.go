// Package repository declares the persistence interfaces the services depend
// on. The postgres subpackage implements them; tests substitute in-memory
// fakes.
package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on a unique constraint violation.
	ErrDuplicate = errors.New("duplicate")
)
