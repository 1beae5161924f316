// Package apperr holds the business error taxonomy shared by services and
// handlers. Storage/infra failures stay plain errors and map to 500.
package apperr

import "errors"

type ValidationError struct {
	Msg string
}

func NewValidation(msg string) *ValidationError { return &ValidationError{Msg: msg} }

func (e *ValidationError) Error() string { return e.Msg }

type ConflictError struct {
	Msg string
}

func NewConflict(msg string) *ConflictError { return &ConflictError{Msg: msg} }

func (e *ConflictError) Error() string { return e.Msg }

type NotFoundError struct {
	Msg string
}

func NewNotFound(msg string) *NotFoundError { return &NotFoundError{Msg: msg} }

func (e *NotFoundError) Error() string { return e.Msg }

type InvalidStateError struct {
	Msg string
}

func NewInvalidState(msg string) *InvalidStateError { return &InvalidStateError{Msg: msg} }

func (e *InvalidStateError) Error() string { return e.Msg }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

func IsInvalidState(err error) bool {
	var s *InvalidStateError
	return errors.As(err, &s)
}
