package domain

import "errors"

var (
	// ErrInvalidInput marks malformed or missing arguments.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a reference to an indicator that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTarget marks a target that makes the progress ratio undefined.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrDivisionByZero is returned by the guards in front of every division by a stored value.
	ErrDivisionByZero = errors.New("division by zero")
)
