package domain

import "errors"

// Common domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidReference = errors.New("invalid reference")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrAccountBlocked   = errors.New("account is blocked")
	ErrInternalServer   = errors.New("internal server error")
	ErrDuplicateEntry   = errors.New("duplicate entry")
)

// UserErrors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidStatus     = errors.New("invalid status")
)

// RequestErrors
var (
	ErrRequestNotFound = errors.New("request not found")
	// ErrAlreadyAssigned is returned when the guarded accept transition
	// loses the compare-and-set: the request is no longer pending.
	ErrAlreadyAssigned = errors.New("request not found or already updated")
)
