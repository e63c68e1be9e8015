package errors

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrWeakPassword       = errors.New("password does not meet strength requirements")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account has been blocked by admin")
	ErrAccountPending     = errors.New("account pending admin approval")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAdminImmutable     = errors.New("cannot modify admin accounts")
	ErrInvalidStatus      = errors.New("invalid account status")
)
