package identity

import "errors"

var (
	// ErrDuplicateEmail signals an email uniqueness violation, whether from
	// the pre-check or from the store's unique index at write time.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrNotFound signals that no user matches the given id or email.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot probe which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDeactivated rejects login or session use by an inactive account.
	ErrAccountDeactivated = errors.New("account is deactivated")

	// ErrSelfDeactivation rejects an admin deactivating their own account.
	ErrSelfDeactivation = errors.New("cannot deactivate your own account")
)
