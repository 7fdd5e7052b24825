package usecase

import "errors"

var (
	// ErrNotFound means a referenced book, user or category does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the operation contradicts current state, e.g.
	// borrowing a book that is already on loan.
	ErrConflict = errors.New("conflict")
	// ErrAlreadyExists means a uniqueness rule was violated, e.g. a
	// duplicate e-mail on registration.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden means the caller is authenticated but not allowed to
	// perform the operation.
	ErrForbidden = errors.New("forbidden")
)
