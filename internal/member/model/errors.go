package model

import "errors"

var (
	// ErrMemberNotFound indicates that no member matched the lookup.
	ErrMemberNotFound = errors.New("member not found")
	// ErrAmbiguousMember indicates that a unique lookup matched more than one row.
	ErrAmbiguousMember = errors.New("multiple members matched unique lookup")
	// ErrInvalidUsername indicates that the provided username is invalid (e.g., empty).
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidAge indicates that the provided age is negative.
	ErrInvalidAge = errors.New("age must not be negative")
	// ErrInvalidPage indicates invalid offset/limit paging parameters.
	ErrInvalidPage = errors.New("invalid paging parameters")
)
