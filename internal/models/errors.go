package models

import "errors"

var (
	// ErrDuplicateUser wraps the integrity violation raised for a taken username or email.
	ErrDuplicateUser = errors.New("username or email already taken")
	ErrNotFound      = errors.New("record not found")
	ErrSelfFollow    = errors.New("users cannot follow themselves")
	ErrSelfLike      = errors.New("users cannot like their own messages")
)
