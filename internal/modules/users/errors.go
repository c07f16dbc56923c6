package users

import "errors"

var (
	ErrPhoneTaken         = errors.New("users: phone already registered")
	ErrInvalidCredentials = errors.New("users: invalid credentials")
	ErrWeakPassword       = errors.New("users: password too short")
	ErrNotFound           = errors.New("users: not found")
)
