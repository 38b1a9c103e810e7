package sysuser

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameAlreadyExists is returned when creating a user with a taken username
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrEmptyUsername is returned when a create request has no username
	ErrEmptyUsername = errors.New("username cannot be empty")
	// ErrEmptyPassword is returned when a create request has no password
	ErrEmptyPassword = errors.New("password cannot be empty")
)
