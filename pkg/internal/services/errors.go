package services

import "errors"

// Terminal conditions surfaced directly to the caller. Anything else coming
// out of this package is a dependency failure and is wrapped with context.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrAlreadyFollowing   = errors.New("already following this account")
	ErrNotFollowing       = errors.New("not following this account")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrWeakPassword       = errors.New("password does not meet the password policy")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("invalid or revoked session token")
	ErrNoNotifications    = errors.New("empty notifications")
)
