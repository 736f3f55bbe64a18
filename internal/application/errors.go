package application

import "errors"

// Engine-level failures, returned as typed results and mapped to HTTP status
// by the handlers.
var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrAvatarNotFound     = errors.New("unknown avatar")
	ErrAvatarLocked       = errors.New("avatar not unlocked yet")
)
