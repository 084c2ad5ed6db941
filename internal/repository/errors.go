package repository

import "errors"

// Sentinel errors shared by every repository. Handlers map these to 404 and
// 409 with errors.Is; anything else is a dependency failure (500).
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("game username already exists")
)
