package store

import "errors"

// ErrIncompleteCredential is returned when saving a credential without both tokens.
var ErrIncompleteCredential = errors.New("credential requires both access and refresh token")
