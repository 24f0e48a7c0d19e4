package store

import "errors"

var ErrAlreadyInitialized = errors.New("workspace already has a board")
