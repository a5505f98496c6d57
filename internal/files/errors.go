package files

import "errors"

// ErrNotFound indicates no upload record matched the requested filename.
var ErrNotFound = errors.New("file not found")

// ErrInvalidInput indicates the caller supplied an unusable filename or payload.
var ErrInvalidInput = errors.New("invalid input")
