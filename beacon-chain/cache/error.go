package cache

import "errors"

var (
	// ErrNotFound is returned by cache fetches that miss.
	ErrNotFound = errors.New("not found in cache")
)
