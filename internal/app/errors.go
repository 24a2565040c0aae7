package service

import "errors"

var (
	// ErrNoSnapshot indicates no cycle has published yet.
	ErrNoSnapshot = errors.New("no snapshot published yet")
)
