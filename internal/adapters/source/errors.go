package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrFetch  = errors.New("source fetch failed")
	ErrStatus = errors.New("source returned non-OK status")
	ErrParse  = errors.New("source payload malformed")
)
