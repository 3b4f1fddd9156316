package loader

import "errors"

var (
	// ErrFetch covers transport failures: DNS, connection refused, timeouts
	ErrFetch = errors.New("fetch collection")
	// ErrUnexpectedStatus is returned for any non-2xx response
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrDecode is returned when the body is not a JSON array of records
	ErrDecode = errors.New("decode collection")
	// ErrAlreadyStarted guards the single outstanding request
	ErrAlreadyStarted = errors.New("load already started")
)
