package model

import "errors"

var (
	// ErrNotValid is returned when an input fails validation before any I/O.
	ErrNotValid = errors.New("not valid")
	// ErrTransport is returned when the server could not be reached or
	// answered with a non-2xx status or an unreadable body.
	ErrTransport = errors.New("transport failure")
	// ErrServerFailure is returned when the server accepted the request but
	// reported the operation itself as failed.
	ErrServerFailure = errors.New("server reported failure")
	// ErrTimeout is returned when a poll bound was exceeded before the task
	// reached a terminal state.
	ErrTimeout = errors.New("poll timed out")
	// ErrParse is returned when a response was received but did not match
	// any accepted shape.
	ErrParse = errors.New("unexpected response shape")
)
