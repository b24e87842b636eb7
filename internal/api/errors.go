package api

import (
	"errors"
	"fmt"
)

const maxErrorBody = 64 << 10

// StatusError is a failure reported by the server: a non-2xx status with a
// plain text body meant for the player.
type StatusError struct {
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s: status %d: %s", e.Path, e.Code, e.Body)
}

// TransportError means the request never produced a response.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api %s: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsStatus reports whether err is a server-reported failure.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// ErrorText is the text shown to the player for err: the raw body for server
// failures, the error itself otherwise.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Body
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Err.Error()
	}
	return err.Error()
}
