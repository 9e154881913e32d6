package api

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestFailedError reports a non-2xx backend response. Use errors.As
// to distinguish it from transport-level failures.
type RequestFailedError struct {
	Op     string
	Status int
	Body   string
}

func (e *RequestFailedError) Error() string {
	text := http.StatusText(e.Status)
	if text == "" {
		text = "unexpected status"
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.Status, text)
}

// ErrStreamStalled is reported when the stream delivers no events within
// the client's stall timeout.
var ErrStreamStalled = errors.New("stream stalled: no events received")

// ErrStreamClosed is reported when the transport closes before the
// server signalled completion.
var ErrStreamClosed = errors.New("stream closed before completion")
