package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skepticlabs/skeptic-tui/internal/interview"
)

// StreamCallbacks receives the three event kinds a transcript stream can
// emit. OnComplete and OnError fire at most once each, and nothing fires
// after either of them or after the handle is closed.
type StreamCallbacks struct {
	OnMessage  func(interview.Message)
	OnComplete func()
	OnError    func(error)
}

// StreamHandle owns one open transcript stream. Close is idempotent and
// must be called when the owning view is torn down; after Close no
// further callbacks are delivered.
type StreamHandle struct {
	cancel    context.CancelFunc
	closeOnce sync.Once
	closed    atomic.Bool
	done      chan struct{}
}

// Close tears the stream down. Safe to call multiple times; a close
// initiated here never surfaces as an error callback.
func (h *StreamHandle) Close() {
	h.closeOnce.Do(func() {
		h.closed.Store(true)
		h.cancel()
	})
}

// Done is closed once the reader goroutine has exited.
func (h *StreamHandle) Done() <-chan struct{} {
	return h.done
}

// OpenStream opens the server-push transcript stream for one interview
// and returns immediately; every outcome, including a failed handshake,
// is reported through the callbacks. Each call opens an independent
// transport, so a caller replacing a stream must Close the old handle
// first to avoid a duplicate transcript.
func (c *Client) OpenStream(interviewID string, cb StreamCallbacks) *StreamHandle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &StreamHandle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		c.runStream(ctx, interviewID, cb, h)
	}()

	return h
}

// messageEnvelope is the body of a message push event.
type messageEnvelope struct {
	Type    string            `json:"type"`
	Payload interview.Message `json:"payload"`
}

// errorEnvelope is the body of a server-pushed error event.
type errorEnvelope struct {
	Payload json.RawMessage `json:"payload"`
}

// runStream performs the handshake and pumps frames until a terminal
// event, a transport failure, or caller teardown. It is the only
// goroutine invoking callbacks, so each terminal path returns right
// after dispatching and at-most-once falls out of the control flow.
func (c *Client) runStream(ctx context.Context, interviewID string, cb StreamCallbacks, h *StreamHandle) {
	fail := func(err error) {
		if h.closed.Load() {
			return
		}
		c.logger.Warn("stream failed", "interviewId", interviewID, "error", err)
		if cb.OnError != nil {
			cb.OnError(err)
		}
	}

	var stalled atomic.Bool
	var stallTimer *time.Timer
	if c.stallTimeout > 0 {
		stallTimer = time.AfterFunc(c.stallTimeout, func() {
			stalled.Store(true)
			h.cancel()
		})
		defer stallTimer.Stop()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.interviewURL(interviewID, "stream"), nil)
	if err != nil {
		fail(fmt.Errorf("build stream request: %w", err))
		return
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		switch {
		case h.closed.Load():
		case stalled.Load():
			fail(ErrStreamStalled)
		default:
			fail(fmt.Errorf("open stream: %w", err))
		}
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		fail(&RequestFailedError{Op: "open stream", Status: resp.StatusCode})
		return
	}

	c.logger.Info("stream connected", "interviewId", interviewID)

	reader := newSSEReader(resp.Body)
	defer reader.Close()

	for {
		name, data, err := reader.Next()
		if err != nil {
			switch {
			case h.closed.Load():
			case stalled.Load():
				fail(ErrStreamStalled)
			case err == io.EOF:
				// The transport reported itself fully closed without a
				// complete event; that is a real failure, not a blip.
				fail(ErrStreamClosed)
			default:
				fail(fmt.Errorf("read stream: %w", err))
			}
			return
		}

		if stallTimer != nil {
			stallTimer.Reset(c.stallTimeout)
		}

		// Frames without an event field are plain message events.
		if name == "" {
			name = "message"
		}

		switch name {
		case "message":
			var env messageEnvelope
			if err := json.Unmarshal(data, &env); err != nil {
				fail(fmt.Errorf("decode message event: %w", err))
				return
			}
			if env.Type != "message" {
				continue
			}
			if h.closed.Load() {
				return
			}
			if cb.OnMessage != nil {
				cb.OnMessage(env.Payload)
			}

		case "complete":
			if !json.Valid(data) {
				fail(fmt.Errorf("decode complete event: invalid JSON"))
				return
			}
			if h.closed.Load() {
				return
			}
			c.logger.Info("stream complete", "interviewId", interviewID)
			if cb.OnComplete != nil {
				cb.OnComplete()
			}
			return

		case "error":
			var env errorEnvelope
			if err := json.Unmarshal(data, &env); err != nil {
				fail(fmt.Errorf("decode error event: %w", err))
				return
			}
			fail(fmt.Errorf("server error: %s", string(env.Payload)))
			return

		default:
			// Unknown event kinds are skipped, not fatal.
		}
	}
}
