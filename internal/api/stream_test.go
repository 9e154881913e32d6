package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skepticlabs/skeptic-tui/internal/interview"
)

const testWait = 5 * time.Second

// streamEvents collects stream callbacks for assertions.
type streamEvents struct {
	msgs     chan interview.Message
	complete chan struct{}
	errs     chan error
}

func newStreamEvents() *streamEvents {
	return &streamEvents{
		msgs:     make(chan interview.Message, 32),
		complete: make(chan struct{}, 1),
		errs:     make(chan error, 1),
	}
}

func (e *streamEvents) callbacks() StreamCallbacks {
	return StreamCallbacks{
		OnMessage:  func(m interview.Message) { e.msgs <- m },
		OnComplete: func() { e.complete <- struct{}{} },
		OnError:    func(err error) { e.errs <- err },
	}
}

func (e *streamEvents) waitError(t *testing.T) error {
	t.Helper()
	select {
	case err := <-e.errs:
		return err
	case <-time.After(testWait):
		t.Fatal("timed out waiting for error callback")
		return nil
	}
}

func (e *streamEvents) waitComplete(t *testing.T) {
	t.Helper()
	select {
	case <-e.complete:
	case <-time.After(testWait):
		t.Fatal("timed out waiting for complete callback")
	}
}

func (e *streamEvents) waitMessage(t *testing.T) interview.Message {
	t.Helper()
	select {
	case m := <-e.msgs:
		return m
	case <-time.After(testWait):
		t.Fatal("timed out waiting for message callback")
		return interview.Message{}
	}
}

// sseHandler writes the given frames as one event-stream response.
func sseHandler(t *testing.T, frames ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "text/event-stream" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, frame := range frames {
			fmt.Fprint(w, frame)
			flusher.Flush()
		}
	}
}

func messageFrame(id string, agent interview.Agent, text string) string {
	return fmt.Sprintf(
		"event: message\ndata: {\"type\":\"message\",\"payload\":{\"id\":%q,\"agent\":%q,\"message\":%q,\"timestamp\":\"2026-03-01T12:00:00Z\"}}\n\n",
		id, agent, text)
}

func streamClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(srv.URL), WithLogger(testLogger())}, opts...)
	return NewClient(opts...)
}

func TestStreamMessagesThenComplete(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t,
		messageFrame("m1", interview.AgentInterviewer, "What do you use today?"),
		messageFrame("m2", interview.AgentCustomer, "A spreadsheet, mostly."),
		"event: complete\ndata: {\"type\":\"complete\"}\n\n",
	))
	defer srv.Close()

	events := newStreamEvents()
	h := streamClient(t, srv).OpenStream("int-1", events.callbacks())
	defer h.Close()

	first := events.waitMessage(t)
	if first.ID != "m1" || first.Agent != interview.AgentInterviewer {
		t.Errorf("first message = %+v", first)
	}
	second := events.waitMessage(t)
	if second.ID != "m2" || second.Text != "A spreadsheet, mostly." {
		t.Errorf("second message = %+v", second)
	}
	events.waitComplete(t)

	select {
	case err := <-events.errs:
		t.Errorf("unexpected error callback: %v", err)
	default:
	}
}

func TestStreamUnnamedEventIsMessage(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t,
		"data: {\"type\":\"message\",\"payload\":{\"id\":\"m1\",\"agent\":\"customer\",\"message\":\"hi\",\"timestamp\":\"2026-03-01T12:00:00Z\"}}\n\n",
		"event: complete\ndata: {}\n\n",
	))
	defer srv.Close()

	events := newStreamEvents()
	h := streamClient(t, srv).OpenStream("int-1", events.callbacks())
	defer h.Close()

	if got := events.waitMessage(t); got.ID != "m1" {
		t.Errorf("message = %+v", got)
	}
	events.waitComplete(t)
}

func TestStreamUnknownEventSkipped(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t,
		"event: heartbeat\ndata: {}\n\n",
		messageFrame("m1", interview.AgentInterviewer, "still here"),
		"event: complete\ndata: {}\n\n",
	))
	defer srv.Close()

	events := newStreamEvents()
	h := streamClient(t, srv).OpenStream("int-1", events.callbacks())
	defer h.Close()

	if got := events.waitMessage(t); got.ID != "m1" {
		t.Errorf("message = %+v", got)
	}
	events.waitComplete(t)
}

func TestStreamServerError(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t,
		messageFrame("m1", interview.AgentInterviewer, "opening"),
		"event: error\ndata: {\"type\":\"error\",\"payload\":\"persona service unavailable\"}\n\n",
	))
	defer srv.Close()

	events := newStreamEvents()
	h := streamClient(t, srv).OpenStream("int-1", events.callbacks())
	defer h.Close()

	events.waitMessage(t)
	err := events.waitError(t)
	if err == nil || err.Error() == "" {
		t.Fatal("expected a descriptive error")
	}

	select {
	case <-events.complete:
		t.Error("complete must not fire after error")
	default:
	}
}

func TestStreamMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t,
		"event: message\ndata: {not json at all\n\n",
	))
	defer srv.Close()

	events := newStreamEvents()
	h := streamClient(t, srv).OpenStream("int-1", events.callbacks())
	defer h.Close()

	if err := events.waitError(t); err == nil {
		t.Fatal("malformed payload must surface through the error callback")
	}

	select {
	case m := <-events.msgs:
		t.Errorf("unexpected message callback: %+v", m)
	default:
	}
}

func TestStreamDisconnectBeforeComplete(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t,
		messageFrame("m1", interview.AgentCustomer, "then it just cut out"),
	))
	defer srv.Close()

	events := newStreamEvents()
	h := streamClient(t, srv).OpenStream("int-1", events.callbacks())
	defer h.Close()

	events.waitMessage(t)
	if err := events.waitError(t); !errors.Is(err, ErrStreamClosed) {
		t.Errorf("err = %v, want ErrStreamClosed", err)
	}
}

func TestStreamHandshakeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such interview", http.StatusNotFound)
	}))
	defer srv.Close()

	events := newStreamEvents()
	h := streamClient(t, srv).OpenStream("int-missing", events.callbacks())
	defer h.Close()

	err := events.waitError(t)
	var reqErr *RequestFailedError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error type = %T, want *RequestFailedError", err)
	}
	if reqErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d", reqErr.Status)
	}
}

func TestStreamCloseSilencesCallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	events := newStreamEvents()
	h := streamClient(t, srv).OpenStream("int-1", events.callbacks())

	h.Close()
	h.Close() // idempotent

	select {
	case <-h.Done():
	case <-time.After(testWait):
		t.Fatal("reader goroutine did not exit after Close")
	}

	select {
	case err := <-events.errs:
		t.Errorf("caller-initiated close surfaced as error: %v", err)
	case m := <-events.msgs:
		t.Errorf("unexpected message after close: %+v", m)
	case <-events.complete:
		t.Error("unexpected complete after close")
	default:
	}
}

func TestStreamStallTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	events := newStreamEvents()
	c := streamClient(t, srv, WithStallTimeout(100*time.Millisecond))
	h := c.OpenStream("int-1", events.callbacks())
	defer h.Close()

	if err := events.waitError(t); !errors.Is(err, ErrStreamStalled) {
		t.Errorf("err = %v, want ErrStreamStalled", err)
	}
}
