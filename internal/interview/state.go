package interview

// Phase is the lifecycle position of a streamed interview session.
type Phase int

const (
	// PhaseConnecting covers the window between opening the stream and
	// the first message event.
	PhaseConnecting Phase = iota
	// PhaseStreaming means at least one message has arrived and the run
	// is still in progress.
	PhaseStreaming
	// PhaseCompleted is terminal: the server signalled the run finished.
	PhaseCompleted
	// PhaseFailed is terminal: the transport failed or the server pushed
	// an error. Whatever transcript was assembled is retained.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseConnecting:
		return "connecting"
	case PhaseStreaming:
		return "streaming"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Session assembles stream callbacks into an ordered, append-only
// transcript and tracks the lifecycle phase. One transition method per
// event kind; terminal phases ignore every further event, so a late
// callback from an already-closed stream can never corrupt the state.
//
// Session is not safe for concurrent use; it is driven from the single
// bubbletea update loop.
type Session struct {
	phase   Phase
	entries []Message
	err     error
}

// NewSession returns a session in PhaseConnecting with an empty transcript.
func NewSession() *Session {
	return &Session{phase: PhaseConnecting}
}

// ApplyMessage appends one turn to the transcript. The first message
// moves the session from Connecting to Streaming. Returns false if the
// session is terminal and the event was ignored.
func (s *Session) ApplyMessage(m Message) bool {
	if s.terminal() {
		return false
	}
	s.phase = PhaseStreaming
	s.entries = append(s.entries, m)
	return true
}

// ApplyComplete freezes the transcript and moves to PhaseCompleted.
// Returns false if the session was already terminal.
func (s *Session) ApplyComplete() bool {
	if s.terminal() {
		return false
	}
	s.phase = PhaseCompleted
	return true
}

// ApplyError moves to PhaseFailed, retaining the partial transcript.
// Returns false if the session was already terminal.
func (s *Session) ApplyError(err error) bool {
	if s.terminal() {
		return false
	}
	s.phase = PhaseFailed
	s.err = err
	return true
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Live reports whether more events may still arrive.
func (s *Session) Live() bool { return !s.terminal() }

// Err returns the failure recorded by ApplyError, if any.
func (s *Session) Err() error { return s.err }

// Len returns the number of transcript entries.
func (s *Session) Len() int { return len(s.entries) }

// Transcript returns a snapshot copy of the transcript in arrival order.
func (s *Session) Transcript() []Message {
	out := make([]Message, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Session) terminal() bool {
	return s.phase == PhaseCompleted || s.phase == PhaseFailed
}
