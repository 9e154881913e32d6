package app

import (
	"github.com/skepticlabs/skeptic-tui/internal/api"
	"github.com/skepticlabs/skeptic-tui/internal/insights"
	"github.com/skepticlabs/skeptic-tui/internal/interview"
	"github.com/skepticlabs/skeptic-tui/internal/persona"
	"github.com/skepticlabs/skeptic-tui/internal/session"
)

// SessionLoadedMsg carries the stored session context read at startup.
// Ctx is nil when no usable context exists.
type SessionLoadedMsg struct {
	Ctx *session.Context
}

// InterviewStartedMsg is sent when the backend accepted a new run.
type InterviewStartedMsg struct {
	InterviewID string
	Persona     persona.Persona
	Problem     string
	Solution    string
}

// StartFailedMsg is sent when the start request failed; no session
// context has been written.
type StartFailedMsg struct {
	Err error
}

// StreamMessageMsg wraps one transcript turn pushed by the server.
type StreamMessageMsg struct {
	Message interview.Message
}

// StreamCompleteMsg signals the server finished the run.
type StreamCompleteMsg struct{}

// StreamErrorMsg signals a terminal stream failure; the partial
// transcript is retained.
type StreamErrorMsg struct {
	Err error
}

// RetryStatusMsg carries the polling-fallback status consulted before
// retrying a failed stream.
type RetryStatusMsg struct {
	Status *api.StatusResponse
	Err    error
}

// InsightsLoadedMsg carries the final analysis report.
type InsightsLoadedMsg struct {
	Report *insights.Report
}

// InsightsFailedMsg is sent when the insights request failed.
type InsightsFailedMsg struct {
	Err error
}

// ClearTransientStatusMsg clears a transient status line after a delay.
type ClearTransientStatusMsg struct{}

// demoTickMsg advances the canned demo conversation.
type demoTickMsg struct {
	index int
}
