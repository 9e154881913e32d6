// Package interview holds the transcript domain types and the session
// state machine that assembles push events into an ordered transcript.
package interview

import "time"

// Agent identifies which of the two simulated speakers produced a turn.
type Agent string

const (
	AgentInterviewer Agent = "interviewer"
	AgentCustomer    Agent = "customer"
)

// Message is one turn of the conversation. Ids are unique within a
// session; ordering is the arrival order of the push events.
type Message struct {
	ID        string    `json:"id"`
	Agent     Agent     `json:"agent"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
