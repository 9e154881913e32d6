package interview

import (
	"fmt"
	"time"
)

// DemoConversation returns the canned two-agent exchange played back in
// demo mode. Timestamps are spaced backwards from now so the transcript
// reads like a finished run.
func DemoConversation() []Message {
	turns := []struct {
		agent Agent
		text  string
	}{
		{AgentInterviewer, "So, how do you currently manage your inventory without software?"},
		{AgentCustomer, "Honestly? Just Excel spreadsheets. It's fine."},
		{AgentInterviewer, "And how much time does that manual process cost you weekly?"},
		{AgentCustomer, "Maybe 2 hours? It's annoying but I'm too busy to learn a new system right now."},
		{AgentInterviewer, "When was the last time a spreadsheet mistake actually cost you money?"},
		{AgentCustomer, "A few months ago we double-ordered stock. Maybe eight hundred dollars? We laughed it off."},
		{AgentInterviewer, "Have you ever looked at tools that would catch that for you?"},
		{AgentCustomer, "I googled once, saw the pricing pages, and went back to my spreadsheet."},
	}

	base := time.Now().Add(-time.Duration(len(turns)) * 20 * time.Second)
	msgs := make([]Message, len(turns))
	for i, turn := range turns {
		msgs[i] = Message{
			ID:        fmt.Sprintf("demo-%d", i+1),
			Agent:     turn.agent,
			Text:      turn.text,
			Timestamp: base.Add(time.Duration(i) * 20 * time.Second),
		}
	}
	return msgs
}
