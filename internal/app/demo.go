package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// demoTickInterval paces the canned conversation so it reads like a
// live stream rather than dumping all at once.
const demoTickInterval = 900 * time.Millisecond

func demoTickCmd(index int) tea.Cmd {
	return tea.Tick(demoTickInterval, func(time.Time) tea.Msg {
		return demoTickMsg{index: index}
	})
}

// handleDemoTick feeds the next canned message into the session, or
// completes the run once the script is exhausted.
func (m Model) handleDemoTick(msg demoTickMsg) (tea.Model, tea.Cmd) {
	if m.sess == nil || !m.sess.Live() {
		return m, nil
	}

	if msg.index >= len(m.demoMsgs) {
		m.sess.ApplyComplete()
		return m, nil
	}

	if m.sess.ApplyMessage(m.demoMsgs[msg.index]) && m.liveTail {
		m.scroll = m.maxTranscriptScroll()
	}
	return m, demoTickCmd(msg.index + 1)
}
