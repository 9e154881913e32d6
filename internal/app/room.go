package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skepticlabs/skeptic-tui/internal/interview"
	"github.com/skepticlabs/skeptic-tui/internal/ui"
)

// handleRoomKey processes key presses in the interview room.
func (m Model) handleRoomKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper:
		return m.quit()

	case KeyUp:
		m.liveTail = false
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	case KeyDown:
		maxScroll := m.maxTranscriptScroll()
		m.scroll++
		if m.scroll >= maxScroll {
			m.scroll = maxScroll
			m.liveTail = true
		}
		return m, nil

	case KeyEnter:
		if m.sess != nil && m.sess.Phase() == interview.PhaseCompleted {
			cmd := m.enterInsights()
			return m, cmd
		}
		return m, nil

	case KeyRetry:
		if m.sess == nil || m.sess.Phase() != interview.PhaseFailed || m.retryPending {
			return m, nil
		}
		if m.demo {
			cmd := m.enterRoom()
			return m, cmd
		}
		m.retryPending = true
		return m, startRetryCmd(m.client, m.sessCtx.InterviewID)

	case KeyNew:
		cmd := m.startOver()
		return m, cmd
	}

	return m, nil
}

// viewRoom renders the live transcript.
func (m Model) viewRoom() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderRoomStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderTranscript())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.sess != nil && m.sess.Phase() == interview.PhaseFailed && m.sess.Err() != nil {
		sections = append(sections,
			ui.ErrorStyle.Render("Error: ")+ui.ErrorTextStyle.Render(m.sess.Err().Error()))
	}
	if m.statusText != "" {
		sections = append(sections, ui.StatusStyle.Render(m.statusText))
	}

	sections = append(sections, m.renderRoomFooter())
	return strings.Join(sections, "\n")
}

func (m Model) renderRoomStatusBar() string {
	if m.sess == nil {
		return ui.IdleDotStyle.Render("○ IDLE")
	}

	var dot string
	switch m.sess.Phase() {
	case interview.PhaseConnecting:
		dot = m.spinner.View() + " CONNECTING"
	case interview.PhaseStreaming:
		dot = ui.LiveDotStyle.Render("● LIVE")
	case interview.PhaseCompleted:
		dot = ui.DoneDotStyle.Render("✓ COMPLETE")
	case interview.PhaseFailed:
		dot = ui.ErrorStyle.Render("✗ FAILED")
	}

	count := m.sess.Len()
	plural := "s"
	if count == 1 {
		plural = ""
	}
	counter := ui.StatusStyle.Render(fmt.Sprintf("  %d message%s", count, plural))

	var badge string
	if m.sess.Live() {
		if m.liveTail {
			badge = "  " + ui.LiveBadgeStyle.Render("TAIL")
		} else {
			badge = "  " + ui.ScrollBadgeStyle.Render("SCROLL")
		}
	}

	return dot + counter + badge
}

// renderTranscript builds the transcript window with timestamps and
// per-agent coloring, honoring the live tail / scroll position.
func (m Model) renderTranscript() string {
	var lines []string
	height := m.transcriptVisibleLines()

	transcript := []interview.Message{}
	if m.sess != nil {
		transcript = m.sess.Transcript()
	}

	if len(transcript) == 0 {
		if m.sess != nil && m.sess.Phase() == interview.PhaseConnecting {
			lines = append(lines, "", ui.DimStyle.Render("  Waiting for the agents to start talking..."))
		} else {
			lines = append(lines, "", ui.DimStyle.Render("  No transcript."))
		}
	} else {
		// Prefix: "  [HH:MM:SS] [INT] ". Wrapped continuation lines
		// stay aligned under the text.
		prefixWidth := 19
		textWidth := max(10, m.width-prefixWidth-2)
		indentStr := strings.Repeat(" ", prefixWidth)

		var displayLines []string
		for _, msg := range transcript {
			ts := ui.TimestampStyle.Render(msg.Timestamp.Format("[15:04:05]"))
			var agent string
			if msg.Agent == interview.AgentCustomer {
				agent = ui.CustomerStyle.Render("[CUS] ")
			} else {
				agent = ui.InterviewerStyle.Render("[INT] ")
			}
			wrapped := wrapText(msg.Text, textWidth)
			displayLines = append(displayLines, ts+" "+agent+wrapped[0])
			for _, wl := range wrapped[1:] {
				displayLines = append(displayLines, indentStr+wl)
			}
		}

		if m.sess != nil && m.sess.Live() {
			displayLines = append(displayLines, ui.DimStyle.Render("  ⟳ interview in progress..."))
		}

		start := 0
		if m.liveTail {
			if len(displayLines) > height {
				start = len(displayLines) - height
			}
		} else {
			start = m.scroll
		}
		if start < 0 {
			start = 0
		}
		end := min(start+height, len(displayLines))

		for i := start; i < end; i++ {
			lines = append(lines, "  "+displayLines[i])
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRoomFooter() string {
	var parts []string

	if m.sess != nil {
		switch m.sess.Phase() {
		case interview.PhaseCompleted:
			parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" View insights"))
		case interview.PhaseFailed:
			parts = append(parts, ui.FooterKeyStyle.Render("r")+ui.FooterDescStyle.Render(" Retry"))
		}
	}
	parts = append(parts, ui.FooterKeyStyle.Render("↑↓")+ui.FooterDescStyle.Render(" Scroll"))
	parts = append(parts, ui.FooterKeyStyle.Render("n")+ui.FooterDescStyle.Render(" New interview"))
	parts = append(parts, ui.FooterKeyStyle.Render("q")+ui.FooterDescStyle.Render(" Quit"))

	return m.renderFooter(parts)
}

func (m Model) maxTranscriptScroll() int {
	totalLines := 0
	if m.sess != nil {
		totalLines = m.sess.Len()
		if m.sess.Live() {
			totalLines++
		}
	}
	visible := m.transcriptVisibleLines()
	if totalLines <= visible {
		return 0
	}
	return totalLines - visible
}

func (m Model) transcriptVisibleLines() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + status(1) + dividers(2) + error(1) + footer(1) + padding
	reserved := 7
	return max(5, m.height-reserved)
}
