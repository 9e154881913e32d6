// Package app implements the bubbletea model for the skeptic TUI: the
// intake form, the live interview room, and the insights view.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skepticlabs/skeptic-tui/internal/api"
	"github.com/skepticlabs/skeptic-tui/internal/insights"
	"github.com/skepticlabs/skeptic-tui/internal/interview"
	"github.com/skepticlabs/skeptic-tui/internal/session"
	"github.com/skepticlabs/skeptic-tui/internal/ui"
)

// View selects which screen the model renders.
type View int

const (
	ViewIntake View = iota
	ViewRoom
	ViewInsights
)

const requestTimeout = 30 * time.Second

// Model is the root bubbletea model.
type Model struct {
	client *api.Client
	store  *session.Store
	demo   bool

	view   View
	width  int
	height int

	// Intake form state.
	intake intakeForm

	// Active session context; nil until an interview is started or a
	// stored context is restored.
	sessCtx *session.Context

	// Room state: the transcript state machine, the open stream handle
	// and the channel bridging stream callbacks into the update loop.
	sess         *interview.Session
	stream       *api.StreamHandle
	events       chan tea.Msg
	scroll       int
	liveTail     bool
	retryPending bool
	demoMsgs     []interview.Message

	// Insights state.
	report          *insights.Report
	insightsErr     string
	insightsLoading bool
	insightsTab     int

	spinner spinner.Model

	statusText      string
	statusTransient bool
}

// New creates the root model. The session bootstrap guard runs in Init:
// a stored context opens the room, anything else lands on intake.
func New(client *api.Client, store *session.Store, demo bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.SpinnerStyle

	return Model{
		client:   client,
		store:    store,
		demo:     demo,
		view:     ViewIntake,
		intake:   newIntakeForm(),
		liveTail: true,
		spinner:  sp,
	}
}

// Init loads the stored session context and starts the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadSessionCmd(m.store), m.spinner.Tick, m.intake.focusCmd())
}

// loadSessionCmd reads the session context store. A read error is
// treated like an absent context: the guard redirects to intake rather
// than surfacing an error.
func loadSessionCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return SessionLoadedMsg{}
		}
		ctx, err := store.Read()
		if err != nil {
			return SessionLoadedMsg{}
		}
		return SessionLoadedMsg{Ctx: ctx}
	}
}

// openStream bridges the callback-driven stream consumer into the
// bubbletea loop: callbacks push typed messages onto a channel that
// waitForStreamEvent drains one message per command.
func (m *Model) openStream(interviewID string) tea.Cmd {
	if m.stream != nil {
		// Never two live transports for one view.
		m.stream.Close()
	}

	events := make(chan tea.Msg, 64)
	m.events = events
	m.stream = m.client.OpenStream(interviewID, api.StreamCallbacks{
		OnMessage:  func(msg interview.Message) { events <- StreamMessageMsg{Message: msg} },
		OnComplete: func() { events <- StreamCompleteMsg{} },
		OnError:    func(err error) { events <- StreamErrorMsg{Err: err} },
	})

	return waitForStreamEvent(events)
}

// waitForStreamEvent delivers the next bridged stream event.
func waitForStreamEvent(events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

// enterRoom resets the transcript state machine and opens the stream
// (or starts demo playback) for the active session.
func (m *Model) enterRoom() tea.Cmd {
	m.view = ViewRoom
	m.sess = interview.NewSession()
	m.scroll = 0
	m.liveTail = true
	m.retryPending = false

	if m.demo {
		m.demoMsgs = interview.DemoConversation()
		return demoTickCmd(0)
	}
	return m.openStream(m.sessCtx.InterviewID)
}

// enterInsights switches to the insights view and fetches the report,
// re-checking the bootstrap guard first.
func (m *Model) enterInsights() tea.Cmd {
	if m.sessCtx == nil {
		m.view = ViewIntake
		return m.intake.focusCmd()
	}
	m.view = ViewInsights
	m.report = nil
	m.insightsErr = ""
	m.insightsLoading = true
	m.insightsTab = 0
	return fetchInsightsCmd(m.client, m.sessCtx.InterviewID, m.demo)
}

// startOver clears the stored context and returns to a fresh intake.
func (m *Model) startOver() tea.Cmd {
	if m.stream != nil {
		m.stream.Close()
		m.stream = nil
	}
	if m.store != nil {
		m.store.Clear()
	}
	m.sessCtx = nil
	m.sess = nil
	m.report = nil
	m.insightsErr = ""
	m.view = ViewIntake
	m.intake = newIntakeForm()
	return m.intake.focusCmd()
}

// clearTransientStatusCmd fires after a delay to clear transient status.
func clearTransientStatusCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientStatusMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.intake.setWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SessionLoadedMsg:
		if msg.Ctx == nil {
			// Bootstrap guard: no usable context, stay on intake and
			// perform no network calls.
			m.view = ViewIntake
			return m, nil
		}
		m.sessCtx = msg.Ctx
		cmd := m.enterRoom()
		return m, cmd

	case InterviewStartedMsg:
		ctx := session.Context{
			InterviewID: msg.InterviewID,
			Persona:     msg.Persona,
			Problem:     msg.Problem,
			Solution:    msg.Solution,
		}
		if m.store != nil {
			if err := m.store.Write(ctx); err != nil {
				// The run is live either way; the context just won't
				// survive a restart.
				m.statusText = "warning: session not persisted"
				m.statusTransient = true
			}
		}
		m.sessCtx = &ctx
		m.intake.submitting = false
		cmd := m.enterRoom()
		if m.statusTransient {
			return m, tea.Batch(cmd, clearTransientStatusCmd())
		}
		return m, cmd

	case StartFailedMsg:
		m.intake.submitting = false
		m.intake.errMsg = msg.Err.Error()
		return m, nil

	case StreamMessageMsg:
		if m.sess != nil && m.sess.ApplyMessage(msg.Message) {
			if m.liveTail {
				m.scroll = m.maxTranscriptScroll()
			}
		}
		if m.sess != nil && m.sess.Live() && m.events != nil {
			return m, waitForStreamEvent(m.events)
		}
		return m, nil

	case StreamCompleteMsg:
		if m.sess != nil {
			m.sess.ApplyComplete()
		}
		if m.stream != nil {
			m.stream.Close()
			m.stream = nil
		}
		return m, nil

	case StreamErrorMsg:
		if m.sess != nil {
			m.sess.ApplyError(msg.Err)
		}
		if m.stream != nil {
			m.stream.Close()
			m.stream = nil
		}
		return m, nil

	case RetryStatusMsg:
		m.retryPending = false
		if msg.Err != nil {
			m.statusText = "retry failed: " + msg.Err.Error()
			m.statusTransient = true
			return m, clearTransientStatusCmd()
		}
		if msg.Status.IsComplete {
			cmd := m.enterInsights()
			return m, cmd
		}
		cmd := m.enterRoom()
		return m, cmd

	case InsightsLoadedMsg:
		m.insightsLoading = false
		m.report = msg.Report
		return m, nil

	case InsightsFailedMsg:
		m.insightsLoading = false
		m.insightsErr = msg.Err.Error()
		return m, nil

	case ClearTransientStatusMsg:
		if m.statusTransient {
			m.statusText = ""
			m.statusTransient = false
		}
		return m, nil

	case demoTickMsg:
		return m.handleDemoTick(msg)
	}

	// Everything else (cursor blink and friends) goes to the form.
	if m.view == ViewIntake {
		var cmd tea.Cmd
		m.intake, cmd = m.intake.update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes key presses to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyCtrlC {
		return m.quit()
	}

	switch m.view {
	case ViewIntake:
		return m.handleIntakeKey(msg)
	case ViewRoom:
		return m.handleRoomKey(msg)
	case ViewInsights:
		return m.handleInsightsKey(msg)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.stream != nil {
		m.stream.Close()
	}
	if m.store != nil {
		m.store.Close()
	}
	return m, tea.Quit
}

// startRetryCmd consults the polling fallback before reconnecting, so a
// run that finished while we were disconnected goes straight to insights.
func startRetryCmd(client *api.Client, interviewID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		status, err := client.GetStatus(ctx, interviewID)
		return RetryStatusMsg{Status: status, Err: err}
	}
}

// fetchInsightsCmd requests the final report, or serves the canned one
// in demo mode.
func fetchInsightsCmd(client *api.Client, interviewID string, demo bool) tea.Cmd {
	return func() tea.Msg {
		if demo {
			report := insights.MockReport
			return InsightsLoadedMsg{Report: &report}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		report, err := client.GetInsights(ctx, interviewID)
		if err != nil {
			return InsightsFailedMsg{Err: err}
		}
		return InsightsLoadedMsg{Report: report}
	}
}

// View renders the active screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.view {
	case ViewRoom:
		return m.viewRoom()
	case ViewInsights:
		return m.viewInsights()
	default:
		return m.viewIntake()
	}
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("SKEPTIC")

	var personaInfo string
	if m.sessCtx != nil {
		personaInfo = ui.DimStyle.Render(" — " + m.sessCtx.Persona.Label())
	}

	var demoBadge string
	if m.demo {
		demoBadge = ui.ScrollBadgeStyle.Render(" [DEMO]")
	}

	return title + personaInfo + demoBadge
}

func (m Model) renderFooter(parts []string) string {
	parts = append(parts, ui.FooterKeyStyle.Render("ctrl+c")+ui.FooterDescStyle.Render(" Quit"))
	return strings.Join(parts, "  ")
}

// Helpers

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
