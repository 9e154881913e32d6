package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skepticlabs/skeptic-tui/internal/insights"
	"github.com/skepticlabs/skeptic-tui/internal/ui"
)

// insightsTabs are the list sections below the verdict banner.
var insightsTabs = []string{"Signals", "Risks", "Challenges", "Next steps", "Quotes"}

// handleInsightsKey processes key presses in the insights view.
func (m Model) handleInsightsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper:
		return m.quit()

	case KeyTab, KeyRight:
		m.insightsTab = (m.insightsTab + 1) % len(insightsTabs)
		return m, nil

	case KeyShiftTab, KeyLeft:
		m.insightsTab = (m.insightsTab + len(insightsTabs) - 1) % len(insightsTabs)
		return m, nil

	case KeyRetry:
		if m.insightsErr != "" && !m.insightsLoading {
			cmd := m.enterInsights()
			return m, cmd
		}
		return m, nil

	case KeyNew:
		cmd := m.startOver()
		return m, cmd
	}
	return m, nil
}

// viewInsights renders the final analysis.
func (m Model) viewInsights() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	switch {
	case m.insightsLoading:
		b.WriteString("\n" + m.spinner.View() + " Analyzing interview insights...\n")

	case m.insightsErr != "":
		b.WriteString("\n")
		b.WriteString(ui.ErrorStyle.Render("Failed to load insights: ") + ui.ErrorTextStyle.Render(m.insightsErr))
		b.WriteString("\n\n")
		b.WriteString(ui.DimStyle.Render("  Press r to try again."))
		b.WriteString("\n")

	case m.report != nil:
		m.renderReport(&b, m.report)
	}

	b.WriteString("\n")
	parts := []string{
		ui.FooterKeyStyle.Render("Tab") + ui.FooterDescStyle.Render(" Section"),
		ui.FooterKeyStyle.Render("n") + ui.FooterDescStyle.Render(" New interview"),
		ui.FooterKeyStyle.Render("q") + ui.FooterDescStyle.Render(" Quit"),
	}
	b.WriteString(m.renderFooter(parts))
	return b.String()
}

func (m Model) renderReport(b *strings.Builder, r *insights.Report) {
	b.WriteString("\n")
	b.WriteString("  " + verdictStyle(r.Verdict).Render(string(r.Verdict)))
	b.WriteString(ui.StatusStyle.Render(fmt.Sprintf("  %d%% confidence", r.Confidence)))
	b.WriteString("\n\n")

	dims := []struct {
		name string
		d    insights.Dimension
	}{
		{"Problem", r.Problem},
		{"Market", r.Market},
		{"Willingness to pay", r.WillingnessToPay},
	}
	for _, dim := range dims {
		score := scoreStyle(dim.d.Score).Render(fmt.Sprintf("%.1f", dim.d.Score))
		b.WriteString("  " + padRight(ui.PanelTitleStyle.Render(dim.name), 22) + score +
			ui.DimStyle.Render("  "+dim.d.Label))
		b.WriteString("\n")
		for _, line := range wrapText(dim.d.Reasoning, max(20, m.width-6)) {
			b.WriteString(ui.StatusStyle.Render("    " + line))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	// Tab bar.
	var tabs []string
	for i, name := range insightsTabs {
		if i == m.insightsTab {
			tabs = append(tabs, ui.PanelTitleActiveStyle.Render(name))
		} else {
			tabs = append(tabs, ui.DimStyle.Render(name))
		}
	}
	b.WriteString("  " + strings.Join(tabs, ui.DividerStyle.Render(" │ ")))
	b.WriteString("\n\n")

	for _, item := range m.activeTabItems(r) {
		first := true
		for _, line := range wrapText(item, max(20, m.width-8)) {
			if first {
				b.WriteString("  " + m.tabBullet() + line)
				first = false
			} else {
				b.WriteString("      " + line)
			}
			b.WriteString("\n")
		}
	}
}

func (m Model) activeTabItems(r *insights.Report) []string {
	switch insightsTabs[m.insightsTab] {
	case "Signals":
		return r.PositiveSignals
	case "Risks":
		return r.RiskSignals
	case "Challenges":
		return r.ExecutionChallenges
	case "Next steps":
		return r.NextSteps
	case "Quotes":
		return r.Quotes
	}
	return nil
}

func (m Model) tabBullet() string {
	if insightsTabs[m.insightsTab] == "Quotes" {
		return ui.QuoteStyle.Render("“ ")
	}
	return ui.DimStyle.Render("• ")
}

func verdictStyle(v insights.Verdict) lipgloss.Style {
	switch v {
	case insights.VerdictGo:
		return ui.VerdictGoStyle
	case insights.VerdictNoGo:
		return ui.VerdictNoGoStyle
	default:
		return ui.VerdictMaybeStyle
	}
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 7:
		return ui.ScoreHighStyle
	case score >= 4:
		return ui.ScoreMidStyle
	default:
		return ui.ScoreLowStyle
	}
}
