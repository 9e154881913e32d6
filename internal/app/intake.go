package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skepticlabs/skeptic-tui/internal/api"
	"github.com/skepticlabs/skeptic-tui/internal/persona"
	"github.com/skepticlabs/skeptic-tui/internal/ui"
)

// Intake step 1 fields, top to bottom. The kind and budget rows are
// toggles; the rest are text inputs.
const (
	fldKind = iota
	fldJTBD
	fldAlt
	fldExtra1 // psychographics (b2c) | industry (b2b)
	fldExtra2 // age range (b2c) | role (b2b)
	fldExtra3 // location (b2c) | company size (b2b)
	fldBudget
	fieldCount
)

// inputIdx maps a focusable field to its slot in intakeForm.inputs.
func inputIdx(field int) int { return field - fldJTBD }

const numInputs = 5

// intakeForm holds the two-step intake flow: define the persona, then
// frame the problem/solution pair.
type intakeForm struct {
	step  int // 1 = persona, 2 = business context
	kind  persona.Kind
	focus int
	input [numInputs]textinput.Model

	budget int // index into budgetOptions(kind)

	problem  textarea.Model
	solution textarea.Model
	ctxFocus int // 0 = problem, 1 = solution

	errMsg     string
	submitting bool
}

func budgetOptions(kind persona.Kind) []persona.BudgetAuthority {
	if kind == persona.KindOrganization {
		return []persona.BudgetAuthority{persona.BudgetCostCenter, persona.BudgetRecommender, persona.BudgetNone}
	}
	return []persona.BudgetAuthority{persona.BudgetPersonal, persona.BudgetHousehold}
}

func newIntakeForm() intakeForm {
	f := intakeForm{
		step:  1,
		kind:  persona.KindIndividual,
		focus: fldKind,
	}

	for i := range f.input {
		in := textinput.New()
		in.CharLimit = 0
		in.Prompt = "> "
		f.input[i] = in
	}
	f.input[inputIdx(fldJTBD)].Placeholder = "e.g. 'Save $50 on their annual travel'"
	f.input[inputIdx(fldAlt)].Placeholder = "What do they use today?"
	f.applyKindPlaceholders()

	f.problem = textarea.New()
	f.problem.Placeholder = "The problem they are facing"
	f.problem.SetHeight(4)
	f.solution = textarea.New()
	f.solution.Placeholder = "The solution you are proposing"
	f.solution.SetHeight(4)

	return f
}

func (f *intakeForm) applyKindPlaceholders() {
	if f.kind == persona.KindOrganization {
		f.input[inputIdx(fldExtra1)].Placeholder = "Industry, e.g. 'Logistics'"
		f.input[inputIdx(fldExtra2)].Placeholder = "Role, e.g. 'Operations manager'"
		f.input[inputIdx(fldExtra3)].Placeholder = "Company size, e.g. '50-200'"
	} else {
		f.input[inputIdx(fldExtra1)].Placeholder = "Psychographics, e.g. 'Budget conscious, early adopter'"
		f.input[inputIdx(fldExtra2)].Placeholder = "Age range, e.g. '25-34'"
		f.input[inputIdx(fldExtra3)].Placeholder = "Location, e.g. 'San Francisco, USA'"
	}
}

// setKind switches the persona shape, keeping the shared fields and
// clearing the kind-specific ones.
func (f *intakeForm) setKind(kind persona.Kind) {
	if f.kind == kind {
		return
	}
	f.kind = kind
	f.budget = 0
	for _, fld := range []int{fldExtra1, fldExtra2, fldExtra3} {
		f.input[inputIdx(fld)].SetValue("")
	}
	f.applyKindPlaceholders()
}

func (f *intakeForm) setWidth(width int) {
	w := max(20, min(72, width-8))
	for i := range f.input {
		f.input[i].Width = w
	}
	f.problem.SetWidth(w)
	f.solution.SetWidth(w)
}

// focusCmd focuses whatever field is active and returns its blink command.
func (f *intakeForm) focusCmd() tea.Cmd {
	if f.step == 2 {
		f.problem.Blur()
		f.solution.Blur()
		if f.ctxFocus == 0 {
			return f.problem.Focus()
		}
		return f.solution.Focus()
	}

	for i := range f.input {
		f.input[i].Blur()
	}
	if f.focus >= fldJTBD && f.focus <= fldExtra3 {
		return f.input[inputIdx(f.focus)].Focus()
	}
	return nil
}

// update forwards non-key messages (cursor blink) to the focused widget.
func (f intakeForm) update(msg tea.Msg) (intakeForm, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if f.step == 2 {
		f.problem, cmd = f.problem.Update(msg)
		cmds = append(cmds, cmd)
		f.solution, cmd = f.solution.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		for i := range f.input {
			f.input[i], cmd = f.input[i].Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return f, tea.Batch(cmds...)
}

// buildPersona assembles the persona from the current field values.
func (f intakeForm) buildPersona() persona.Persona {
	p := persona.Persona{
		Kind:               f.kind,
		JobToBeDone:        strings.TrimSpace(f.input[inputIdx(fldJTBD)].Value()),
		CurrentAlternative: strings.TrimSpace(f.input[inputIdx(fldAlt)].Value()),
		BudgetAuthority:    budgetOptions(f.kind)[f.budget],
	}
	if f.kind == persona.KindOrganization {
		p.Industry = strings.TrimSpace(f.input[inputIdx(fldExtra1)].Value())
		p.Role = strings.TrimSpace(f.input[inputIdx(fldExtra2)].Value())
		p.CompanySize = strings.TrimSpace(f.input[inputIdx(fldExtra3)].Value())
	} else {
		p.Psychographics = strings.TrimSpace(f.input[inputIdx(fldExtra1)].Value())
		p.AgeRange = strings.TrimSpace(f.input[inputIdx(fldExtra2)].Value())
		p.Location = strings.TrimSpace(f.input[inputIdx(fldExtra3)].Value())
	}
	return p
}

// handleIntakeKey drives the form. Tab/up/down move between fields;
// left/right operate the toggle rows; ctrl+s submits step 2.
func (m Model) handleIntakeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.intake.submitting {
		return m, nil
	}

	if m.intake.step == 2 {
		return m.handleIntakeStep2Key(msg)
	}

	switch msg.String() {
	case KeyTab, KeyDown:
		m.intake.focus = (m.intake.focus + 1) % fieldCount
		return m, m.intake.focusCmd()

	case KeyShiftTab, KeyUp:
		m.intake.focus = (m.intake.focus + fieldCount - 1) % fieldCount
		return m, m.intake.focusCmd()

	case KeyLeft, KeyRight:
		switch m.intake.focus {
		case fldKind:
			if m.intake.kind == persona.KindIndividual {
				m.intake.setKind(persona.KindOrganization)
			} else {
				m.intake.setKind(persona.KindIndividual)
			}
			return m, nil
		case fldBudget:
			opts := budgetOptions(m.intake.kind)
			if msg.String() == KeyRight {
				m.intake.budget = (m.intake.budget + 1) % len(opts)
			} else {
				m.intake.budget = (m.intake.budget + len(opts) - 1) % len(opts)
			}
			return m, nil
		}

	case KeyEnter:
		if m.intake.focus == fldBudget {
			p := m.intake.buildPersona()
			if err := p.Validate(); err != nil {
				m.intake.errMsg = err.Error()
				return m, nil
			}
			m.intake.errMsg = ""
			m.intake.step = 2
			m.intake.ctxFocus = 0
			return m, m.intake.focusCmd()
		}
		m.intake.focus = (m.intake.focus + 1) % fieldCount
		return m, m.intake.focusCmd()
	}

	// Anything else is text entry for the focused input.
	var cmd tea.Cmd
	if m.intake.focus >= fldJTBD && m.intake.focus <= fldExtra3 {
		idx := inputIdx(m.intake.focus)
		m.intake.input[idx], cmd = m.intake.input[idx].Update(msg)
	}
	return m, cmd
}

func (m Model) handleIntakeStep2Key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.intake.step = 1
		m.intake.errMsg = ""
		return m, m.intake.focusCmd()

	case KeyTab, KeyShiftTab:
		m.intake.ctxFocus = 1 - m.intake.ctxFocus
		return m, m.intake.focusCmd()

	case "ctrl+s":
		problem := strings.TrimSpace(m.intake.problem.Value())
		solution := strings.TrimSpace(m.intake.solution.Value())
		if problem == "" || solution == "" {
			m.intake.errMsg = "both problem and solution are required"
			return m, nil
		}
		m.intake.errMsg = ""
		m.intake.submitting = true
		return m, startInterviewCmd(m.client, m.demo, m.intake.buildPersona(), problem, solution)
	}

	var cmd tea.Cmd
	if m.intake.ctxFocus == 0 {
		m.intake.problem, cmd = m.intake.problem.Update(msg)
	} else {
		m.intake.solution, cmd = m.intake.solution.Update(msg)
	}
	return m, cmd
}

// startInterviewCmd creates the backend run. The session context is only
// written after a successful response, so a failed start leaves no
// half-created session behind. Demo mode skips the network entirely.
func startInterviewCmd(client *api.Client, demo bool, p persona.Persona, problem, solution string) tea.Cmd {
	return func() tea.Msg {
		if demo {
			return InterviewStartedMsg{
				InterviewID: "demo-interview",
				Persona:     p,
				Problem:     problem,
				Solution:    solution,
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := client.StartInterview(ctx, persona.NewID(), problem, solution)
		if err != nil {
			return StartFailedMsg{Err: err}
		}
		return InterviewStartedMsg{
			InterviewID: resp.InterviewID,
			Persona:     p,
			Problem:     problem,
			Solution:    solution,
		}
	}
}

// viewIntake renders the two-step form.
func (m Model) viewIntake() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.intake.step == 1 {
		b.WriteString(ui.DimStyle.Render("Step 1 of 2 — define the skeptic"))
	} else {
		b.WriteString(ui.DimStyle.Render("Step 2 of 2 — frame the problem"))
	}
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n\n")

	if m.intake.step == 1 {
		m.renderIntakeStep1(&b)
	} else {
		m.renderIntakeStep2(&b)
	}

	if m.intake.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.intake.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	var footer []string
	if m.intake.step == 1 {
		footer = append(footer,
			ui.FooterKeyStyle.Render("Tab")+ui.FooterDescStyle.Render(" Next field"),
			ui.FooterKeyStyle.Render("←→")+ui.FooterDescStyle.Render(" Toggle"),
			ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Continue"),
		)
	} else {
		footer = append(footer,
			ui.FooterKeyStyle.Render("Tab")+ui.FooterDescStyle.Render(" Switch"),
			ui.FooterKeyStyle.Render("Esc")+ui.FooterDescStyle.Render(" Back"),
			ui.FooterKeyStyle.Render("Ctrl+S")+ui.FooterDescStyle.Render(" Start interview"),
		)
	}
	b.WriteString(m.renderFooter(footer))
	return b.String()
}

func (m Model) renderIntakeStep1(b *strings.Builder) {
	label := func(field int, text string) string {
		if m.intake.focus == field {
			return ui.SelectedStyle.Render("» " + text)
		}
		return ui.PanelTitleStyle.Render("  " + text)
	}

	// Kind toggle.
	b.WriteString(label(fldKind, "Who are you selling to?"))
	b.WriteString("\n  ")
	if m.intake.kind == persona.KindIndividual {
		b.WriteString(ui.SelectedStyle.Render("[ Individual ]") + "  " + ui.DimStyle.Render("  Business  "))
	} else {
		b.WriteString(ui.DimStyle.Render("  Individual  ") + "  " + ui.SelectedStyle.Render("[ Business ]"))
	}
	b.WriteString("\n\n")

	type fieldRow struct {
		field int
		title string
	}
	rows := []fieldRow{
		{fldJTBD, "Job-to-be-done"},
		{fldAlt, "Current alternative"},
	}
	if m.intake.kind == persona.KindOrganization {
		rows = append(rows,
			fieldRow{fldExtra1, "Industry"},
			fieldRow{fldExtra2, "Role"},
			fieldRow{fldExtra3, "Company size"},
		)
	} else {
		rows = append(rows,
			fieldRow{fldExtra1, "Psychographics"},
			fieldRow{fldExtra2, "Age range"},
			fieldRow{fldExtra3, "Location"},
		)
	}

	for _, row := range rows {
		b.WriteString(label(row.field, row.title))
		b.WriteString("\n  ")
		b.WriteString(m.intake.input[inputIdx(row.field)].View())
		b.WriteString("\n\n")
	}

	// Budget authority toggle.
	b.WriteString(label(fldBudget, "Budget authority"))
	b.WriteString("\n  ")
	opts := budgetOptions(m.intake.kind)
	var rendered []string
	for i, opt := range opts {
		if i == m.intake.budget {
			rendered = append(rendered, ui.SelectedStyle.Render("[ "+string(opt)+" ]"))
		} else {
			rendered = append(rendered, ui.DimStyle.Render(string(opt)))
		}
	}
	b.WriteString(strings.Join(rendered, "  "))
	b.WriteString("\n")
}

func (m Model) renderIntakeStep2(b *strings.Builder) {
	if m.intake.submitting {
		b.WriteString(m.spinner.View() + " Starting interview...\n")
		return
	}

	titles := []string{"The problem", "The proposed solution"}
	for i, ta := range []textarea.Model{m.intake.problem, m.intake.solution} {
		if m.intake.ctxFocus == i {
			b.WriteString(ui.SelectedStyle.Render("» " + titles[i]))
		} else {
			b.WriteString(ui.PanelTitleStyle.Render("  " + titles[i]))
		}
		b.WriteString("\n")
		b.WriteString(ta.View())
		b.WriteString("\n\n")
	}
}
