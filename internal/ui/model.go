// Package ui is the interactive terminal front end over the state controller.
package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todoctl/internal/form"
	"todoctl/internal/service"
	"todoctl/internal/state"
	"todoctl/internal/validate"
)

// Status line texts.
const (
	statusNotEditable = "Completed tasks cannot be edited."
	statusInvalid     = "Fix the highlighted fields."
)

type loadedMsg struct{ err error }

type opDoneMsg struct {
	op  string
	err error
}

type submittedMsg struct {
	form *form.Form
	err  error
}

// Model is the bubbletea model. Store calls run as tea.Cmds; the controller
// applies each response as it arrives.
type Model struct {
	ctx context.Context
	ctl *state.Controller

	cursor  int
	loading bool
	status  string
	confirm *service.Task

	form   *form.Form
	inputs []textinput.Model
	focus  int
	fields []string
}

// NewModel creates a model over ctl. ctx bounds every store call.
func NewModel(ctx context.Context, ctl *state.Controller) *Model {
	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.Width = 50

	desc := textinput.New()
	desc.Placeholder = "Optional details"
	desc.Width = 50

	return &Model{
		ctx:     ctx,
		ctl:     ctl,
		loading: true,
		inputs:  []textinput.Model{title, desc},
		fields:  []string{validate.FieldTitle, validate.FieldDescription},
	}
}

func (m *Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.confirm != nil {
			return m.updateConfirm(msg.String())
		}
		return m.updateList(msg.String())
	case tea.WindowSizeMsg:
		for i := range m.inputs {
			m.inputs[i].Width = max(msg.Width-20, 20)
		}
	case loadedMsg:
		m.loading = false
		m.clampCursor()
	case opDoneMsg:
		m.clampCursor()
	case submittedMsg:
		return m.afterSubmit(msg)
	}
	return m, nil
}

func (m *Model) updateList(key string) (tea.Model, tea.Cmd) {
	m.status = ""
	switch key {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "r":
		m.loading = true
		return m, m.loadCmd()
	case "x":
		m.ctl.DismissError()
	case "a":
		m.ctl.OpenForm()
		return m, m.openForm(form.New(), service.NewTask{})
	case " ", "space":
		if task, ok := m.selected(); ok {
			return m, m.toggleCmd(task)
		}
	case "e":
		task, ok := m.selected()
		if !ok {
			break
		}
		if !state.Editable(task) {
			m.status = statusNotEditable
			break
		}
		m.ctl.Edit(task)
		return m, m.openForm(form.NewEdit(task), service.NewTask{Title: task.Title, Description: task.Description})
	case "d":
		if task, ok := m.selected(); ok {
			m.confirm = &task
		}
	}
	return m, nil
}

func (m *Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	task := *m.confirm
	switch key {
	case "y", "Y":
		m.confirm = nil
		return m, m.deleteCmd(task)
	case "n", "N", "esc":
		m.confirm = nil
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The draft is frozen until the store answers; ctrl+c is handled in Update.
	if m.form.Snapshot().Submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.ctl.CloseForm()
		return m, nil
	case "tab", "shift+tab":
		return m, m.setFocus((m.focus + 1) % len(m.inputs))
	case "enter":
		if !m.form.CanSubmit() {
			m.status = statusInvalid
			return m, nil
		}
		m.status = ""
		return m, m.submitCmd()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.form.SetField(m.fields[m.focus], m.inputs[m.focus].Value())
	return m, cmd
}

func (m *Model) afterSubmit(msg submittedMsg) (tea.Model, tea.Cmd) {
	if m.form == nil || m.form != msg.form {
		return m, nil
	}
	switch {
	case msg.err == nil:
		m.closeForm()
		m.clampCursor()
	case errors.Is(msg.err, form.ErrInvalid):
		m.status = statusInvalid
	}
	// Remote failures keep the form open; the banner carries the message.
	return m, nil
}

func (m *Model) openForm(f *form.Form, draft service.NewTask) tea.Cmd {
	m.form = f
	m.status = ""
	m.inputs[0].SetValue(draft.Title)
	m.inputs[1].SetValue(draft.Description)
	return m.setFocus(0)
}

func (m *Model) closeForm() {
	if m.form != nil {
		m.form.Cancel()
	}
	m.form = nil
	m.status = ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	for j := range m.inputs {
		if j != i {
			m.inputs[j].Blur()
		}
	}
	return m.inputs[i].Focus()
}

// selected returns the task under the cursor in display order.
func (m *Model) selected() (service.Task, bool) {
	tasks := m.ctl.View().Ordered()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return service.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.ctl.Tasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) loadCmd() tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		return loadedMsg{err: ctl.Load(ctx)}
	}
}

func (m *Model) toggleCmd(task service.Task) tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		return opDoneMsg{op: "toggle", err: ctl.Toggle(ctx, task.ID, !task.Completed)}
	}
}

func (m *Model) deleteCmd(task service.Task) tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		return opDoneMsg{op: "delete", err: ctl.Delete(ctx, task.ID)}
	}
}

func (m *Model) submitCmd() tea.Cmd {
	ctx, ctl, f := m.ctx, m.ctl, m.form
	return func() tea.Msg {
		return submittedMsg{form: f, err: f.Submit(ctx, ctl.Submit)}
	}
}
