package ui

import (
	"fmt"
	"strings"

	"todoctl/internal/form"
	"todoctl/internal/partition"
	"todoctl/internal/service"
	"todoctl/internal/validate"
)

const (
	loadingText = "Loading tasks..."
	emptyText   = "No tasks yet. Press a to add one."
	allDoneText = "Nothing active. Every task is done!"
	listHelp    = "j/k move · space toggle · a add · e edit · d delete · r reload · x dismiss · q quit"
	formHelp    = "tab switch field · enter save · esc cancel"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("todoctl"))
	b.WriteString("\n\n")

	if opErr := m.ctl.Err(); opErr != nil {
		b.WriteString(bannerStyle.Render(opErr.Message))
		b.WriteString(hintStyle.Render("  x to dismiss"))
		b.WriteString("\n\n")
	}

	if m.form != nil {
		m.writeForm(&b, m.form.Snapshot())
	} else {
		m.writeList(&b)
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) writeList(b *strings.Builder) {
	if m.loading || m.ctl.Loading() {
		b.WriteString(loadingText + "\n")
		return
	}

	v := m.ctl.View()
	if v.Total == 0 {
		b.WriteString(emptyText + "\n\n")
		b.WriteString(hintStyle.Render(listHelp) + "\n")
		return
	}

	writeStats(b, v)
	row := 0
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Active (%d)", v.ActiveCount)) + "\n")
	if v.ActiveCount == 0 {
		b.WriteString(hintStyle.Render("  "+allDoneText) + "\n")
	}
	for _, t := range v.Active {
		m.writeRow(b, row, t)
		row++
	}
	b.WriteString("\n")
	if v.CompletedCount > 0 {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("Completed (%d)", v.CompletedCount)) + "\n")
		for _, t := range v.Completed {
			m.writeRow(b, row, t)
			row++
		}
		b.WriteString("\n")
	}

	if m.confirm != nil {
		b.WriteString(fmt.Sprintf("Delete %q? (y/n)\n", m.confirm.Title))
		return
	}
	b.WriteString(hintStyle.Render(listHelp) + "\n")
}

func writeStats(b *strings.Builder, v partition.View) {
	line := fmt.Sprintf("%d total · %d active · %d completed", v.Total, v.ActiveCount, v.CompletedCount)
	if v.HasProgress {
		line += fmt.Sprintf(" · %d%% done", v.Progress)
	}
	b.WriteString(labelStyle.Render(line) + "\n\n")
}

func (m *Model) writeRow(b *strings.Builder, row int, t service.Task) {
	cursor := "  "
	if row == m.cursor {
		cursor = cursorStyle.Render("> ")
	}
	check := "[ ]"
	title := t.Title
	if t.Completed {
		check = "[x]"
		title = doneStyle.Render(title)
	}
	b.WriteString(cursor + check + " " + title + "\n")
	if t.Description != "" {
		b.WriteString("      " + hintStyle.Render(t.Description) + "\n")
	}
}

func (m *Model) writeForm(b *strings.Builder, s form.State) {
	heading := "New task"
	if s.Editing {
		heading = "Edit task"
	}
	b.WriteString(sectionStyle.Render(heading) + "\n\n")

	labels := map[string]string{
		validate.FieldTitle:       "Title",
		validate.FieldDescription: "Description",
	}
	for i, field := range m.fields {
		b.WriteString(labelStyle.Render(labels[field]) + "\n")
		b.WriteString(m.inputs[i].View() + "\n")
		if msg := s.Errors[field]; msg != "" {
			b.WriteString(fieldErrStyle.Render(msg) + "\n")
		}
		b.WriteString("\n")
	}

	if s.Submitting {
		b.WriteString("Saving...\n")
		return
	}
	b.WriteString(hintStyle.Render(formHelp) + "\n")
}
