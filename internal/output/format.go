// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todoctl/internal/partition"
	"todoctl/internal/service"
)

const (
	// SectionSeparator is the separator line under section headers.
	SectionSeparator = "------------"

	// EmptyMessage is printed when there are no tasks at all.
	EmptyMessage = "no tasks yet"

	// AllDoneMessage fills the active section when every task is completed.
	AllDoneMessage = "all done"

	dateLayout = "2006-01-02 15:04"
)

// FormatTask formats an active task line.
// Format: "{N:>4}  {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s\n", num, normalizeTitle(task.Title))
}

// FormatCompletedTask formats a completed task line with its "c" ref.
// Format: "{cN:>4}  {TITLE}\n"
func FormatCompletedTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4s  %s\n", fmt.Sprintf("c%d", num), normalizeTitle(task.Title))
}

// FormatSectionHeader formats a section header with its count.
func FormatSectionHeader(w io.Writer, title string, count int) {
	fmt.Fprintf(w, "%s (%d)\n", title, count)
	fmt.Fprintln(w, SectionSeparator)
}

// FormatStats formats the counters line. Progress is omitted for an empty list.
func FormatStats(w io.Writer, v partition.View) {
	fmt.Fprintf(w, "total %d  active %d  completed %d", v.Total, v.ActiveCount, v.CompletedCount)
	if v.HasProgress {
		fmt.Fprintf(w, "  progress %d%%", v.Progress)
	}
	fmt.Fprintln(w)
}

// FormatView writes the full two-section list followed by the stats line.
// With long set, each task is followed by its id, description and creation date.
func FormatView(w io.Writer, v partition.View, long bool) {
	if v.Total == 0 {
		fmt.Fprintln(w, EmptyMessage)
		return
	}

	FormatSectionHeader(w, "Active", v.ActiveCount)
	if v.ActiveCount == 0 {
		fmt.Fprintf(w, "      %s\n", AllDoneMessage)
	}
	for i, t := range v.Active {
		FormatTask(w, i+1, t)
		if long {
			formatDetails(w, t)
		}
	}
	fmt.Fprintln(w)

	if v.CompletedCount > 0 {
		FormatSectionHeader(w, "Completed", v.CompletedCount)
		for i, t := range v.Completed {
			FormatCompletedTask(w, i+1, t)
			if long {
				formatDetails(w, t)
			}
		}
		fmt.Fprintln(w)
	}

	FormatStats(w, v)
}

// FormatTaskDetail formats a single task for the show command.
func FormatTaskDetail(w io.Writer, task service.Task) {
	status := "active"
	if task.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "status:      %s\n", status)
	if task.Description != "" {
		fmt.Fprintf(w, "description: %s\n", task.Description)
	}
	fmt.Fprintf(w, "created:     %s\n", FormatDate(task.CreatedAt))
	fmt.Fprintf(w, "updated:     %s\n", FormatDate(task.UpdatedAt))
}

// FormatDate renders a server timestamp in display form.
// Unparseable values are shown as received.
func FormatDate(raw string) string {
	t := service.Task{CreatedAt: raw}
	if ts, ok := t.Created(); ok {
		return ts.Format(dateLayout)
	}
	if raw == "" {
		return "-"
	}
	return raw
}

func formatDetails(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "        id: %s  created: %s\n", task.ID, FormatDate(task.CreatedAt))
	if task.Description != "" {
		fmt.Fprintf(w, "        %s\n", normalizeTitle(task.Description))
	}
}

// normalizeTitle normalizes a title for single-line display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
