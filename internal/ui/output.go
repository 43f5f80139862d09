package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/calahan-dev/dailyctl/internal/affirm"
	"github.com/calahan-dev/dailyctl/internal/archive"
	"github.com/calahan-dev/dailyctl/internal/genai"
	"github.com/calahan-dev/dailyctl/internal/store"
	"github.com/calahan-dev/dailyctl/internal/task"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	dateStyle      = lipgloss.NewStyle().Faint(true)
	completedStyle = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	idStyle        = lipgloss.NewStyle().Faint(true)
	fallbackStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
)

// Icons configures the glyphs used in checklist output.
type Icons struct {
	Done    string
	Pending string
	Streak  string
}

// DefaultIcons matches the configuration defaults.
func DefaultIcons() Icons {
	return Icons{Done: "✓", Pending: "○", Streak: "🔥"}
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatTaskAdded formats an add confirmation message.
func FormatTaskAdded(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "Added task %s: %s\n", t.ID, t.Text)
}

// FormatTaskToggled formats a toggle confirmation message.
func FormatTaskToggled(w io.Writer, res store.ToggleResult) {
	state := "pending"
	if res.Task.Completed {
		state = "completed"
	}
	fmt.Fprintf(w, "Task %s is now %s.\n", res.Task.ID, state)
}

// FormatTaskDeleted formats a deletion confirmation message.
func FormatTaskDeleted(w io.Writer, id string) {
	fmt.Fprintf(w, "Deleted task %s.\n", id)
}

// FormatTaskList renders the checklist with a title and date header.
func FormatTaskList(w io.Writer, title string, ts store.TaskSet, icons Icons) {
	date, err := time.ParseInLocation("2006-01-02", ts.Date, time.Local)
	header := ts.Date
	if err == nil {
		header = date.Format("Mon, Jan 2")
	}

	fmt.Fprintf(w, "%s  %s\n\n", titleStyle.Render(title), dateStyle.Render(header))

	if len(ts.Items) == 0 {
		fmt.Fprintln(w, "No tasks yet. Add one with: dailyctl add \"task text\"")
		return
	}

	for i, t := range ts.Items {
		icon := icons.Pending
		text := t.Text
		if t.Completed {
			icon = icons.Done
			text = completedStyle.Render(text)
		}
		fmt.Fprintf(w, "%2d. %s %s  %s\n", i+1, icon, text, idStyle.Render(t.ID))
	}
}

// FormatProgress renders the completion summary line.
func FormatProgress(w io.Writer, p store.Progress) {
	if p.Total == 0 {
		fmt.Fprintln(w, "0/0 tasks completed")
		return
	}
	fmt.Fprintf(w, "%d/%d tasks completed\n", p.Completed, p.Total)
}

// FormatStreak renders the streak count with its icon.
func FormatStreak(w io.Writer, streak int, icons Icons) {
	switch streak {
	case 0:
		fmt.Fprintln(w, "No streak yet. Complete a task to start one!")
	case 1:
		fmt.Fprintf(w, "%s 1 day streak\n", icons.Streak)
	default:
		fmt.Fprintf(w, "%s %d day streak\n", icons.Streak, streak)
	}
}

// FormatAffirmation renders a generated affirmation as markdown, with a
// subdued note when fallback text was substituted.
func FormatAffirmation(w io.Writer, res affirm.Result, width int, style string) {
	fmt.Fprintln(w, RenderMarkdown(res.Text, width, style))
	if res.IsUsingFallback {
		fmt.Fprintln(w, fallbackStyle.Render("(offline affirmation — "+res.Status+")"))
	}
}

// FormatAvailability renders a model availability status line.
func FormatAvailability(w io.Writer, avail genai.Availability) {
	switch avail {
	case genai.AvailabilityReadily:
		fmt.Fprintln(w, "Model: ready")
	case genai.AvailabilityAfterDownload:
		fmt.Fprintln(w, "Model: available after download (run 'dailyctl model warm')")
	default:
		fmt.Fprintln(w, "Model: unavailable (is the model runtime running?)")
	}
}

// FormatPollResult renders the outcome of waiting for model availability.
func FormatPollResult(w io.Writer, res genai.PollResult) {
	fmt.Fprintf(w, "%s: %s\n", res.Status, res.Message)
}

// FormatHistory renders archived day summaries, one line per day.
func FormatHistory(w io.Writer, days []archive.DaySummary, icons Icons) {
	if len(days) == 0 {
		fmt.Fprintln(w, "No archived days yet.")
		return
	}
	for _, d := range days {
		line := fmt.Sprintf("%s  %d/%d completed", d.Date, d.Completed, d.Total)
		if d.Streak > 0 {
			line += fmt.Sprintf("  %s %d", icons.Streak, d.Streak)
		}
		fmt.Fprintln(w, line)
	}
}

// ProgressBar renders a simple percentage bar for download progress.
func ProgressBar(pct float64, width int) string {
	if width < 10 {
		width = 10
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %3.0f%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", width-filled),
		pct,
	)
}
