// Package tui implements the interactive checklist screen: task navigation
// and toggling, inline task entry, and an affirmation panel fed by the
// on-device model with live download progress.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calahan-dev/dailyctl/internal/affirm"
	"github.com/calahan-dev/dailyctl/internal/genai"
	"github.com/calahan-dev/dailyctl/internal/store"
	"github.com/calahan-dev/dailyctl/internal/ui"
)

// Config wires the TUI to the application's collaborators.
type Config struct {
	Store    *store.TaskStore
	Service  *affirm.Service
	Manager  *genai.Manager
	Icons    ui.Icons
	Theme    string
	MaxWidth int
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	dateStyle      = lipgloss.NewStyle().Faint(true)
	cursorStyle    = lipgloss.NewStyle().Bold(true)
	completedStyle = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	helpStyle      = lipgloss.NewStyle().Faint(true)
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	panelStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// Messages

type tasksLoadedMsg struct {
	title  string
	tasks  store.TaskSet
	streak int
	err    error
}

type taskMutatedMsg struct {
	firstCompletion bool
	err             error
}

type affirmationMsg struct {
	result affirm.Result
}

type modelEventMsg struct {
	event genai.Event
	ok    bool
}

type model struct {
	cfg    Config
	events <-chan genai.Event

	title  string
	tasks  store.TaskSet
	streak int
	cursor int

	input       textinput.Model
	inputActive bool

	spin        spinner.Model
	affirming   bool
	affirmation *affirm.Result

	downloading bool
	downloadPct float64

	confirmDelete bool
	helpActive    bool

	width  int
	height int
	err    error
}

func newModel(cfg Config) model {
	input := textinput.New()
	input.Placeholder = "New task..."
	input.CharLimit = 500

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return model{
		cfg:    cfg,
		events: cfg.Manager.Subscribe(),
		input:  input,
		spin:   spin,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.loadTasks, m.waitForEvent)
}

// Commands

func (m model) loadTasks() tea.Msg {
	ts, err := m.cfg.Store.GetTodaysTasks()
	if err != nil {
		return tasksLoadedMsg{err: err}
	}
	title, err := m.cfg.Store.Title()
	if err != nil {
		return tasksLoadedMsg{err: err}
	}
	streak, err := m.cfg.Store.Streak()
	if err != nil {
		return tasksLoadedMsg{err: err}
	}
	return tasksLoadedMsg{title: title, tasks: ts, streak: streak}
}

func (m model) addTask(text string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.cfg.Store.AddTask(text)
		return taskMutatedMsg{err: err}
	}
}

func (m model) toggleTask(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.cfg.Store.ToggleTask(id)
		if err != nil {
			return taskMutatedMsg{err: err}
		}
		return taskMutatedMsg{firstCompletion: res.IsFirstCompletion}
	}
}

func (m model) deleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		return taskMutatedMsg{err: m.cfg.Store.DeleteTask(id)}
	}
}

func (m model) generateAffirmation() tea.Cmd {
	return func() tea.Msg {
		completed, err := m.cfg.Store.CompletedTasks()
		if err != nil {
			return affirmationMsg{result: affirm.Result{
				Text:            affirm.RandomFallback(),
				IsUsingFallback: true,
				Status:          affirm.StatusError,
			}}
		}
		return affirmationMsg{result: m.cfg.Service.GenerateAffirmation(context.Background(), completed)}
	}
}

func (m model) waitForEvent() tea.Msg {
	e, ok := <-m.events
	return modelEventMsg{event: e, ok: ok}
}

// Update

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.title = msg.title
		m.tasks = msg.tasks
		m.streak = msg.streak
		if m.cursor >= len(m.tasks.Items) {
			m.cursor = max(len(m.tasks.Items)-1, 0)
		}
		return m, nil

	case taskMutatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		cmds := []tea.Cmd{m.loadTasks}
		if msg.firstCompletion {
			m.affirming = true
			m.affirmation = nil
			cmds = append(cmds, m.generateAffirmation(), m.spin.Tick)
		}
		return m, tea.Batch(cmds...)

	case affirmationMsg:
		m.affirming = false
		m.downloading = false
		m.affirmation = &msg.result
		return m, nil

	case modelEventMsg:
		if !msg.ok {
			return m, nil
		}
		switch msg.event.Kind {
		case genai.EventDownloading:
			m.downloading = true
			m.downloadPct = msg.event.Progress
		case genai.EventReady, genai.EventFailed, genai.EventTimeout:
			m.downloading = false
		}
		return m, m.waitForEvent

	case spinner.TickMsg:
		if !m.affirming {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay — intercept all keys when active
	if m.helpActive {
		switch msg.String() {
		case "?", "esc", "q":
			m.helpActive = false
		}
		return m, nil
	}

	// Input mode — intercept all keys
	if m.inputActive {
		switch msg.String() {
		case "esc":
			m.inputActive = false
			m.input.Reset()
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			m.inputActive = false
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			return m, m.addTask(text)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// Delete confirmation mode
	if m.confirmDelete {
		m.confirmDelete = false
		switch msg.String() {
		case "y", "Y", "d":
			if id, ok := m.selectedID(); ok {
				return m, m.deleteTask(id)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.helpActive = true
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.tasks.Items)-1 {
			m.cursor++
		}
		return m, nil
	case "a":
		m.inputActive = true
		m.input.Focus()
		return m, textinput.Blink
	case " ", "enter":
		if id, ok := m.selectedID(); ok {
			return m, m.toggleTask(id)
		}
		return m, nil
	case "d":
		if _, ok := m.selectedID(); ok {
			m.confirmDelete = true
		}
		return m, nil
	case "g":
		if !m.affirming {
			m.affirming = true
			m.affirmation = nil
			return m, tea.Batch(m.generateAffirmation(), m.spin.Tick)
		}
		return m, nil
	case "r":
		return m, m.loadTasks
	}

	return m, nil
}

func (m model) selectedID() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks.Items) {
		return "", false
	}
	return m.tasks.Items[m.cursor].ID, true
}

// View

func (m model) contentWidth() int {
	w := m.width
	if m.cfg.MaxWidth > 0 && w > m.cfg.MaxWidth {
		w = m.cfg.MaxWidth
	}
	if w <= 0 {
		w = 80
	}
	return w
}

func (m model) View() string {
	if m.err != nil {
		return errStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.helpActive {
		return m.viewHelp()
	}

	var b strings.Builder

	header := m.tasks.Date
	fmt.Fprintf(&b, "%s  %s\n\n", titleStyle.Render(m.title), dateStyle.Render(header))

	if len(m.tasks.Items) == 0 {
		b.WriteString(helpStyle.Render("No tasks yet. Press 'a' to add one.") + "\n")
	}
	completed := 0
	for i, t := range m.tasks.Items {
		if t.Completed {
			completed++
		}
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		icon := m.cfg.Icons.Pending
		text := t.Text
		if t.Completed {
			icon = m.cfg.Icons.Done
			text = completedStyle.Render(text)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, icon, text)
	}

	fmt.Fprintf(&b, "\n%d/%d completed", completed, len(m.tasks.Items))
	if m.streak > 0 {
		fmt.Fprintf(&b, "   %s %d day streak", m.cfg.Icons.Streak, m.streak)
	}
	b.WriteString("\n")

	if m.inputActive {
		fmt.Fprintf(&b, "\n%s\n", m.input.View())
	}

	if m.confirmDelete {
		if m.cursor < len(m.tasks.Items) {
			fmt.Fprintf(&b, "\nDelete %q? (y/n)\n", m.tasks.Items[m.cursor].Text)
		}
	}

	if panel := m.viewAffirmation(); panel != "" {
		b.WriteString("\n" + panel + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("a add · space toggle · d delete · g affirm · ? help · q quit"))
	return b.String()
}

func (m model) viewAffirmation() string {
	width := m.contentWidth() - 4

	switch {
	case m.downloading:
		return panelStyle.Width(width).Render(
			"Downloading model...\n" + ui.ProgressBar(m.downloadPct, min(width-8, 40)))
	case m.affirming:
		return panelStyle.Width(width).Render(m.spin.View() + " Generating affirmation...")
	case m.affirmation != nil:
		body := ui.RenderMarkdown(m.affirmation.Text, width, m.cfg.Theme)
		body = strings.TrimRight(body, "\n")
		if m.affirmation.IsUsingFallback {
			body += "\n" + helpStyle.Render("(offline affirmation — "+m.affirmation.Status+")")
		}
		return panelStyle.Width(width).Render(body)
	}
	return ""
}

func (m model) viewHelp() string {
	return titleStyle.Render("Keys") + `

  up/k, down/j   move cursor
  a              add a task
  space, enter   toggle completion
  d              delete the selected task
  g              generate an affirmation
  r              refresh
  ?              toggle this help
  q              quit

` + helpStyle.Render("Press ? or esc to close")
}

// Run launches the interactive checklist.
func Run(cfg Config) error {
	m := newModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := result.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
