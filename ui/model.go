package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jesspatton/backtick/app"
	"github.com/jesspatton/backtick/config"
	"github.com/jesspatton/backtick/sink"
)

// Model represents the application state for the Bubbletea program.
type Model struct {
	// UI State
	width    int
	height   int
	ready    bool
	showHelp bool
	input    textinput.Model
	list     viewport.Model

	// Components
	keys KeyMap
	help help.Model

	// Data / Dependencies
	app *app.App

	// Application State
	status    string
	statusErr bool
	final     string
}

// NewModel creates and initializes a new Model rooted at baseDir. Staged
// content is delivered to out when the copy command runs.
func NewModel(baseDir string, cfg *config.Config, out sink.Sink, logger *zap.Logger) (Model, error) {
	a, err := app.New(baseDir, cfg, out, logger)
	if err != nil {
		return Model{}, err
	}

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#A0A0A0"})
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B0B0B0", Dark: "#808080"})
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#606060"})

	ti := textinput.New()
	ti.Placeholder = "path, glob, or command (h for help)"
	ti.Prompt = "backtick> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(special).Bold(true)
	ti.CharLimit = 512
	ti.Focus()

	m := Model{
		// The help screen greets the user; any command dismisses it.
		showHelp: true,
		input:    ti,
		keys:     NewKeyMap(),
		help:     h,
		app:      a,
	}
	m.syncList()
	return m, nil
}

// Init initializes the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			input := m.input.Value()
			m.input.Reset()
			cmd = m.handleInput(input)
			return m, cmd
		case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}

		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 14

		// Width: Total - Border(2) - Padding(2)
		listWidth := m.width - 4
		// Height: Total - Title(1) - Status(1) - Input(1) - Help(1) - Border(2)
		listHeight := m.height - 6

		if !m.ready {
			m.list = viewport.New(listWidth, listHeight)
			m.ready = true
		} else {
			m.list.Width = listWidth
			m.list.Height = listHeight
		}
		m.syncList()
	}

	return m, tea.Batch(cmds...)
}

// handleInput dispatches one line of user input: a single-letter command, a
// remove-by-index command, or a path/glob to stage.
func (m *Model) handleInput(input string) tea.Cmd {
	input = strings.TrimSpace(input)
	m.status = ""
	m.statusErr = false

	switch {
	case input == "":
		return nil

	case input == "q":
		return tea.Quit

	case input == "h":
		m.showHelp = !m.showHelp
		return nil
	}
	m.showHelp = false

	switch {
	case input == "l":
		m.syncList()
		m.setStatus(fmt.Sprintf("%d file(s) staged.", m.app.Count()))
		return nil

	case input == "c":
		m.app.Clear()
		m.syncList()
		m.setStatus("Cleared staged files.")
		return nil

	case input == "`":
		n, err := m.app.Copy()
		if err != nil {
			if errors.Is(err, app.ErrNothingStaged) {
				m.setError("No files are currently staged.")
			} else {
				m.setError(err.Error())
			}
			return nil
		}
		m.final = fmt.Sprintf("Copied %d file(s) to clipboard.", n)
		return tea.Quit

	case input == "r" || strings.HasPrefix(input, "r "):
		m.removeByIndex(strings.TrimSpace(strings.TrimPrefix(input, "r")))
		return nil
	}

	m.stage(input)
	return nil
}

func (m *Model) removeByIndex(arg string) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		m.setError(fmt.Sprintf("Invalid index %q. Please provide a number.", arg))
		return
	}

	path, ok := m.app.Remove(index)
	if !ok {
		m.setError(fmt.Sprintf("Index %d is out of range.", index))
		return
	}
	m.syncList()
	m.setStatus(fmt.Sprintf("Removed %s.", path))
}

func (m *Model) stage(input string) {
	report, err := m.app.Stage(input)
	if err != nil {
		m.setError(err.Error())
		return
	}

	m.syncList()
	switch {
	case report.DirsAdded > 0:
		m.setStatus(fmt.Sprintf("Added %d file(s) and %d directorie(s) matching %q.",
			report.FilesAdded, report.DirsAdded, input))
	case report.FilesAdded > 0:
		m.setStatus(fmt.Sprintf("Added %d file(s).", report.FilesAdded))
	default:
		m.setStatus("Nothing new staged.")
	}
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
}

func (m *Model) syncList() {
	files := m.app.Files()

	var b strings.Builder
	if len(files) == 0 {
		b.WriteString("No files are staged.")
	} else {
		fmt.Fprintf(&b, "Staged Files (%d total):\n", len(files))
		for i, f := range files {
			fmt.Fprintf(&b, "%d. %s\n", i+1, f)
		}
	}
	m.list.SetContent(b.String())
	m.list.GotoBottom()
}

// View renders the UI based on the current state.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render("BACKTICK")

	listRender := paneStyle.
		Width(m.width - 2).
		Render(m.list.View())

	status := " "
	if m.status != "" {
		if m.statusErr {
			status = errorStyle.Render("Error: " + m.status)
		} else {
			status = statusStyle.Render(m.status)
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		listRender,
		status,
		m.input.View(),
		m.help.View(m.keys),
	)
}

// FinalMessage returns the message to print after the program exits, such as
// the copy confirmation. It is empty when there is nothing to report.
func (m Model) FinalMessage() string {
	return m.final
}
