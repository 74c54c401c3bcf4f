package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type promptModel struct {
	message   string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newPromptModel(message string) promptModel {
	ti := textinput.New()
	ti.Focus()
	return promptModel{message: message, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return fmt.Sprintf("%s:\n%s\n", m.message, m.input.View())
}

// Prompt obtains a single line of input interactively. It implements the
// settings.Prompter interface.
type Prompt struct{}

// PromptLine runs a one-field input program and returns the entered value.
func (Prompt) PromptLine(message string) (string, error) {
	final, err := tea.NewProgram(newPromptModel(message)).Run()
	if err != nil {
		return "", fmt.Errorf("run prompt: %w", err)
	}
	m, ok := final.(promptModel)
	if !ok || m.cancelled {
		return "", fmt.Errorf("prompt cancelled")
	}
	return m.input.Value(), nil
}
