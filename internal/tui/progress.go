package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const tickInterval = 150 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// tickMsg drives the spinner animation.
type tickMsg time.Time

// ToolStatusMsg updates one tool row's status and detail text.
type ToolStatusMsg struct {
	Name   string
	Status string
	Detail string
}

// WorkDoneMsg signals that all background work has completed.
type WorkDoneMsg struct{}

// batchRow is one tool line in the progress table.
type batchRow struct {
	Name   string
	Kind   string
	Status string
	Detail string
}

// BatchModel renders a batch of per-tool operations as a live table. Rows are
// pre-populated in registry order before the program starts and keep that
// order however completions interleave.
type BatchModel struct {
	title    string
	rows     []batchRow
	rowIndex map[string]int
	done     bool
	tick     int
}

// NewBatchModel creates a model with the given title.
func NewBatchModel(title string) BatchModel {
	return BatchModel{title: title, rowIndex: make(map[string]int)}
}

// AddRow pre-populates a tool row. Call before the program starts.
func (m *BatchModel) AddRow(name, kind string) {
	m.rowIndex[name] = len(m.rows)
	m.rows = append(m.rows, batchRow{Name: name, Kind: kind, Status: "pending"})
}

func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init satisfies the tea.Model interface.
func (m BatchModel) Init() tea.Cmd {
	return scheduleTick()
}

// Update satisfies the tea.Model interface.
func (m BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.tick++
		if m.done {
			return m, nil
		}
		return m, scheduleTick()

	case ToolStatusMsg:
		if idx, ok := m.rowIndex[msg.Name]; ok {
			m.rows[idx].Status = msg.Status
			m.rows[idx].Detail = msg.Detail
		}
		return m, nil

	case WorkDoneMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View satisfies the tea.Model interface.
func (m BatchModel) View() string {
	nameWidth, kindWidth, statusWidth := len("TOOL"), len("KIND"), len("STATUS")
	for _, row := range m.rows {
		if len(row.Name) > nameWidth {
			nameWidth = len(row.Name)
		}
		if len(row.Kind) > kindWidth {
			kindWidth = len(row.Kind)
		}
		if len(row.Status) > statusWidth {
			statusWidth = len(row.Status)
		}
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.title)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s  %s  %s  %s\n",
		HeaderStyle.Render(pad("TOOL", nameWidth)),
		HeaderStyle.Render(pad("KIND", kindWidth)),
		HeaderStyle.Render(pad("STATUS", statusWidth)),
		HeaderStyle.Render("DETAIL"))

	for _, row := range m.rows {
		fmt.Fprintf(&b, "%s  %s  %s  %s\n",
			pad(row.Name, nameWidth),
			pad(row.Kind, kindWidth),
			StatusStyle(row.Status).Render(pad(row.Status, statusWidth)),
			row.Detail)
	}

	if !m.done {
		processed := 0
		for _, row := range m.rows {
			if row.Status != "pending" && !isActiveStatus(row.Status) {
				processed++
			}
		}
		spinner := spinnerFrames[m.tick%len(spinnerFrames)]
		fmt.Fprintf(&b, "\n%s %d/%d done...\n", spinner, processed, len(m.rows))
	}
	return b.String()
}

func isActiveStatus(status string) bool {
	return status == "installing" || status == "updating"
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
