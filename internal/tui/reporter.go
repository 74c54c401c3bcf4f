package tui

import (
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"toolkeep/internal/orch"
	"toolkeep/internal/registry"
)

// BatchReporter adapts bubbletea message sending to the orch.Reporter
// interface. Safe under fan-out; tea.Program.Send is concurrency safe.
type BatchReporter struct {
	send       func(tea.Msg)
	activeVerb string
	doneVerb   string
}

// NewBatchReporter constructs a reporter with the verbs for the running
// operation ("installing"/"installed" or "updating"/"updated").
func NewBatchReporter(send func(tea.Msg), activeVerb, doneVerb string) *BatchReporter {
	return &BatchReporter{send: send, activeVerb: activeVerb, doneVerb: doneVerb}
}

// Start implements orch.Reporter.
func (r *BatchReporter) Start(rec registry.Record) {
	r.send(ToolStatusMsg{Name: rec.Name, Status: r.activeVerb})
}

// Complete implements orch.Reporter.
func (r *BatchReporter) Complete(out orch.Outcome) {
	r.send(ToolStatusMsg{Name: out.Name, Status: outcomeStatus(out, r.doneVerb), Detail: outcomeDetail(out)})
}

// PlainReporter writes one line per finished tool, for non-TTY output.
type PlainReporter struct {
	mu       sync.Mutex
	out      io.Writer
	doneVerb string
}

// NewPlainReporter constructs a plain-text reporter.
func NewPlainReporter(out io.Writer, doneVerb string) *PlainReporter {
	return &PlainReporter{out: out, doneVerb: doneVerb}
}

// Start implements orch.Reporter.
func (r *PlainReporter) Start(registry.Record) {}

// Complete implements orch.Reporter.
func (r *PlainReporter) Complete(out orch.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	detail := outcomeDetail(out)
	if detail != "" {
		fmt.Fprintf(r.out, "%s\t%s\t%s\t%s\n", out.Name, out.Kind, outcomeStatus(out, r.doneVerb), detail)
		return
	}
	fmt.Fprintf(r.out, "%s\t%s\t%s\n", out.Name, out.Kind, outcomeStatus(out, r.doneVerb))
}

func outcomeStatus(out orch.Outcome, doneVerb string) string {
	switch {
	case out.Err != nil:
		return "failed"
	case out.Skipped:
		return "skipped"
	default:
		return doneVerb
	}
}

func outcomeDetail(out orch.Outcome) string {
	if out.Err != nil {
		return out.Err.Error()
	}
	if out.Skipped {
		return "system package manager owns updates"
	}
	if out.Checksum != "" {
		return "sha256:" + shortChecksum(out.Checksum)
	}
	return ""
}

func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
