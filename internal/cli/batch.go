package cli

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"toolkeep/internal/orch"
	"toolkeep/internal/tui"
)

// runBatchCmd wires a batch operation to the selected output mode. The batch
// itself always runs to completion; its aggregated error decides the exit
// status after every outcome has been reported.
func runBatchCmd(cmd *cobra.Command, parallel bool, title, activeVerb, doneVerb string,
	fn func(a *app, opts orch.BatchOptions) ([]orch.Outcome, error)) error {

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	policy := orch.Sequential
	if parallel {
		policy = orch.FanOut
	}

	out := cmd.OutOrStdout()

	switch tui.DetectMode(out, noProgress, outputJSON) {
	case tui.ModeJSON:
		outcomes, batchErr := fn(a, orch.BatchOptions{Policy: policy})
		data, err := json.MarshalIndent(outcomes, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return batchErr

	case tui.ModeTUI:
		records, err := a.store.List()
		if err != nil {
			return err
		}
		model := tui.NewBatchModel(title)
		for _, rec := range records {
			model.AddRow(rec.Name, string(rec.Kind))
		}

		var batchErr error
		runErr := tui.RunWithWork(out, model, func(send func(tea.Msg)) {
			reporter := tui.NewBatchReporter(send, activeVerb, doneVerb)
			_, batchErr = fn(a, orch.BatchOptions{Policy: policy, Reporter: reporter})
		})
		if runErr != nil {
			return runErr
		}
		return batchErr

	default:
		reporter := tui.NewPlainReporter(out, doneVerb)
		_, batchErr := fn(a, orch.BatchOptions{Policy: policy, Reporter: reporter})
		return batchErr
	}
}
