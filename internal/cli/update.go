package cli

import (
	"github.com/spf13/cobra"

	"toolkeep/internal/orch"
)

var updateParallel bool

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update every registered tool",
		Long: `Update every registered tool, in registry order.

apt-kind tools are reported as skipped; the system package manager owns
their updates. Failures are isolated per tool.`,
		Args: cobra.NoArgs,
		RunE: runUpdate,
	}
	cmd.Flags().BoolVar(&updateParallel, "parallel", false, "Update all tools concurrently")
	return cmd
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	return runBatchCmd(cmd, updateParallel, "update", "updating", "updated",
		func(a *app, opts orch.BatchOptions) ([]orch.Outcome, error) {
			return a.orch.UpdateAll(cmd.Context(), opts)
		})
}
