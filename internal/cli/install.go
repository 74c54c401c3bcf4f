package cli

import (
	"github.com/spf13/cobra"

	"toolkeep/internal/orch"
)

var installParallel bool

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install every registered tool",
		Long: `Install every registered tool, in registry order.

One tool's failure never aborts the batch; each outcome is reported
individually and the exit status is non-zero when any tool failed.`,
		Args: cobra.NoArgs,
		RunE: runInstall,
	}
	cmd.Flags().BoolVar(&installParallel, "parallel", false, "Install all tools concurrently")
	return cmd
}

func runInstall(cmd *cobra.Command, _ []string) error {
	return runBatchCmd(cmd, installParallel, "install", "installing", "installed",
		func(a *app, opts orch.BatchOptions) ([]orch.Outcome, error) {
			return a.orch.InstallAll(cmd.Context(), opts)
		})
}
