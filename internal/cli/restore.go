package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"toolkeep/internal/registry"
)

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup>",
		Short: "Replace the registry with a backup's content",
		Long: `Replace the live registry wholesale with the referenced backup.

The backup may be given as a path or as a bare file name next to the
registry. This is a full overwrite, not a merge.`,
		Args: cobra.ExactArgs(1),
		RunE: runRestore,
	}
}

func runRestore(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Restore(args[0]); err != nil {
		if errors.Is(err, registry.ErrBackupNotFound) {
			cmd.Printf("backup %s not found\n", args[0])
			return nil
		}
		return err
	}
	cmd.Printf("restored registry from %s\n", args[0])
	return nil
}
