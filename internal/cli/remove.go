package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"toolkeep/internal/registry"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a tool from the registry and delete its artifacts",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.orch.Remove(args[0]); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			cmd.Printf("%s is not registered\n", args[0])
			return nil
		}
		return err
	}
	cmd.Printf("removed %s\n", args[0])
	return nil
}
