package cli

import (
	"github.com/spf13/cobra"

	"toolkeep/internal/registry"
)

var addDest string

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> <kind> <source>",
		Short: "Install a tool and register it",
		Long: `Install a tool and register it in the registry.

kind is one of binary, git, or apt. binary sources may be direct download
URLs or release-hosting download URLs, in which case the latest release is
resolved. apt sources are package names and need no destination.

Registration happens only after a successful install; adding a name that is
already registered installs again but leaves the existing record untouched.`,
		Args: cobra.ExactArgs(3),
		RunE: runAdd,
	}
	cmd.Flags().StringVar(&addDest, "dest", "", "Destination path relative to the install root (non-apt kinds)")
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	name, kind, source := args[0], registry.Kind(args[1]), args[2]

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	rec, added, err := a.orch.Add(cmd.Context(), name, addDest, kind, source)
	if err != nil {
		return err
	}
	if !added {
		cmd.Printf("%s is already registered; keeping the existing record\n", name)
		return nil
	}
	cmd.Printf("added %s (%s) -> %s\n", rec.Name, rec.Kind, rec.Dest)
	return nil
}
