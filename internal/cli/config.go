package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"toolkeep/internal/settings"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change toolkeep settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set-root <dir>",
		Short: "Set the default install directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigSetRoot,
	})
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	resolver := settings.NewResolver(a.paths.SettingsFile, nil)
	root, err := resolver.Peek()
	if err != nil {
		return err
	}
	if root == "" {
		cmd.Println("install root: (unset)")
	} else {
		cmd.Printf("install root: %s\n", root)
	}
	cmd.Printf("registry: %s\n", a.paths.RegistryFile)
	return nil
}

func runConfigSetRoot(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	abs, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	resolver := settings.NewResolver(a.paths.SettingsFile, nil)
	if err := resolver.Set(abs); err != nil {
		return err
	}
	cmd.Printf("install root set to %s\n", abs)
	return nil
}
