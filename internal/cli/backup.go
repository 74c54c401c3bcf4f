package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

var backupList bool

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the registry to a timestamped backup",
		Args:  cobra.NoArgs,
		RunE:  runBackup,
	}
	cmd.Flags().BoolVar(&backupList, "list", false, "List existing backups instead of creating one")
	return cmd
}

func runBackup(cmd *cobra.Command, _ []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if backupList {
		backups, err := a.store.Backups()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			cmd.Println("no backups")
			return nil
		}
		for _, b := range backups {
			cmd.Println(filepath.Base(b))
		}
		return nil
	}

	path, err := a.store.Backup()
	if err != nil {
		return err
	}
	cmd.Printf("backed up registry to %s\n", path)
	return nil
}
