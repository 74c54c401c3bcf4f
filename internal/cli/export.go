package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the registry as YAML to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		return a.store.Export(cmd.OutOrStdout())
	}

	file, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	if err := a.store.Export(file); err != nil {
		return err
	}
	cmd.Printf("exported registry to %s\n", args[0])
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a YAML export into the registry",
		Long: `Merge a YAML export into the registry.

Names already registered are skipped, so importing the same file twice
converges. Imported tools are registered only; run install afterwards to
fetch them.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer file.Close()

	added, err := a.store.Import(file)
	if err != nil {
		return err
	}
	cmd.Printf("imported %d tools\n", added)
	return nil
}
