package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/crashtrap/internal/storage"
)

var pruneKeep int

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old crash reports, oldest first",
	RunE:  runPrune,
}

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", 10, "number of reports to keep")
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, _ []string) error {
	dir, err := resolveDir()
	if err != nil {
		return err
	}

	removed, err := storage.Prune(dir, pruneKeep)
	if err != nil {
		return err
	}

	for _, path := range removed {
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d crash report(s)\n", len(removed))
	return nil
}
