package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/crashtrap/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List crash reports, oldest first",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	dir, err := resolveDir()
	if err != nil {
		return err
	}

	logger := newLogger()
	logger.Debug("listing crash reports", "dir", dir)

	entries, err := storage.ListReports(dir)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(cmd.OutOrStdout(), "no crash reports under %s\n", dir)
		return nil
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no crash reports under %s\n", dir)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWRITTEN")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.ID, e.ModTime.UTC().Format(time.RFC3339))
	}
	return w.Flush()
}
