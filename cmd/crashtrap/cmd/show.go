package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/crashtrap/internal/report"
	"github.com/hugo-lorenzo-mato/crashtrap/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a crash report (default: the most recent one)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	dir, err := resolveDir()
	if err != nil {
		return err
	}

	var path string
	if len(args) == 1 {
		id := args[0]
		// Ids name files inside the report directory; anything that could
		// traverse out of it is not a report id.
		if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
			return fmt.Errorf("invalid report id %q", id)
		}
		path = filepath.Join(dir, id+storage.Ext)
	} else {
		latest, err := storage.Latest(dir)
		if err != nil {
			return err
		}
		path = latest.Path
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading crash report: %w", err)
	}

	// Decode before printing so a mangled file fails loudly instead of
	// being passed off as a report.
	if _, err := report.DecodeTOML(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
