package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the flattened directory entries",
	Long: `List every directory entry in the order it is written to the
directory stream, with the sibling and child links each record carries.

Examples:
  # Table of entries
  go-cfb list ./document

  # Machine-readable output
  go-cfb list ./document -o json`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, dir string) error {
	h, cfg, err := loadHierarchy(dir)
	if err != nil {
		return err
	}

	flat := h.Flatten()
	rows := make([]entryRow, 0, len(flat))
	for _, e := range flat {
		row, err := newEntryRow(e)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return renderRows(cmd.OutOrStdout(), cfg.OutputFormat, rows)
}
