package cmd

import (
	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover [dir] [path]",
	Short: "Look up one entry by path",
	Long: `Resolve a slash-separated path through each storage's child tree
and show the entry's record. Names match case-insensitively.

Examples:
  # Show the root entry
  go-cfb discover ./document /

  # Show a nested stream
  go-cfb discover ./document Macros/VBA/dir -o yaml`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiscover(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, dir, path string) error {
	h, cfg, err := loadHierarchy(dir)
	if err != nil {
		return err
	}

	// Flatten first so the record shows resolved links
	h.Flatten()

	e, err := h.Lookup(path)
	if err != nil {
		return err
	}
	row, err := newEntryRow(e)
	if err != nil {
		return err
	}
	return renderRows(cmd.OutOrStdout(), cfg.OutputFormat, []entryRow{row})
}
