package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cfb/internal/directory"
)

var treeSizes bool

var treeCmd = &cobra.Command{
	Use:   "tree [dir]",
	Short: "Show the storage and stream hierarchy",
	Long: `Show the storages and streams a directory maps to, children in
directory order (shorter names first, then case-insensitive).

Examples:
  # Show the hierarchy
  go-cfb tree ./document

  # Include stream sizes and sector totals
  go-cfb tree ./document --sizes`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTree(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().BoolVarP(&treeSizes, "sizes", "s", false, "show stream sizes and sector totals")
}

func runTree(cmd *cobra.Command, dir string) error {
	h, _, err := loadHierarchy(dir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	for _, line := range h.FileTree() {
		e := line.Entry
		name := e.Name()
		if e.Kind().IsStorage() {
			name += "/"
		}
		fmt.Fprintf(out, "%s%s", strings.Repeat("    ", line.Depth), name)

		if treeSizes && e.Kind() == directory.KindStream {
			size, err := e.FileSize()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, " (%s)", humanize.IBytes(size))
		}
		fmt.Fprintln(out)
	}

	if treeSizes {
		totals, err := h.Root().TotalContentSectors(h.Geometry())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s mini sectors, %s regular sectors (version %d)\n",
			humanize.Comma(int64(totals.Mini)), humanize.Comma(int64(totals.Regular)), h.Version())
	}
	return nil
}
