package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	extractDest string
	extractHex  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [dir]",
	Short: "Write the encoded directory stream",
	Long: `Encode every directory entry as a 128-byte record in directory order,
padded with unused records to a whole sector, and write the result.

Examples:
  # Write the directory stream to a file
  go-cfb extract ./document --dest directory.bin

  # Hex dump to stdout
  go-cfb extract ./document --hex`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractDest, "dest", "d", "", "destination file")
	extractCmd.Flags().BoolVar(&extractHex, "hex", false, "write a hex dump to stdout")
	extractCmd.MarkFlagsOneRequired("dest", "hex")
	extractCmd.MarkFlagsMutuallyExclusive("dest", "hex")
}

func runExtract(cmd *cobra.Command, dir string) error {
	h, _, err := loadHierarchy(dir)
	if err != nil {
		return err
	}

	data, err := h.MarshalDirectory()
	if err != nil {
		return err
	}

	if extractHex {
		dumper := hex.Dumper(cmd.OutOrStdout())
		if _, err := dumper.Write(data); err != nil {
			return err
		}
		return dumper.Close()
	}

	if err := afero.WriteFile(afero.NewOsFs(), extractDest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write directory stream: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d entries) to %s\n",
			humanize.IBytes(uint64(len(data))), len(h.Flatten()), extractDest)
	}
	return nil
}
