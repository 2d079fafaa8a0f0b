package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deploymenttheory/go-cfb/internal/builder"
	"github.com/deploymenttheory/go-cfb/internal/config"
	"github.com/deploymenttheory/go-cfb/internal/directory"
	"github.com/deploymenttheory/go-cfb/internal/logger"
)

var (
	// Global flags only
	verbose      bool
	quiet        bool
	outputFormat string
	configFile   string
)

var (
	// newLogger builds the logger for a command run
	newLogger = logger.New

	// cmdLog is the logger of the running command, synced once it finishes
	cmdLog *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "go-cfb",
	Short: "Build and inspect Compound File Binary directory trees",
	Long: `go-cfb maps a directory of files onto the directory entries of a
Compound File Binary (OLE structured storage) container: folders become
storages, files become streams.

It shows the resulting tree, the flattened directory entry array with its
sibling and child links, and writes the encoded directory stream.

Commands:
  tree        Show the storage and stream hierarchy
  list        List the flattened directory entries
  discover    Look up one entry by path
  extract     Write the encoded directory stream
  config      Show the effective configuration`,
	Version:      "0.1.0-dev",
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		syncLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		syncLogger()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (table, json, yaml); overrides output_format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: cfb-config.yaml in ., ./config, $HOME/.cfb, /etc/cfb)")
}

// loadConfig reads the configuration and applies the global flags to it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if outputFormat != "" {
		cfg.OutputFormat = outputFormat
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// loadHierarchy builds the directory hierarchy for a host directory
func loadHierarchy(dir string) (*directory.Hierarchy, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log, err := newLogger(cfg.LogLevel, quiet)
	if err != nil {
		return nil, nil, err
	}
	cmdLog = log

	b := builder.New(afero.NewOsFs(), builder.Options{
		Version:      cfg.Version(),
		RootName:     cfg.RootName,
		ManifestName: cfg.ManifestName,
		Ignore:       cfg.Ignore,
		StorageTimes: cfg.StorageTimes,
	}, log.Named("builder"))

	h, err := b.Build(dir)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("loaded hierarchy", zap.String("dir", dir), zap.Uint16("version", uint16(h.Version())))
	return h, cfg, nil
}

// syncLogger flushes the running command's logger once the command ends.
// The hierarchy keeps logging after loadHierarchy returns.
func syncLogger() {
	if cmdLog == nil {
		return
	}
	_ = cmdLog.Sync()
	cmdLog = nil
}
