// Package main implements the rslv CLI for manual resolution against a record store.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/resolvd/internal/config"
	"github.com/fyrsmithlabs/resolvd/internal/logging"
	"github.com/fyrsmithlabs/resolvd/internal/recordstore"
)

var (
	// configPath is the config file holding the store connection settings
	configPath string
	// verbose switches the audit log from warn to debug level
	verbose bool
	// jsonOutput prints results as JSON instead of text
	jsonOutput bool
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rslv",
	Short: "CLI for resolving free-text fragments to record identifiers",
	Long: `rslv resolves noisy free-text fragments (scanned labels, pasted references,
abbreviated names) to exactly one record in the configured record store.

The store connection is read from the resolvd config file.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every resolution step")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(countCmd)
}

// openStore loads the config and connects the record store. The returned
// cleanup closes the store and flushes the logger.
func openStore(cmd *cobra.Command) (recordstore.Store, *zap.Logger, *config.Config, func(), error) {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolution decisions log to stderr so stdout stays parseable.
	cfg.Logging.Format = "console"
	cfg.Logging.Level = "warn"
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := recordstore.NewStore(cfg.Store, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, nil, fmt.Errorf("failed to open record store: %w", err)
	}

	cleanup := func() {
		_ = store.Close()
		_ = logger.Sync()
	}
	return store, logger, cfg, cleanup, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
