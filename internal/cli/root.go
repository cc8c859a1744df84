// Package cli implements the auctiond command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goAuctiond/internal/config"
	"github.com/LeJamon/goAuctiond/internal/logger"
)

// Build information, set with -ldflags at release time
var (
	Version = "0.1.0-dev"
	Commit  = "unknown"
)

var (
	// Global flags
	configFile string
	debug      bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "auctiond",
	Short: "auctiond - auction settlement node",
	Long: `auctiond keeps a ledger of accounts, registry assets and English auctions.
Owners list assets for a fixed bidding window, bids are escrowed in a protocol
vault and completion pays the winning bid out to the treasury and the owner
while the asset moves to the winner.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable normally suppressed debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// loadConfig reads the configuration and applies the logging flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Verbose = true
	}
	if debug {
		cfg.Log.Debug = true
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.NewWithWriter(os.Stderr, cfg.Log.Verbose, cfg.Log.Debug, false)
}
