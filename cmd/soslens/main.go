// soslens — bounded, read-only MCP access to sos-report directory trees.
//
// Exposes a configured reports directory to AI tool callers through short,
// stable report identifiers, with path confinement and hard size bounds on
// every response.
package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/soslens/soslens/internal/browse"
	"github.com/soslens/soslens/internal/config"
	"github.com/soslens/soslens/internal/report"
	"github.com/soslens/soslens/internal/safepath"
)

var (
	version = "0.1.0"
)

var (
	flagReportsDir string
	flagConfigFile string
	flagRefresh    bool
	flagVerbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "soslens",
		Short: "Bounded MCP access to sos-report directory trees",
		Long: `soslens — single Go binary serving sos reports to AI agents.

Scans a reports directory, derives short stable identifiers for the
unwieldy sos-report directory names, and exposes listing, searching, and
reading through MCP tools. Every path is confined to the reports
directory and every response is size-bounded.`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&flagReportsDir, "reports-dir", "d", "", "Directory containing sos report trees")
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flagRefresh, "refresh-cache", false, "Discard the metadata cache at startup")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(mcpCmd, scanCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig builds the process configuration: defaults, then the optional
// config file, then environment, then flags.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if flagConfigFile != "" {
		if err := cfg.LoadFile(flagConfigFile); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv()
	if flagReportsDir != "" {
		cfg.ReportsDir = flagReportsDir
	}
	if flagRefresh {
		cfg.RefreshCache = true
	}
	if err := cfg.Finalize(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs always go to stderr; stdout
// carries the MCP stream.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// buildService wires the catalog, gate, and browse service from config.
func buildService(cfg config.Config, log zerolog.Logger) (*browse.Service, error) {
	gate, err := safepath.NewResolver(cfg.ReportsDir)
	if err != nil {
		return nil, err
	}
	store := report.NewFileStore(filepath.Join(cfg.ReportsDir, cfg.CacheFile))
	catalog := report.NewCatalog(cfg.ReportsDir, store, cfg.RefreshCache, log)
	return browse.NewService(cfg, catalog, gate), nil
}
