package cmd

import (
	"fmt"
	"os"

	"github.com/matheuskafuri/capalinks/internal/config"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "capalinks",
	Short: "Export Capacities web links to JSON",
	Long: `capalinks reads the web resources saved in a Capacities database and writes
them to a JSON file that static sites and scripts can consume.

Running capalinks with no subcommand performs a build.`,
	SilenceUsage: true,
	RunE:         runBuild,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	addBuildFlags(rootCmd)

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func versionString() string {
	return fmt.Sprintf("capalinks %s (commit: %s, built: %s)", version, commit, date)
}

// loadConfig reads .env, then the config file named by --config.
func loadConfig() (*config.Config, error) {
	if err := config.LoadEnvFile(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
