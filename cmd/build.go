package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/matheuskafuri/capalinks/internal/build"
	"github.com/matheuskafuri/capalinks/internal/cache"
	"github.com/matheuskafuri/capalinks/internal/capacities"
	"github.com/matheuskafuri/capalinks/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagOutput    string
	flagDatabase  string
	flagQuiet     bool
	flagIfStale   bool
	flagNoHistory bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch links from Capacities and write the JSON file",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

func init() {
	addBuildFlags(buildCmd)
}

// addBuildFlags registers the build flags on c. The root command and the
// build subcommand share the same variables.
func addBuildFlags(c *cobra.Command) {
	c.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default from config: links.json)")
	c.Flags().StringVar(&flagDatabase, "database", "", "Capacities database id")
	c.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "do not list every extracted link")
	c.Flags().BoolVar(&flagIfStale, "if-stale", false, "skip the build if the last run is newer than refresh_interval")
	c.Flags().BoolVar(&flagNoHistory, "no-history", false, "do not record the run in the local history")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagOutput != "" {
		cfg.Output = flagOutput
	}
	if flagDatabase != "" {
		cfg.DatabaseID = flagDatabase
	}

	out := cmd.OutOrStdout()

	var history *cache.Cache
	if !flagNoHistory {
		history, err = cache.Open(config.HistoryPath())
		if err != nil {
			fmt.Fprintf(out, "  [warn] history disabled: %v\n", err)
		} else {
			defer history.Close()
		}
	}

	if flagIfStale && history != nil && !history.NeedsRefresh(cfg.RefreshDuration()) {
		fmt.Fprintf(out, "Last build is newer than %s, skipping.\n", cfg.RefreshInterval)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := capacities.New(capacities.Options{
		IDListURL:  cfg.API.IDListURL,
		QueryURL:   cfg.API.QueryURL,
		AppVersion: cfg.API.AppVersion,
		Referer:    cfg.API.Referer,
		UserAgent:  cfg.API.UserAgent,
	}, &http.Client{Timeout: cfg.TimeoutDuration()})

	fmt.Fprintln(out, "Fetching links from Capacities...")
	res, err := build.Run(ctx, client, build.Options{
		DatabaseID: cfg.DatabaseID,
		Output:     cfg.Output,
		Out:        out,
		Quiet:      flagQuiet,
	})
	if err != nil {
		return err
	}

	if history != nil {
		_, err := history.RecordRun(cache.Run{
			DatabaseID:  cfg.DatabaseID,
			Output:      res.Output,
			Count:       res.Envelope.Count,
			GeneratedAt: res.GeneratedAt,
		}, res.Envelope.Links)
		if err != nil {
			fmt.Fprintf(out, "  [warn] recording history: %v\n", err)
		}
	}
	return nil
}
