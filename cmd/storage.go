package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/matheuskafuri/capalinks/internal/cache"
	"github.com/matheuskafuri/capalinks/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagPruneOlderThan string
	flagHistoryLimit   int
	flagHistoryLinks   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent builds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := cache.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		out := cmd.OutOrStdout()
		if flagHistoryLinks {
			return printStoredLinks(out, db)
		}

		runs, err := db.Runs(flagHistoryLimit)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}

		if len(runs) == 0 {
			fmt.Fprintln(out, "No builds recorded yet.")
			return nil
		}
		for _, r := range runs {
			fmt.Fprintf(out, "%s  %4d links  %s  %s\n",
				r.GeneratedAt.Local().Format("2006-01-02 15:04"), r.Count, r.Output, r.ID[:8])
		}
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old builds from the local history",
	Long: `Delete recorded builds and links older than the retention period and reclaim disk space.

Uses the retention value from config (default: 90d) unless overridden with --older-than.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := cache.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		retention := cfg.RetentionDuration()
		if flagPruneOlderThan != "" {
			d, err := config.ParseDays(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		deleted, err := db.Prune(retention)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		out := cmd.OutOrStdout()
		if deleted == 0 {
			fmt.Fprintln(out, "Nothing to prune.")
		} else {
			fmt.Fprintf(out, "Pruned %d build(s) older than %s.\n", deleted, formatDuration(retention))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.HistoryPath()
		db, err := cache.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		runs, count, size, err := db.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "History: %s\n", dbPath)
		fmt.Fprintf(out, "Builds: %d\n", runs)
		fmt.Fprintf(out, "Links: %d\n", count)
		fmt.Fprintf(out, "Size: %s\n", formatBytes(size))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "number of builds to show")
	historyCmd.Flags().BoolVar(&flagHistoryLinks, "links", false, "list every link ever published instead of builds")
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override retention period (e.g., 30d, 720h)")
}

func printStoredLinks(out io.Writer, db *cache.Cache) error {
	stored, err := db.Links()
	if err != nil {
		return fmt.Errorf("reading links: %w", err)
	}
	if len(stored) == 0 {
		fmt.Fprintln(out, "No links recorded yet.")
		return nil
	}
	for _, l := range stored {
		fmt.Fprintf(out, "%s  %s\n", l.FirstSeen.Local().Format("2006-01-02"), l.Title)
		if l.URL != "" {
			fmt.Fprintf(out, "            %s\n", l.URL)
		}
	}
	return nil
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
