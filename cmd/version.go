package cmd

import (
	"fmt"

	"github.com/matheuskafuri/capalinks/internal/update"
	"github.com/spf13/cobra"
)

var flagCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, versionString())
		if !flagCheck {
			return
		}
		if res := update.Check(cmd.Context(), update.ReleasesURL, version); res != nil {
			fmt.Fprintf(out, "A newer version is available: %s\n%s\n", res.LatestVersion, res.URL)
		} else {
			fmt.Fprintln(out, "You are on the latest version.")
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "check GitHub for a newer release")
}
