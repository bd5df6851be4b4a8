package cmd

import (
	"github.com/matheuskafuri/capalinks/internal/tui"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse [file]",
	Short: "Browse a generated links file",
	Long:  "Open a links file in a two-pane terminal browser. Defaults to the configured output.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := browsePath(args)
		if err != nil {
			return err
		}
		return tui.Run(path)
	},
}

// browsePath resolves the file to browse: the argument if given, otherwise
// the configured output.
func browsePath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Output, nil
}
