package cli

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the xmltree CLI and returns an error if any command fails.
func Execute() error {
	var verbose bool

	logger := newLogger(os.Stderr, charmlog.InfoLevel)

	root := &cobra.Command{
		Use:           "xmltree",
		Short:         "Inspect, query, and reformat XML documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newFmtCommand(logger))
	root.AddCommand(newQueryCommand(logger))

	return root.Execute()
}
