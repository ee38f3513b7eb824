package cli

import (
	"fmt"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"xmltree/dom"
)

func newFmtCommand(logger *charmlog.Logger) *cobra.Command {
	var (
		compact    bool
		indent     int
		write      bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Reformat an XML document",
		Long: `Reformat an XML document and print it to stdout, or rewrite the
file in place with -w. Defaults may be set in a .xmltree.toml file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("indent") {
				indent = cfg.Format.Indent
			}
			if !cmd.Flags().Changed("compact") {
				compact = cfg.Format.Compact
			}

			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			start := time.Now()
			doc, err := dom.Parse(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logger.Debug("parsed document", "file", path, "duration", time.Since(start))

			var out string
			if compact {
				out = doc.String()
			} else {
				out = doc.StringPrettyIndent(indent) + "\n"
			}

			if write {
				return os.WriteFile(path, []byte(out), 0o644)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "emit compact output with no inserted whitespace")
	cmd.Flags().IntVar(&indent, "indent", dom.DefaultIndent, "pretty-print indent width")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file instead of printing")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a .xmltree.toml config file")

	return cmd
}
