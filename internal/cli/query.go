package cli

import (
	"fmt"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"xmltree/dom"
	"xmltree/selector"
)

func newQueryCommand(logger *charmlog.Logger) *cobra.Command {
	var (
		first    bool
		textOnly bool
	)

	cmd := &cobra.Command{
		Use:   "query SELECTOR FILE",
		Short: "Evaluate a selector against an XML document",
		Long: `Evaluate a CSS-style selector against an XML document and print each
matching element, in document order, one per line.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := selector.Compile(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			doc, err := dom.Parse(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}

			start := time.Now()
			matches := selector.QueryAll(doc, doc.Root(), sel)
			logger.Debug("evaluated selector", "selector", args[0], "matches", len(matches), "duration", time.Since(start))

			if first && len(matches) > 1 {
				matches = matches[:1]
			}
			for _, h := range matches {
				var line string
				if textOnly {
					line, err = doc.TextContent(h)
				} else {
					line, err = doc.NodeString(h)
				}
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			if len(matches) == 0 {
				logger.Info("no matches", "selector", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&first, "first", false, "print only the first match")
	cmd.Flags().BoolVar(&textOnly, "text", false, "print text content instead of serialized elements")

	return cmd
}
