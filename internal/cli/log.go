// Package cli implements the xmltree command-line interface.
//
// The CLI wraps the dom and selector packages with two commands: fmt,
// which reformats a document in pretty or compact form, and query, which
// evaluates a selector against a document. Commands support --verbose
// (-v) for debug-level logging via the charmbracelet/log library.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w, filtering at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
