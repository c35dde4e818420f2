package infrastructure

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a timestamped logger writing to w (stderr when nil).
// Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "catalog",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
