// Package output holds the batch's reporting surfaces: structured logging
// and per-game result writers.
package output

import (
	"log/slog"
	"os"
)

// Logger is the process-wide structured logger.
var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// SetLogger replaces the default logger, e.g. to silence it in tests.
func SetLogger(l *slog.Logger) {
	Logger = l
}
