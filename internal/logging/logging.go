package logging

import (
	"log/slog"
	"os"
)

// New returns the process-wide logger. JSON on stderr so log collectors
// can pick it up without a parsing config.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}
