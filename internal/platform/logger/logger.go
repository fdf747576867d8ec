package logger

import (
	"log/slog"
	"os"
)

// New returns the JSON logger services and handlers share.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
