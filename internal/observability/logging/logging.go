package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON slog logger at the given level as the default and
// returns it.
func Setup(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
