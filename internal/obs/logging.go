// Package obs holds the service-wide structured logger.
package obs

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the global structured logger. It defaults to a JSON handler at
// info level so packages can log before InitLogger runs (tests, early init).
var Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// InitLogger reconfigures the global Logger from the LOG_LEVEL environment
// variable (debug, info, warn, error; default info).
func InitLogger() {
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
