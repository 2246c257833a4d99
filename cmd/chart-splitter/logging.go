// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// logLevel is shared by the default handler so the level can change after
// startup.
var logLevel = new(slog.LevelVar)

// configureLogging installs a text handler on stderr as the default logger.
// Per-page status lines go to stdout and are not affected.
func configureLogging(level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	logLevel.Set(lvl)

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q: use debug, info, warn, or error", s)
	}
}
