package main

import (
	"io"
	"log/slog"

	"github.com/forgo/hollow/seed/internal/config"
)

// newLogger builds the process logger. Logs go to w (stderr) so that
// standard output carries only the summary.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}
