//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/obinnaokechukwu/ffdecode"
)

// newLogger builds the CLI logger on stderr. In auto format it writes
// text to a terminal and JSON otherwise.
func newLogger(level, format string) (*slog.Logger, error) {
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	h, err := newHandler(os.Stderr, tty, level, format)
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

func newHandler(w io.Writer, tty bool, level, format string) (slog.Handler, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	case "auto", "":
		if tty {
			return slog.NewTextHandler(w, opts), nil
		}
		return slog.NewJSONHandler(w, opts), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

// nativeLogLevel keeps FFmpeg's own stderr output in step with the CLI
// level: only errors normally, everything at debug.
func nativeLogLevel(level string) ffdecode.LogLevel {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return ffdecode.LogError
	}
	switch {
	case lvl <= slog.LevelDebug:
		return ffdecode.LogVerbose
	case lvl <= slog.LevelInfo:
		return ffdecode.LogError
	}
	return ffdecode.LogQuiet
}
