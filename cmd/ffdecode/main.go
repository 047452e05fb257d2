//go:build !ios && !android && (amd64 || arm64)

// Command ffdecode inspects and decodes media files through FFmpeg.
//
//	ffdecode info [--blob] [--boxes] FILE...
//	ffdecode frames [--limit N] [--thumbs DIR --width W] FILE...
//	ffdecode audio [--rate R] [--layout L] [--out FILE] FILE
//	ffdecode seek (--time T | --frame N) FILE
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/obinnaokechukwu/ffdecode"
)

var version = "dev"

// env is what every command needs once global flags are applied.
type env struct {
	cfg Config
	log *slog.Logger
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ffdecode:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	e := &env{}

	return &cli.App{
		Name:    "ffdecode",
		Usage:   "inspect and decode media containers",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "auto, text or json"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"j"}, Usage: "files processed in parallel"},
		},
		Before: func(c *cli.Context) error {
			return e.setup(c)
		},
		Commands: []*cli.Command{
			infoCommand(e),
			framesCommand(e),
			audioCommand(e),
			seekCommand(e),
		},
	}
}

// setup loads the config, applies global flag overrides and loads FFmpeg.
func (e *env) setup(c *cli.Context) error {
	cfg := Defaults()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	e.cfg, e.log = cfg, log

	if err := ffdecode.Init(); err != nil {
		return fmt.Errorf("load FFmpeg: %w", err)
	}
	if err := ffdecode.SetLogLevel(nativeLogLevel(cfg.LogLevel)); err != nil {
		return err
	}
	avutil, avcodec, avformat := ffdecode.Version()
	log.Debug("ffmpeg loaded",
		"avutil", fmt.Sprintf("%d.%d.%d", avutil>>16, (avutil>>8)&0xFF, avutil&0xFF),
		"avcodec", fmt.Sprintf("%d.%d.%d", avcodec>>16, (avcodec>>8)&0xFF, avcodec&0xFF),
		"avformat", fmt.Sprintf("%d.%d.%d", avformat>>16, (avformat>>8)&0xFF, avformat&0xFF))
	return nil
}

// open opens path with the configured probe limits.
func (e *env) open(path string) (*ffdecode.Container, error) {
	opts := append(e.cfg.openOptions(), ffdecode.WithLogger(e.log.With("file", path)))
	return ffdecode.Open(path, opts...)
}

// requireFiles fails when no positional arguments were given.
func requireFiles(c *cli.Context, limit int) ([]string, error) {
	files := c.Args().Slice()
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: no input file", c.Command.Name)
	}
	if limit > 0 && len(files) > limit {
		return nil, fmt.Errorf("%s: expected %d input file, got %d", c.Command.Name, limit, len(files))
	}
	return files, nil
}
