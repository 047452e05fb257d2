//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/obinnaokechukwu/ffdecode"
)

// Config is the CLI configuration file. Flags override every field.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // auto, text or json
	Workers   int    `yaml:"workers"`

	Audio  AudioConfig  `yaml:"audio"`
	Frames FramesConfig `yaml:"frames"`
	Probe  ProbeConfig  `yaml:"probe"`
}

// AudioConfig holds defaults for the audio command.
type AudioConfig struct {
	SampleRate int    `yaml:"sample_rate"`
	Layout     string `yaml:"layout"` // mono, stereo, 5.1, ... or a hex mask
}

// FramesConfig holds defaults for the frames command.
type FramesConfig struct {
	Limit          int    `yaml:"limit"` // 0 decodes every frame
	ThumbnailWidth int    `yaml:"thumbnail_width"`
	OutputDir      string `yaml:"output_dir"`
}

// ProbeConfig bounds how much input is read while opening.
type ProbeConfig struct {
	Size            int64         `yaml:"size"`
	AnalyzeDuration time.Duration `yaml:"analyze_duration"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "auto",
		Workers:   runtime.NumCPU(),
		Audio: AudioConfig{
			SampleRate: 16000,
			Layout:     "mono",
		},
		Frames: FramesConfig{
			ThumbnailWidth: 160,
		},
	}
}

// LoadFromFile reads path over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate rejects values no command can use.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("log_format must be auto, text or json, got %q", c.LogFormat)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if _, err := ffdecode.ParseChannelLayout(c.Audio.Layout); err != nil {
		return fmt.Errorf("audio.layout: %w", err)
	}
	if c.Frames.Limit < 0 {
		return fmt.Errorf("frames.limit must not be negative, got %d", c.Frames.Limit)
	}
	if c.Frames.ThumbnailWidth <= 0 {
		return fmt.Errorf("frames.thumbnail_width must be positive, got %d", c.Frames.ThumbnailWidth)
	}
	return nil
}

// openOptions turns the probe settings into container options.
func (c Config) openOptions() []ffdecode.OpenOption {
	var opts []ffdecode.OpenOption
	if c.Probe.Size > 0 {
		opts = append(opts, ffdecode.WithProbeSize(c.Probe.Size))
	}
	if c.Probe.AnalyzeDuration > 0 {
		opts = append(opts, ffdecode.WithAnalyzeDuration(c.Probe.AnalyzeDuration))
	}
	return opts
}
