//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("Defaults().Validate() = %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
log_format: json
workers: 3
audio:
  sample_rate: 8000
  layout: stereo
frames:
  limit: 10
  output_dir: thumbs
probe:
  size: 1048576
  analyze_duration: 2s
`)
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.Workers != 3 {
		t.Errorf("top level = %+v", cfg)
	}
	if cfg.Audio.SampleRate != 8000 || cfg.Audio.Layout != "stereo" {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if cfg.Frames.Limit != 10 || cfg.Frames.OutputDir != "thumbs" {
		t.Errorf("frames = %+v", cfg.Frames)
	}
	// Unset keys keep their defaults.
	if cfg.Frames.ThumbnailWidth != 160 {
		t.Errorf("ThumbnailWidth = %d, want default 160", cfg.Frames.ThumbnailWidth)
	}
	if cfg.Probe.Size != 1<<20 || cfg.Probe.AnalyzeDuration != 2*time.Second {
		t.Errorf("probe = %+v", cfg.Probe)
	}
	if len(cfg.openOptions()) != 2 {
		t.Errorf("openOptions returned %d options, want 2", len(cfg.openOptions()))
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"format", "log_format: xml\n", "log_format"},
		{"workers", "workers: 0\n", "workers"},
		{"rate", "audio:\n  sample_rate: -1\n", "sample_rate"},
		{"layout", "audio:\n  layout: quadraphonic\n", "audio.layout"},
		{"limit", "frames:\n  limit: -5\n", "frames.limit"},
		{"yaml", "workers: [\n", "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
}
