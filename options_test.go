//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"log/slog"
	"testing"
	"time"
)

func TestBuildOptionsDefaults(t *testing.T) {
	o := buildOptions(nil)
	if o.IOBufferSize != 32*1024 {
		t.Errorf("IOBufferSize = %d", o.IOBufferSize)
	}
	if o.Logger != slog.Default() {
		t.Error("Logger should default to slog.Default()")
	}
	if len(o.demuxerOptions()) != 0 {
		t.Errorf("demuxerOptions = %v, want empty", o.demuxerOptions())
	}
}

func TestDemuxerOptions(t *testing.T) {
	o := buildOptions([]OpenOption{
		WithAVOptions(map[string]string{"fflags": "+genpts"}),
		WithAVOptions(map[string]string{"probesize": "1"}),
		WithProbeSize(5000000),
		WithAnalyzeDuration(2 * time.Second),
		WithFormat("mp4"),
	})

	got := o.demuxerOptions()
	want := map[string]string{
		"fflags":          "+genpts",
		"probesize":       "5000000",
		"analyzeduration": "2000000",
	}
	if len(got) != len(want) {
		t.Fatalf("demuxerOptions = %v", got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
	if o.Format != "mp4" {
		t.Errorf("Format = %q", o.Format)
	}
}
