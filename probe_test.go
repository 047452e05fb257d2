//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"os"
	"testing"
)

func TestProbe(t *testing.T) {
	file := fixture(t, "mov")

	r, err := Probe(file)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if r.Path != file || r.Format == "" {
		t.Errorf("result = %+v", r)
	}
	if r.NumVideoStreams != 1 || r.NumAudioStreams != 1 || len(r.Streams) != 2 {
		t.Fatalf("counts = %d/%d, %d summaries", r.NumVideoStreams, r.NumAudioStreams, len(r.Streams))
	}

	for _, s := range r.Streams {
		switch s.Kind {
		case MediaVideo:
			if s.Width != 640 || s.FrameRate < 24 || s.FrameRate > 24.1 || s.Orientation != OrientationTop {
				t.Errorf("video summary = %+v", s)
			}
		case MediaAudio:
			if s.SampleRate != 44100 || s.FrameRate != 0 {
				t.Errorf("audio summary = %+v", s)
			}
		}
	}
}

func TestProbeBlob(t *testing.T) {
	data, err := os.ReadFile(fixture(t, "mp4"))
	if err != nil {
		t.Fatal(err)
	}
	before := sources.Len()

	r, err := ProbeBlob(data)
	if err != nil {
		t.Fatalf("ProbeBlob failed: %v", err)
	}
	if r.Path != "" || r.NumStreams != 2 {
		t.Errorf("result = %+v", r)
	}
	if sources.Len() != before {
		t.Error("ProbeBlob leaked its source handle")
	}
}

func TestProbeEmptyPath(t *testing.T) {
	if _, err := Probe("  "); err == nil {
		t.Error("empty path should fail")
	}
}
