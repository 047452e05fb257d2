//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/obinnaokechukwu/ffdecode"
)

func testClip(t *testing.T) string {
	t.Helper()
	if err := ffdecode.Init(); err != nil {
		t.Skipf("FFmpeg not available: %v", err)
	}
	file := filepath.Join(t.TempDir(), "clip.mp4")
	cmd := exec.Command("ffmpeg", "-y", "-loglevel", "error",
		"-f", "lavfi", "-i", "testsrc=duration=1:size=320x240:rate=25",
		"-f", "lavfi", "-i", "sine=frequency=440:duration=1",
		"-c:v", "mpeg4", "-c:a", "aac", "-pix_fmt", "yuv420p",
		file)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("ffmpeg not available or failed: %v: %s", err, out)
	}
	return file
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"ffdecode", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestInfoCommand(t *testing.T) {
	clip := testClip(t)
	out, err := run(t, "info", "--boxes", clip, clip)
	if err != nil {
		t.Fatalf("info: %v\n%s", err, out)
	}
	if strings.Count(out, clip) != 2 {
		t.Errorf("expected two reports:\n%s", out)
	}
	for _, want := range []string{"video 1, audio 1", "320x240", "orientation top", "boxes:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFramesCommand(t *testing.T) {
	clip := testClip(t)
	dir := filepath.Join(t.TempDir(), "thumbs")
	out, err := run(t, "frames", "--limit", "3", "--thumbs", dir, "--width", "80", clip)
	if err != nil {
		t.Fatalf("frames: %v\n%s", err, out)
	}
	if !strings.Contains(out, "3 frames 320x240 stride 960") {
		t.Errorf("output = %q", out)
	}
	pngs, _ := filepath.Glob(filepath.Join(dir, "*.png"))
	if len(pngs) != 3 {
		t.Errorf("wrote %d thumbnails, want 3", len(pngs))
	}
}

func TestAudioCommand(t *testing.T) {
	clip := testClip(t)
	pcm := filepath.Join(t.TempDir(), "out.pcm")
	out, err := run(t, "audio", "--rate", "8000", "--layout", "mono", "--out", pcm, clip)
	if err != nil {
		t.Fatalf("audio: %v\n%s", err, out)
	}
	st, err := os.Stat(pcm)
	if err != nil || st.Size() == 0 {
		t.Fatalf("pcm file: %v", err)
	}
	if st.Size()%2 != 0 {
		t.Errorf("pcm size %d is not whole S16 samples", st.Size())
	}
}

func TestSeekCommand(t *testing.T) {
	clip := testClip(t)
	out, err := run(t, "seek", "--time", "0.5", clip)
	if err != nil {
		t.Fatalf("seek: %v\n%s", err, out)
	}
	if !strings.Contains(out, "frame at pts") {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, "seek", clip); err == nil {
		t.Error("seek without a target should fail")
	}
}

func TestMissingInput(t *testing.T) {
	testClip(t)
	if _, err := run(t, "info"); err == nil {
		t.Error("info without files should fail")
	}
	if _, err := run(t, "info", filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("missing file should fail")
	}
}
