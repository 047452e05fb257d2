//go:build !ios && !android && (amd64 || arm64)

package avformat

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/obinnaokechukwu/ffdecode/avcodec"
	"github.com/obinnaokechukwu/ffdecode/avutil"
)

var ffmpegAvailable bool

func TestMain(m *testing.M) {
	if avutil.Load() == nil && avcodec.Load() == nil && Load() == nil {
		ffmpegAvailable = true
	}
	os.Exit(m.Run())
}

func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if !ffmpegAvailable {
		t.Skip("FFmpeg not available")
	}
}

// createTestVideo writes a one second 320x240@30 mpeg4 + aac file with the
// ffmpeg CLI. Both encoders are built into every FFmpeg configuration.
func createTestVideo(t *testing.T) string {
	t.Helper()
	skipIfNoFFmpeg(t)

	testFile := filepath.Join(t.TempDir(), "test.mp4")
	cmd := exec.Command("ffmpeg", "-y", "-loglevel", "error",
		"-f", "lavfi", "-i", "testsrc=duration=1:size=320x240:rate=30",
		"-f", "lavfi", "-i", "sine=frequency=440:duration=1",
		"-c:v", "mpeg4", "-c:a", "aac",
		"-metadata:s:v:0", "language=eng",
		"-pix_fmt", "yuv420p",
		testFile)

	if err := cmd.Run(); err != nil {
		t.Skipf("ffmpeg not available or failed: %v", err)
	}
	if _, err := os.Stat(testFile); err != nil {
		t.Skipf("Test file not created: %v", err)
	}
	return testFile
}

func openTestVideo(t *testing.T) FormatContext {
	t.Helper()
	testFile := createTestVideo(t)

	var ctx FormatContext
	if err := OpenInput(&ctx, testFile, nil, nil); err != nil {
		t.Fatalf("OpenInput failed: %v", err)
	}
	t.Cleanup(func() { CloseInput(&ctx) })

	if err := FindStreamInfo(ctx); err != nil {
		t.Fatalf("FindStreamInfo failed: %v", err)
	}
	return ctx
}

func TestAllocContext(t *testing.T) {
	skipIfNoFFmpeg(t)
	ctx := AllocContext()
	if ctx == nil {
		t.Fatal("AllocContext returned nil")
	}
	AddFlags(ctx, FlagCustomIO)
	FreeContext(ctx)
}

func TestOpenInputMissingFile(t *testing.T) {
	skipIfNoFFmpeg(t)
	var ctx FormatContext
	err := OpenInput(&ctx, filepath.Join(t.TempDir(), "nope.mp4"), nil, nil)
	if err == nil {
		CloseInput(&ctx)
		t.Fatal("OpenInput should fail for a missing file")
	}
	if ctx != nil {
		t.Error("ctx should be nil after a failed open")
	}
	if avutil.Code(err) >= 0 {
		t.Errorf("error should carry a negative FFmpeg code, got %v", err)
	}
}

func TestContextFields(t *testing.T) {
	ctx := openTestVideo(t)

	if n := GetNumStreams(ctx); n != 2 {
		t.Fatalf("nb_streams = %d, want 2", n)
	}
	if GetStream(ctx, 2) != nil || GetStream(ctx, -1) != nil {
		t.Error("out of range GetStream should return nil")
	}
	if name := GetFormatName(ctx); name == "" {
		t.Error("format name should not be empty")
	}
	if d := GetDuration(ctx); d <= 0 || d > 2*avutil.TimeBase {
		t.Errorf("duration = %d, want about one second", d)
	}
}

func TestStreamFields(t *testing.T) {
	ctx := openTestVideo(t)

	var video, audio Stream
	for i := 0; i < GetNumStreams(ctx); i++ {
		s := GetStream(ctx, i)
		if GetStreamIndex(s) != int32(i) {
			t.Errorf("stream %d reports index %d", i, GetStreamIndex(s))
		}
		switch GetCodecParType(GetStreamCodecPar(s)) {
		case avutil.MediaTypeVideo:
			video = s
		case avutil.MediaTypeAudio:
			audio = s
		}
	}
	if video == nil || audio == nil {
		t.Fatal("expected one video and one audio stream")
	}

	par := GetStreamCodecPar(video)
	if GetCodecParWidth(par) != 320 || GetCodecParHeight(par) != 240 {
		t.Errorf("size = %dx%d, want 320x240", GetCodecParWidth(par), GetCodecParHeight(par))
	}
	if GetCodecParCodecID(par) != avcodec.CodecIDMPEG4 {
		t.Errorf("codec id = %d, want mpeg4", GetCodecParCodecID(par))
	}
	if tb := GetStreamTimeBase(video); !tb.Valid() {
		t.Errorf("time base %v should be valid", tb)
	}
	if fr := GetStreamAvgFrameRate(video); fr.Float64() != 30 {
		t.Errorf("avg_frame_rate = %v, want 30", fr)
	}
	if fr := GetStreamRFrameRate(video); fr.Float64() != 30 {
		t.Errorf("r_frame_rate = %v, want 30", fr)
	}
	if n := GetStreamNbFrames(video); n != 30 {
		t.Errorf("nb_frames = %d, want 30", n)
	}
	if lang, ok := avutil.DictLookup(GetStreamMetadata(video), "language"); !ok || lang != "eng" {
		t.Errorf("language = %q, %v", lang, ok)
	}

	if sr := GetCodecParSampleRate(GetStreamCodecPar(audio)); sr != 44100 {
		t.Errorf("sample rate = %d, want 44100", sr)
	}
}

func TestReadFrame(t *testing.T) {
	ctx := openTestVideo(t)

	pkt := avcodec.PacketAlloc()
	defer avcodec.PacketFree(&pkt)

	packets := 0
	for {
		err := ReadFrame(ctx, pkt)
		if avutil.IsEOF(err) {
			break
		}
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if idx := avcodec.GetPacketStreamIndex(pkt); idx < 0 || int(idx) >= GetNumStreams(ctx) {
			t.Errorf("packet stream index %d out of range", idx)
		}
		packets++
		avcodec.PacketUnref(pkt)
	}
	if packets == 0 {
		t.Error("expected at least one packet")
	}
}

func TestSeekFrame(t *testing.T) {
	ctx := openTestVideo(t)

	if err := SeekFrame(ctx, -1, 0, SeekFlagBackward); err != nil {
		t.Fatalf("SeekFrame to start: %v", err)
	}
}

func TestFindInputFormat(t *testing.T) {
	skipIfNoFFmpeg(t)
	if FindInputFormat("mov") == nil {
		t.Error("mov demuxer should exist")
	}
	if FindInputFormat("no-such-demuxer") != nil {
		t.Error("unknown demuxer should be nil")
	}
	if FindInputFormat("") != nil {
		t.Error("empty name should be nil")
	}
}

func TestNilAccessors(t *testing.T) {
	if GetNumStreams(nil) != 0 || GetStream(nil, 0) != nil {
		t.Error("nil context should have no streams")
	}
	if GetStreamIndex(nil) != -1 || GetStreamCodecPar(nil) != nil {
		t.Error("nil stream accessors mismatch")
	}
	if GetCodecParType(nil) != avutil.MediaTypeUnknown {
		t.Error("nil parameters should be unknown media type")
	}
	if GetFormatName(nil) != "" {
		t.Error("nil context should have empty format name")
	}
}
