//go:build !ios && !android && (amd64 || arm64)

package avcodec

import (
	"os"
	"testing"

	"github.com/obinnaokechukwu/ffdecode/avutil"
)

var ffmpegAvailable bool

func TestMain(m *testing.M) {
	if err := avutil.Load(); err == nil {
		if err := Load(); err == nil {
			ffmpegAvailable = true
		}
	}
	os.Exit(m.Run())
}

func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if !ffmpegAvailable {
		t.Skip("FFmpeg not available")
	}
}

func TestFindDecoder(t *testing.T) {
	skipIfNoFFmpeg(t)
	// rawvideo is built into every FFmpeg configuration.
	if FindDecoder(CodecIDRAWVIDEO) == nil {
		t.Fatal("FindDecoder(rawvideo) returned nil")
	}
	if FindDecoder(CodecID(-42)) != nil {
		t.Error("FindDecoder should return nil for an unknown id")
	}
}

func TestCodecName(t *testing.T) {
	skipIfNoFFmpeg(t)
	tests := []struct {
		id   CodecID
		want string
	}{
		{CodecIDH264, "h264"},
		{CodecIDAAC, "aac"},
		{CodecIDPCMS16LE, "pcm_s16le"},
	}
	for _, tt := range tests {
		if got := CodecName(tt.id); got != tt.want {
			t.Errorf("CodecName(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestCodecIDString(t *testing.T) {
	if CodecIDHEVC.String() != "hevc" || CodecIDOPUS.String() != "opus" {
		t.Error("String mismatch for known ids")
	}
	if CodecID(999999).String() != "unknown" {
		t.Error("unknown id should stringify as unknown")
	}
	if !CodecIDMP3.IsAudio() || CodecIDH264.IsAudio() {
		t.Error("IsAudio mismatch")
	}
}

func TestAllocContext(t *testing.T) {
	skipIfNoFFmpeg(t)
	codec := FindDecoder(CodecIDRAWVIDEO)
	ctx := AllocContext3(codec)
	if ctx == nil {
		t.Fatal("AllocContext3 returned nil")
	}

	if GetCtxWidth(ctx) != 0 || GetCtxHeight(ctx) != 0 {
		t.Error("fresh context should have zero dimensions")
	}

	FreeContext(&ctx)
	if ctx != nil {
		t.Error("context should be nil after free")
	}
	FreeContext(&ctx)
}

func TestPacketAlloc(t *testing.T) {
	skipIfNoFFmpeg(t)
	pkt := PacketAlloc()
	if pkt == nil {
		t.Fatal("PacketAlloc returned nil")
	}

	if GetPacketPTS(pkt) != avutil.NoPTSValue {
		t.Error("fresh packet pts should be AV_NOPTS_VALUE")
	}
	if GetPacketSize(pkt) != 0 {
		t.Error("fresh packet should be empty")
	}

	PacketUnref(pkt)
	PacketFree(&pkt)
	if pkt != nil {
		t.Error("packet should be nil after free")
	}
}

func TestNilAccessors(t *testing.T) {
	if GetPacketStreamIndex(nil) != -1 {
		t.Error("nil packet stream index should be -1")
	}
	if GetCtxPixFmt(nil) != avutil.PixelFormatNone {
		t.Error("nil context pix_fmt should be none")
	}
	if GetCtxSampleFmt(nil) != avutil.SampleFormatNone {
		t.Error("nil context sample_fmt should be none")
	}
	if GetCtxChannels(nil) != 0 {
		t.Error("nil context should report 0 channels")
	}
}
