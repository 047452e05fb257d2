//go:build !ios && !android && (amd64 || arm64)

package avutil

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"unsafe"
)

var ffmpegAvailable bool

func TestMain(m *testing.M) {
	if err := Load(); err == nil {
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

func TestFrameAlloc(t *testing.T) {
	skipIfNoFFmpeg(t)
	frame := FrameAlloc()
	if frame == nil {
		t.Fatal("FrameAlloc returned nil")
	}
	defer FrameFree(&frame)

	if got := GetFramePTS(frame); got != NoPTSValue {
		t.Errorf("fresh frame pts = %d, want AV_NOPTS_VALUE", got)
	}
	if got := GetFrameFormat(frame); got != -1 {
		t.Errorf("fresh frame format = %d, want -1", got)
	}
}

func TestFrameFree(t *testing.T) {
	skipIfNoFFmpeg(t)
	frame := FrameAlloc()
	if frame == nil {
		t.Fatal("FrameAlloc returned nil")
	}

	FrameFree(&frame)

	if frame != nil {
		t.Error("Frame should be nil after free")
	}

	// Double free should be safe
	FrameFree(&frame)
}

func TestNilFrameAccessors(t *testing.T) {
	if GetFrameWidth(nil) != 0 || GetFrameHeight(nil) != 0 || GetFrameNbSamples(nil) != 0 {
		t.Error("nil frame dimensions should be 0")
	}
	if GetFramePTS(nil) != NoPTSValue || GetFrameBestEffortTimestamp(nil) != NoPTSValue {
		t.Error("nil frame timestamps should be AV_NOPTS_VALUE")
	}
	if GetFrameData(nil, 0) != nil || GetFrameExtendedData(nil) != nil {
		t.Error("nil frame data should be nil")
	}
}

func TestRational(t *testing.T) {
	r := NewRational(30000, 1001)
	if r.Num != 30000 || r.Den != 1001 {
		t.Errorf("Expected 30000/1001, got %d/%d", r.Num, r.Den)
	}

	fps := r.Float64()
	expected := 29.97002997
	if fps < expected-0.0001 || fps > expected+0.0001 {
		t.Errorf("Expected ~%f, got %f", expected, fps)
	}

	if NewRational(1, 0).Float64() != 0 {
		t.Error("Zero denominator should return 0")
	}
	if r.String() != "30000/1001" {
		t.Errorf("String = %q", r.String())
	}
}

func TestRationalValid(t *testing.T) {
	tests := []struct {
		r    Rational
		want bool
	}{
		{NewRational(1, 90000), true},
		{NewRational(0, 1), false},
		{NewRational(1, 0), false},
		{NewRational(-1, 25), false},
	}
	for _, tt := range tests {
		if got := tt.r.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestRationalReduceAndInvert(t *testing.T) {
	r := NewRational(48000, 2002).Reduce()
	if r.Num != 24000 || r.Den != 1001 {
		t.Errorf("Reduce = %v, want 24000/1001", r)
	}
	if inv := r.Invert(); inv.Num != 1001 || inv.Den != 24000 {
		t.Errorf("Invert = %v", inv)
	}
}

func TestRationalCmp(t *testing.T) {
	a := NewRational(1, 2)
	if a.Cmp(NewRational(1, 3)) <= 0 {
		t.Error("Expected 1/2 > 1/3")
	}
	if a.Cmp(NewRational(2, 4)) != 0 {
		t.Error("Expected 1/2 == 2/4")
	}
	if a.Cmp(NewRational(3, 4)) >= 0 {
		t.Error("Expected 1/2 < 3/4")
	}
}

func TestRescaleRndFallback(t *testing.T) {
	tests := []struct {
		a, b, c int64
		rnd     Rounding
		want    int64
	}{
		{1, 90000, 1, RoundUp, 90000},
		{10, 1001, 24000, RoundUp, 1},
		{10, 1001, 24000, RoundZero, 0},
		{1500000, 1, 1000, RoundNearInf, 1500},
		{5, 1, 0, RoundUp, 0},
	}
	for _, tt := range tests {
		if got := rescaleRndGo(tt.a, tt.b, tt.c, tt.rnd); got != tt.want {
			t.Errorf("rescaleRndGo(%d, %d, %d) = %d, want %d", tt.a, tt.b, tt.c, got, tt.want)
		}
	}
}

func TestRescaleRnd(t *testing.T) {
	skipIfNoFFmpeg(t)
	// 2.5 seconds in a 1/90000 time base.
	if got := RescaleRnd(2500000, 90000, TimeBase, RoundUp); got != 225000 {
		t.Errorf("RescaleRnd = %d, want 225000", got)
	}
}

func TestErrorHelpers(t *testing.T) {
	if NewError(0, "av_read_frame") != nil {
		t.Error("non-negative codes are not errors")
	}

	err := &Error{Code: AVERROR_EOF, Message: "End of file", Op: "av_read_frame"}
	wrapped := fmt.Errorf("decode: %w", err)
	if !IsEOF(wrapped) {
		t.Error("IsEOF should see through wrapping")
	}
	if IsAgain(wrapped) {
		t.Error("EOF is not EAGAIN")
	}
	if Code(errors.New("plain")) != 0 {
		t.Error("Code of a non-FFmpeg error should be 0")
	}
	if err.Error() != "av_read_frame: End of file" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestErrorString(t *testing.T) {
	skipIfNoFFmpeg(t)
	if msg := ErrorString(AVERROR_EOF); msg == "" {
		t.Error("ErrorString should return non-empty string for AVERROR_EOF")
	}
	if msg := ErrorString(-999999); msg == "" {
		t.Error("ErrorString should return non-empty string for unknown error")
	}
}

func TestGoString(t *testing.T) {
	b := []byte("rotate\x00junk")
	if got := GoString(unsafe.Pointer(&b[0])); got != "rotate" {
		t.Errorf("GoString = %q, want rotate", got)
	}
	if GoString(nil) != "" {
		t.Error("GoString(nil) should be empty")
	}
	if got := cString([]byte("abc")); got != "abc" {
		t.Errorf("cString without NUL = %q", got)
	}
}

func TestDictionary(t *testing.T) {
	skipIfNoFFmpeg(t)
	var d Dictionary
	defer DictFree(&d)

	if err := DictSet(&d, "rotate", "90", 0); err != nil {
		t.Fatalf("DictSet: %v", err)
	}
	if err := DictSet(&d, "language", "eng", 0); err != nil {
		t.Fatalf("DictSet: %v", err)
	}

	if v, ok := DictLookup(d, "ROTATE"); !ok || v != "90" {
		t.Errorf("DictLookup(ROTATE) = %q, %v", v, ok)
	}
	if _, ok := DictLookup(d, "title"); ok {
		t.Error("missing key should not be found")
	}

	m := DictToMap(d)
	if len(m) != 2 || m["language"] != "eng" {
		t.Errorf("DictToMap = %v", m)
	}
}

func TestDictToMapNil(t *testing.T) {
	if m := DictToMap(nil); len(m) != 0 {
		t.Errorf("DictToMap(nil) = %v", m)
	}
}

func TestImageAlloc(t *testing.T) {
	skipIfNoFFmpeg(t)
	data, linesize, err := ImageAlloc(64, 2, PixelFormatBGR24, 1)
	if err != nil {
		t.Fatalf("ImageAlloc: %v", err)
	}
	defer Free(data[0])

	if data[0] == nil {
		t.Fatal("data[0] is nil")
	}
	if linesize[0] != 64*3 {
		t.Errorf("linesize[0] = %d, want %d", linesize[0], 64*3)
	}
}

func TestSamplesBufferSize(t *testing.T) {
	skipIfNoFFmpeg(t)
	n, err := SamplesBufferSize(2, 1024, SampleFormatS16, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2*1024*2 {
		t.Errorf("size = %d, want %d", n, 2*1024*2)
	}
}

func TestAudioFifo(t *testing.T) {
	skipIfNoFFmpeg(t)
	fifo := AudioFifoAlloc(SampleFormatS16, 2, 1)
	if fifo == nil {
		t.Fatal("AudioFifoAlloc returned nil")
	}
	defer AudioFifoFree(&fifo)

	planes, _, err := SamplesAlloc(2, 256, SampleFormatS16, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer Free(planes[0])

	if err := AudioFifoRealloc(fifo, 512); err != nil {
		t.Fatal(err)
	}
	if n, err := AudioFifoWrite(fifo, &planes, 256); err != nil || n != 256 {
		t.Fatalf("AudioFifoWrite = %d, %v", n, err)
	}
	if AudioFifoSize(fifo) != 256 {
		t.Errorf("size = %d, want 256", AudioFifoSize(fifo))
	}
	if n, err := AudioFifoRead(fifo, &planes, 1000); err != nil || n != 256 {
		t.Fatalf("AudioFifoRead = %d, %v", n, err)
	}
	if AudioFifoSize(fifo) != 0 {
		t.Error("fifo should be empty after draining")
	}

	AudioFifoFree(&fifo)
	if fifo != nil {
		t.Error("fifo should be nil after free")
	}
}

func TestDefaultChannelMask(t *testing.T) {
	// The fallback table applies even without FFmpeg.
	if got := DefaultChannelMask(2); got != ChannelLayoutStereo {
		t.Errorf("DefaultChannelMask(2) = %#x", got)
	}
	if got := DefaultChannelMask(1); got != ChannelLayoutMono {
		t.Errorf("DefaultChannelMask(1) = %#x", got)
	}
}

func TestLogLevel(t *testing.T) {
	skipIfNoFFmpeg(t)
	old, err := LogGetLevel()
	if err != nil {
		t.Fatal(err)
	}
	defer LogSetLevel(old)

	if err := LogSetLevel(16); err != nil {
		t.Fatal(err)
	}
	if got, _ := LogGetLevel(); got != 16 {
		t.Errorf("LogGetLevel = %d, want 16", got)
	}
}

func TestSampleFormat(t *testing.T) {
	if SampleFormatS16.BytesPerSample() != 2 || SampleFormatFltP.BytesPerSample() != 4 {
		t.Error("BytesPerSample mismatch")
	}
	if SampleFormatS16.IsPlanar() || !SampleFormatFltP.IsPlanar() || !SampleFormatS64P.IsPlanar() {
		t.Error("IsPlanar mismatch")
	}
	if MediaTypeAudio.String() != "audio" || MediaType(42).String() != "unknown" {
		t.Error("MediaType.String mismatch")
	}
}

func TestOptGetRationalNil(t *testing.T) {
	if _, err := OptGetRational(nil, "pkt_timebase"); Code(err) != AVERROR_EINVAL {
		t.Errorf("OptGetRational(nil) = %v, want EINVAL", err)
	}
}
