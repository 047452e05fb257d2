//go:build !ios && !android && (amd64 || arm64)

// Package avutil provides bindings to FFmpeg's libavutil library.
// It covers frame management, memory, dictionaries, error strings,
// image and sample buffers, the audio FIFO and rescaling helpers.
package avutil

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/ffdecode/internal/bindings"
)

// Frame is an opaque FFmpeg AVFrame pointer.
type Frame = unsafe.Pointer

// Dictionary is an opaque FFmpeg AVDictionary pointer.
type Dictionary = unsafe.Pointer

// Function bindings, registered by Load.
var (
	avFrameAlloc func() unsafe.Pointer
	avFrameFree  func(frame *unsafe.Pointer)
	avFrameUnref func(frame unsafe.Pointer)

	avMalloc func(size uintptr) unsafe.Pointer
	avFree   func(ptr unsafe.Pointer)

	avDictSet  func(pm *unsafe.Pointer, key, value string, flags int32) int32
	avDictGet  func(m unsafe.Pointer, key string, prev unsafe.Pointer, flags int32) unsafe.Pointer
	avDictFree func(pm *unsafe.Pointer)

	avStrerror func(errnum int32, errbuf unsafe.Pointer, errbufSize uintptr) int32

	avLogSetLevel func(level int32)
	avLogGetLevel func() int32

	avImageAlloc func(pointers *[4]unsafe.Pointer, linesizes *[4]int32, w, h, pixFmt, align int32) int32

	avSamplesAlloc         func(data *[8]unsafe.Pointer, linesize *int32, nbChannels, nbSamples, sampleFmt, align int32) int32
	avSamplesGetBufferSize func(linesize *int32, nbChannels, nbSamples, sampleFmt, align int32) int32

	avAudioFifoAlloc   func(sampleFmt, channels, nbSamples int32) unsafe.Pointer
	avAudioFifoFree    func(fifo unsafe.Pointer)
	avAudioFifoRealloc func(fifo unsafe.Pointer, nbSamples int32) int32
	avAudioFifoWrite   func(fifo unsafe.Pointer, data *[8]unsafe.Pointer, nbSamples int32) int32
	avAudioFifoRead    func(fifo unsafe.Pointer, data *[8]unsafe.Pointer, nbSamples int32) int32
	avAudioFifoSize    func(fifo unsafe.Pointer) int32

	avRescaleRnd func(a, b, c int64, rnd int32) int64

	avOptGetQ func(obj unsafe.Pointer, name string, searchFlags int32, out *Rational) int32

	// FFmpeg 5.1+
	avChannelLayoutDefault func(chLayout unsafe.Pointer, nbChannels int32)

	bindingsRegistered bool
	libMajor           uint32
)

// Load registers the avutil bindings. bindings.Load must have succeeded.
// It is safe to call more than once.
func Load() error {
	if bindingsRegistered {
		return nil
	}
	if err := bindings.Load(); err != nil {
		return err
	}

	lib := bindings.LibAVUtil()
	if lib == 0 {
		return bindings.ErrNotLoaded
	}

	purego.RegisterLibFunc(&avFrameAlloc, lib, "av_frame_alloc")
	purego.RegisterLibFunc(&avFrameFree, lib, "av_frame_free")
	purego.RegisterLibFunc(&avFrameUnref, lib, "av_frame_unref")

	purego.RegisterLibFunc(&avMalloc, lib, "av_malloc")
	purego.RegisterLibFunc(&avFree, lib, "av_free")

	purego.RegisterLibFunc(&avDictSet, lib, "av_dict_set")
	purego.RegisterLibFunc(&avDictGet, lib, "av_dict_get")
	purego.RegisterLibFunc(&avDictFree, lib, "av_dict_free")

	purego.RegisterLibFunc(&avStrerror, lib, "av_strerror")

	purego.RegisterLibFunc(&avLogSetLevel, lib, "av_log_set_level")
	purego.RegisterLibFunc(&avLogGetLevel, lib, "av_log_get_level")

	purego.RegisterLibFunc(&avImageAlloc, lib, "av_image_alloc")

	purego.RegisterLibFunc(&avSamplesAlloc, lib, "av_samples_alloc")
	purego.RegisterLibFunc(&avSamplesGetBufferSize, lib, "av_samples_get_buffer_size")

	purego.RegisterLibFunc(&avAudioFifoAlloc, lib, "av_audio_fifo_alloc")
	purego.RegisterLibFunc(&avAudioFifoFree, lib, "av_audio_fifo_free")
	purego.RegisterLibFunc(&avAudioFifoRealloc, lib, "av_audio_fifo_realloc")
	purego.RegisterLibFunc(&avAudioFifoWrite, lib, "av_audio_fifo_write")
	purego.RegisterLibFunc(&avAudioFifoRead, lib, "av_audio_fifo_read")
	purego.RegisterLibFunc(&avAudioFifoSize, lib, "av_audio_fifo_size")

	purego.RegisterLibFunc(&avRescaleRnd, lib, "av_rescale_rnd")

	purego.RegisterLibFunc(&avOptGetQ, lib, "av_opt_get_q")

	bindings.RegisterOptional(&avChannelLayoutDefault, lib, "av_channel_layout_default")

	libMajor = bindings.AVUtilVersion() >> 16
	bindingsRegistered = true
	return nil
}

// FrameAlloc allocates an AVFrame. Free it with FrameFree.
func FrameAlloc() Frame {
	if avFrameAlloc == nil {
		return nil
	}
	return avFrameAlloc()
}

// FrameFree frees an AVFrame and sets the pointer to nil.
// Safe to call with nil pointer.
func FrameFree(frame *Frame) {
	if frame == nil || *frame == nil || avFrameFree == nil {
		return
	}
	avFrameFree(frame)
	*frame = nil
}

// FrameUnref unreferences all buffers referenced by frame.
func FrameUnref(frame Frame) {
	if frame == nil || avFrameUnref == nil {
		return
	}
	avFrameUnref(frame)
}

// Malloc allocates memory using FFmpeg's allocator.
func Malloc(size uintptr) unsafe.Pointer {
	if avMalloc == nil {
		return nil
	}
	return avMalloc(size)
}

// Free frees memory allocated by FFmpeg.
func Free(ptr unsafe.Pointer) {
	if ptr == nil || avFree == nil {
		return
	}
	avFree(ptr)
}

// ErrorString returns a human-readable error message for an FFmpeg error code.
func ErrorString(errnum int32) string {
	if avStrerror == nil {
		return "unknown error (FFmpeg not loaded)"
	}

	buf := make([]byte, 256)
	avStrerror(errnum, unsafe.Pointer(&buf[0]), uintptr(len(buf)))
	return cString(buf)
}

// cString trims buf at the first NUL.
func cString(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// GoString copies a NUL-terminated C string into Go memory.
// Returns "" for nil.
func GoString(ptr unsafe.Pointer) string {
	if ptr == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(ptr, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(ptr), n))
}

// MajorVersion returns the loaded libavutil major version, or 0.
func MajorVersion() uint32 {
	return libMajor
}

// LogSetLevel sets FFmpeg's global log level (AV_LOG_*).
func LogSetLevel(level int32) error {
	if avLogSetLevel == nil {
		return bindings.ErrNotLoaded
	}
	avLogSetLevel(level)
	return nil
}

// LogGetLevel returns FFmpeg's global log level.
func LogGetLevel() (int32, error) {
	if avLogGetLevel == nil {
		return 0, bindings.ErrNotLoaded
	}
	return avLogGetLevel(), nil
}

// Rounding is an AVRounding mode.
type Rounding int32

const (
	RoundZero       Rounding = 0
	RoundInf        Rounding = 1
	RoundDown       Rounding = 2
	RoundUp         Rounding = 3
	RoundNearInf    Rounding = 5
	RoundPassMinMax Rounding = 8192
)

// RescaleRnd returns a * b / c rounded with rnd, without intermediate overflow.
func RescaleRnd(a, b, c int64, rnd Rounding) int64 {
	if avRescaleRnd == nil {
		return rescaleRndGo(a, b, c, rnd)
	}
	return avRescaleRnd(a, b, c, int32(rnd))
}

// rescaleRndGo covers the non-negative cases used before libraries load.
func rescaleRndGo(a, b, c int64, rnd Rounding) int64 {
	if c == 0 {
		return 0
	}
	n := a * b
	switch rnd &^ RoundPassMinMax {
	case RoundUp, RoundInf:
		if n >= 0 {
			return (n + c - 1) / c
		}
	case RoundNearInf:
		if n >= 0 {
			return (n + c/2) / c
		}
	}
	return n / c
}
