//go:build !ios && !android && (amd64 || arm64)

// Package swresample provides audio resampling and sample format
// conversion using FFmpeg's libswresample.
package swresample

import (
	"errors"
	"math/bits"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/ffdecode/avutil"
	"github.com/obinnaokechukwu/ffdecode/internal/bindings"
)

// Context is an opaque SwrContext pointer.
type Context = unsafe.Pointer

// Function bindings
var (
	swrInit          func(s unsafe.Pointer) int32
	swrFree          func(s *unsafe.Pointer)
	swrConvert       func(s unsafe.Pointer, out *[8]unsafe.Pointer, outCount int32, in unsafe.Pointer, inCount int32) int32
	swrGetOutSamples func(s unsafe.Pointer, inSamples int32) int32
	swrGetDelay      func(s unsafe.Pointer, base int64) int64

	// FFmpeg 5.1+ with AVChannelLayout
	swrAllocSetOpts2 func(ps *unsafe.Pointer,
		outChLayout unsafe.Pointer, outFmt, outRate int32,
		inChLayout unsafe.Pointer, inFmt, inRate int32,
		logOffset int32, logCtx unsafe.Pointer) int32

	// Legacy uint64 mask API, removed in FFmpeg 7
	swrAllocSetOpts func(s unsafe.Pointer,
		outChLayout int64, outFmt, outRate int32,
		inChLayout int64, inFmt, inRate int32,
		logOffset int32, logCtx unsafe.Pointer) unsafe.Pointer

	bindingsRegistered bool
)

// ErrNoAllocator is returned when neither swr_alloc_set_opts2 nor the
// legacy swr_alloc_set_opts is exported by the loaded library.
var ErrNoAllocator = errors.New("swresample: no swr_alloc_set_opts variant available")

// Load registers the swresample bindings.
func Load() error {
	if bindingsRegistered {
		return nil
	}
	if err := bindings.Load(); err != nil {
		return err
	}

	lib := bindings.LibSWResample()
	if lib == 0 {
		return bindings.ErrLibraryNotFound
	}

	purego.RegisterLibFunc(&swrInit, lib, "swr_init")
	purego.RegisterLibFunc(&swrFree, lib, "swr_free")
	purego.RegisterLibFunc(&swrConvert, lib, "swr_convert")
	purego.RegisterLibFunc(&swrGetOutSamples, lib, "swr_get_out_samples")
	purego.RegisterLibFunc(&swrGetDelay, lib, "swr_get_delay")

	bindings.RegisterOptional(&swrAllocSetOpts2, lib, "swr_alloc_set_opts2")
	bindings.RegisterOptional(&swrAllocSetOpts, lib, "swr_alloc_set_opts")

	bindingsRegistered = true
	return nil
}

// Layout describes one side of a conversion.
type Layout struct {
	ChannelMask  uint64
	SampleFormat avutil.SampleFormat
	SampleRate   int32
}

// Channels returns the number of channels in the mask.
func (l Layout) Channels() int32 {
	return int32(bits.OnesCount64(l.ChannelMask))
}

// New allocates and initializes a context converting in to out.
func New(out, in Layout) (Context, error) {
	var s Context
	switch {
	case swrAllocSetOpts2 != nil:
		outLayout, err := nativeLayout(out.ChannelMask)
		if err != nil {
			return nil, err
		}
		defer avutil.Free(outLayout)
		inLayout, err := nativeLayout(in.ChannelMask)
		if err != nil {
			return nil, err
		}
		defer avutil.Free(inLayout)

		ret := swrAllocSetOpts2(&s,
			outLayout, int32(out.SampleFormat), out.SampleRate,
			inLayout, int32(in.SampleFormat), in.SampleRate,
			0, nil)
		if ret < 0 {
			return nil, avutil.NewError(ret, "swr_alloc_set_opts2")
		}
	case swrAllocSetOpts != nil:
		s = swrAllocSetOpts(nil,
			int64(out.ChannelMask), int32(out.SampleFormat), out.SampleRate,
			int64(in.ChannelMask), int32(in.SampleFormat), in.SampleRate,
			0, nil)
		if s == nil {
			return nil, avutil.NewError(avutil.AVERROR_ENOMEM, "swr_alloc_set_opts")
		}
	default:
		return nil, ErrNoAllocator
	}

	if ret := swrInit(s); ret < 0 {
		Free(&s)
		return nil, avutil.NewError(ret, "swr_init")
	}
	return s, nil
}

// sizeof(AVChannelLayout): order, nb_channels, mask, opaque.
const sizeChLayout = 24

// nativeLayout builds an AVChannelLayout in C memory. Free it with avutil.Free.
func nativeLayout(mask uint64) (unsafe.Pointer, error) {
	p := avutil.Malloc(sizeChLayout)
	if p == nil {
		return nil, avutil.NewError(avutil.AVERROR_ENOMEM, "av_malloc")
	}
	buf := unsafe.Slice((*byte)(p), sizeChLayout)
	clear(buf)
	*(*int32)(p) = int32(avutil.ChannelOrderNative)
	*(*int32)(unsafe.Add(p, 4)) = int32(bits.OnesCount64(mask))
	*(*uint64)(unsafe.Add(p, 8)) = mask
	return p, nil
}

// Free releases the context and sets *s to nil.
func Free(s *Context) {
	if s == nil || *s == nil || swrFree == nil {
		return
	}
	swrFree(s)
	*s = nil
}

// Convert converts inCount samples from the plane array at in (a frame's
// extended_data) into out, which has room for outCount samples.
// A nil in flushes buffered samples. Returns samples written per channel.
func Convert(s Context, out *[8]unsafe.Pointer, outCount int32, in unsafe.Pointer, inCount int32) (int32, error) {
	if s == nil || swrConvert == nil {
		return 0, bindings.ErrNotLoaded
	}
	ret := swrConvert(s, out, outCount, in, inCount)
	if ret < 0 {
		return 0, avutil.NewError(ret, "swr_convert")
	}
	return ret, nil
}

// OutSamples returns an upper bound on the samples the next Convert with
// inSamples input samples will produce.
func OutSamples(s Context, inSamples int32) int32 {
	if s == nil || swrGetOutSamples == nil {
		return 0
	}
	return swrGetOutSamples(s, inSamples)
}

// Delay returns the buffered delay expressed in 1/base seconds.
func Delay(s Context, base int64) int64 {
	if s == nil || swrGetDelay == nil {
		return 0
	}
	return swrGetDelay(s, base)
}
