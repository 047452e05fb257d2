//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
	"unsafe"

	"github.com/obinnaokechukwu/ffdecode/avcodec"
	"github.com/obinnaokechukwu/ffdecode/avutil"
	"github.com/obinnaokechukwu/ffdecode/internal/bindings"
	"github.com/obinnaokechukwu/ffdecode/swresample"
)

// ChannelLayout is a native FFmpeg channel mask (AV_CH_*).
type ChannelLayout uint64

// Single speaker positions.
const (
	ChannelFrontLeft   ChannelLayout = 0x1
	ChannelFrontRight  ChannelLayout = 0x2
	ChannelFrontCenter ChannelLayout = 0x4
	ChannelLowFreq     ChannelLayout = 0x8
	ChannelBackLeft    ChannelLayout = 0x10
	ChannelBackRight   ChannelLayout = 0x20
)

const (
	ChannelLayoutMono        ChannelLayout = 0x4   // AV_CH_LAYOUT_MONO
	ChannelLayoutStereo      ChannelLayout = 0x3   // AV_CH_LAYOUT_STEREO
	ChannelLayout2Point1     ChannelLayout = 0xB   // AV_CH_LAYOUT_2POINT1
	ChannelLayoutSurround    ChannelLayout = 0x7   // AV_CH_LAYOUT_SURROUND
	ChannelLayout5Point0     ChannelLayout = 0x607 // AV_CH_LAYOUT_5POINT0
	ChannelLayout5Point1     ChannelLayout = 0x60F // AV_CH_LAYOUT_5POINT1
	ChannelLayout6Point1     ChannelLayout = 0x70F // AV_CH_LAYOUT_6POINT1
	ChannelLayout7Point1     ChannelLayout = 0x63F // AV_CH_LAYOUT_7POINT1
	ChannelLayout7Point1Wide ChannelLayout = 0x6CF // AV_CH_LAYOUT_7POINT1_WIDE
)

// Channels returns the number of channels in the layout.
func (cl ChannelLayout) Channels() int {
	return bits.OnesCount64(uint64(cl))
}

// String returns the name of the channel layout
func (cl ChannelLayout) String() string {
	switch cl {
	case ChannelLayoutMono:
		return "mono"
	case ChannelLayoutStereo:
		return "stereo"
	case ChannelLayout2Point1:
		return "2.1"
	case ChannelLayoutSurround:
		return "surround"
	case ChannelLayout5Point0:
		return "5.0"
	case ChannelLayout5Point1:
		return "5.1"
	case ChannelLayout6Point1:
		return "6.1"
	case ChannelLayout7Point1:
		return "7.1"
	case ChannelLayout7Point1Wide:
		return "7.1(wide)"
	default:
		return fmt.Sprintf("0x%x", uint64(cl))
	}
}

// ParseChannelLayout accepts a layout name from String or a hex mask
// such as "0x3".
func ParseChannelLayout(s string) (ChannelLayout, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, cl := range []ChannelLayout{
		ChannelLayoutMono, ChannelLayoutStereo, ChannelLayout2Point1, ChannelLayoutSurround,
		ChannelLayout5Point0, ChannelLayout5Point1, ChannelLayout6Point1,
		ChannelLayout7Point1, ChannelLayout7Point1Wide,
	} {
		if cl.String() == s {
			return cl, nil
		}
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("ffdecode: unknown channel layout %q", s)
	}
	return ChannelLayout(v), nil
}

// sourceMask returns the codec's native channel mask, falling back to the
// default layout for its channel count and then to mono.
func sourceMask(ctx avcodec.Context) uint64 {
	if mask := avcodec.GetCtxChannelMask(ctx); mask != 0 {
		return mask
	}
	return uint64(ChannelLayoutMono)
}

// resampler converts decoded frames into interleaved S16 of a fixed
// layout and rate.
type resampler struct {
	swr swresample.Context
	src swresample.Layout
	dst swresample.Layout
}

func newResampler(dst, src swresample.Layout) (*resampler, error) {
	if !bindings.HasSWResample() {
		return nil, localError(KindNative, codeLocal, opDecodeAudio, "libswresample not available")
	}
	swr, err := swresample.New(dst, src)
	if err != nil {
		return nil, wrapNative(err, opDecodeAudio)
	}
	return &resampler{swr: swr, src: src, dst: dst}, nil
}

// convert resamples one frame into a freshly allocated sample buffer.
// The caller frees planes[0] with avutil.Free.
func (r *resampler) convert(frame avutil.Frame) (planes [8]unsafe.Pointer, n int32, err error) {
	in := avutil.GetFrameNbSamples(frame)
	out := int32(avutil.RescaleRnd(int64(in), int64(r.dst.SampleRate), int64(r.src.SampleRate), avutil.RoundUp))

	planes, _, err = avutil.SamplesAlloc(r.dst.Channels(), out, r.dst.SampleFormat, 0)
	if err != nil {
		return planes, 0, wrapNative(err, opDecodeAudio)
	}

	n, err = swresample.Convert(r.swr, &planes, out, avutil.GetFrameExtendedData(frame), in)
	if err != nil {
		avutil.Free(planes[0])
		return [8]unsafe.Pointer{}, 0, wrapNative(err, opDecodeAudio)
	}
	return planes, n, nil
}

func (r *resampler) close() {
	swresample.Free(&r.swr)
}
