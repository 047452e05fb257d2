//go:build !ios && !android && (amd64 || arm64)

package avutil

import (
	"math/bits"
	"unsafe"
)

// ImageAlloc allocates a picture buffer for w x h in pixFmt. The buffer is
// data[0]; free it with Free.
func ImageAlloc(w, h int32, pixFmt PixelFormat, align int32) (data [4]unsafe.Pointer, linesize [4]int32, err error) {
	if avImageAlloc == nil {
		return data, linesize, NewError(AVERROR_EINVAL, "av_image_alloc")
	}
	ret := avImageAlloc(&data, &linesize, w, h, int32(pixFmt), align)
	return data, linesize, NewError(ret, "av_image_alloc")
}

// SamplesAlloc allocates a buffer for nbSamples of packed or planar audio.
// The returned planes share one allocation rooted at planes[0]; free it
// with Free.
func SamplesAlloc(nbChannels, nbSamples int32, fmt SampleFormat, align int32) (planes [8]unsafe.Pointer, linesize int32, err error) {
	if avSamplesAlloc == nil {
		return planes, 0, NewError(AVERROR_EINVAL, "av_samples_alloc")
	}
	ret := avSamplesAlloc(&planes, &linesize, nbChannels, nbSamples, int32(fmt), align)
	return planes, linesize, NewError(ret, "av_samples_alloc")
}

// SamplesBufferSize returns the byte size of nbSamples in fmt.
func SamplesBufferSize(nbChannels, nbSamples int32, fmt SampleFormat, align int32) (int, error) {
	if avSamplesGetBufferSize == nil {
		return 0, NewError(AVERROR_EINVAL, "av_samples_get_buffer_size")
	}
	ret := avSamplesGetBufferSize(nil, nbChannels, nbSamples, int32(fmt), align)
	if ret < 0 {
		return 0, NewError(ret, "av_samples_get_buffer_size")
	}
	return int(ret), nil
}

// AudioFifo is an opaque AVAudioFifo pointer.
type AudioFifo = unsafe.Pointer

// AudioFifoAlloc allocates a FIFO holding nbSamples of fmt initially.
func AudioFifoAlloc(fmt SampleFormat, channels, nbSamples int32) AudioFifo {
	if avAudioFifoAlloc == nil {
		return nil
	}
	return avAudioFifoAlloc(int32(fmt), channels, nbSamples)
}

// AudioFifoFree frees *fifo and sets it to nil.
func AudioFifoFree(fifo *AudioFifo) {
	if fifo == nil || *fifo == nil || avAudioFifoFree == nil {
		return
	}
	avAudioFifoFree(*fifo)
	*fifo = nil
}

// AudioFifoRealloc grows the FIFO to hold nbSamples.
func AudioFifoRealloc(fifo AudioFifo, nbSamples int32) error {
	if fifo == nil || avAudioFifoRealloc == nil {
		return NewError(AVERROR_EINVAL, "av_audio_fifo_realloc")
	}
	return NewError(avAudioFifoRealloc(fifo, nbSamples), "av_audio_fifo_realloc")
}

// AudioFifoWrite appends nbSamples from planes and returns the count written.
func AudioFifoWrite(fifo AudioFifo, planes *[8]unsafe.Pointer, nbSamples int32) (int32, error) {
	if fifo == nil || avAudioFifoWrite == nil {
		return 0, NewError(AVERROR_EINVAL, "av_audio_fifo_write")
	}
	ret := avAudioFifoWrite(fifo, planes, nbSamples)
	if ret < 0 {
		return 0, NewError(ret, "av_audio_fifo_write")
	}
	return ret, nil
}

// AudioFifoRead drains up to nbSamples into planes and returns the count read.
func AudioFifoRead(fifo AudioFifo, planes *[8]unsafe.Pointer, nbSamples int32) (int32, error) {
	if fifo == nil || avAudioFifoRead == nil {
		return 0, NewError(AVERROR_EINVAL, "av_audio_fifo_read")
	}
	ret := avAudioFifoRead(fifo, planes, nbSamples)
	if ret < 0 {
		return 0, NewError(ret, "av_audio_fifo_read")
	}
	return ret, nil
}

// AudioFifoSize returns the number of buffered samples per channel.
func AudioFifoSize(fifo AudioFifo) int32 {
	if fifo == nil || avAudioFifoSize == nil {
		return 0
	}
	return avAudioFifoSize(fifo)
}

// AVChannelLayout layout, identical in libavutil 57.24 through 59.
const (
	offsetChLayoutOrder      = 0
	offsetChLayoutNbChannels = 4
	offsetChLayoutMask       = 8
	sizeChLayout             = 24
)

// ChannelOrder is an AVChannelOrder.
type ChannelOrder int32

const (
	ChannelOrderUnspec ChannelOrder = 0
	ChannelOrderNative ChannelOrder = 1
	ChannelOrderCustom ChannelOrder = 2
)

// Channel masks for the layouts the decoder emits.
const (
	ChannelLayoutMono   uint64 = 0x4
	ChannelLayoutStereo uint64 = 0x3
)

// ReadChannelLayout reads an AVChannelLayout embedded at ptr.
func ReadChannelLayout(ptr unsafe.Pointer) (order ChannelOrder, channels int32, mask uint64) {
	if ptr == nil {
		return ChannelOrderUnspec, 0, 0
	}
	order = ChannelOrder(*(*int32)(unsafe.Add(ptr, offsetChLayoutOrder)))
	channels = *(*int32)(unsafe.Add(ptr, offsetChLayoutNbChannels))
	if order == ChannelOrderNative {
		mask = *(*uint64)(unsafe.Add(ptr, offsetChLayoutMask))
	}
	return order, channels, mask
}

// DefaultChannelMask returns FFmpeg's default native mask for n channels,
// or 0 when none is known.
func DefaultChannelMask(n int32) uint64 {
	if avChannelLayoutDefault != nil {
		layout := Malloc(sizeChLayout)
		if layout != nil {
			defer Free(layout)
			avChannelLayoutDefault(layout, n)
			if order, _, mask := ReadChannelLayout(layout); order == ChannelOrderNative && bits.OnesCount64(mask) == int(n) {
				return mask
			}
		}
	}
	return defaultMasks[n]
}

// Fallback for libraries without av_channel_layout_default.
var defaultMasks = map[int32]uint64{
	1: ChannelLayoutMono,
	2: ChannelLayoutStereo,
}
