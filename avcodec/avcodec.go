//go:build !ios && !android && (amd64 || arm64)

// Package avcodec provides bindings to FFmpeg's libavcodec library.
// It covers decoder lookup, the send/receive decode loop, packets and
// the codec context fields a decoder reports after opening.
package avcodec

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/ffdecode/avutil"
	"github.com/obinnaokechukwu/ffdecode/internal/bindings"
)

// Codec is an opaque FFmpeg AVCodec pointer.
type Codec = unsafe.Pointer

// Context is an opaque FFmpeg AVCodecContext pointer.
type Context = unsafe.Pointer

// Packet is an opaque FFmpeg AVPacket pointer.
type Packet = unsafe.Pointer

// Parameters is an opaque FFmpeg AVCodecParameters pointer.
type Parameters = unsafe.Pointer

// Function bindings
var (
	avcodecFindDecoder     func(id int32) unsafe.Pointer
	avcodecAllocContext3   func(codec unsafe.Pointer) unsafe.Pointer
	avcodecFreeContext     func(ctx *unsafe.Pointer)
	avcodecOpen2           func(ctx, codec unsafe.Pointer, options *unsafe.Pointer) int32
	avcodecSendPacket      func(ctx, pkt unsafe.Pointer) int32
	avcodecReceiveFrame    func(ctx, frame unsafe.Pointer) int32
	avcodecFlushBuffers    func(ctx unsafe.Pointer)
	avcodecParametersToCtx func(ctx, par unsafe.Pointer) int32
	avcodecGetName         func(id int32) unsafe.Pointer

	avPacketAlloc func() unsafe.Pointer
	avPacketFree  func(pkt *unsafe.Pointer)
	avPacketUnref func(pkt unsafe.Pointer)

	bindingsRegistered bool
)

// Load registers the avcodec bindings. It is safe to call more than once.
func Load() error {
	if bindingsRegistered {
		return nil
	}
	if err := bindings.Load(); err != nil {
		return err
	}

	lib := bindings.LibAVCodec()
	if lib == 0 {
		return bindings.ErrNotLoaded
	}

	purego.RegisterLibFunc(&avcodecFindDecoder, lib, "avcodec_find_decoder")
	purego.RegisterLibFunc(&avcodecAllocContext3, lib, "avcodec_alloc_context3")
	purego.RegisterLibFunc(&avcodecFreeContext, lib, "avcodec_free_context")
	purego.RegisterLibFunc(&avcodecOpen2, lib, "avcodec_open2")
	purego.RegisterLibFunc(&avcodecSendPacket, lib, "avcodec_send_packet")
	purego.RegisterLibFunc(&avcodecReceiveFrame, lib, "avcodec_receive_frame")
	purego.RegisterLibFunc(&avcodecFlushBuffers, lib, "avcodec_flush_buffers")
	purego.RegisterLibFunc(&avcodecParametersToCtx, lib, "avcodec_parameters_to_context")
	purego.RegisterLibFunc(&avcodecGetName, lib, "avcodec_get_name")

	purego.RegisterLibFunc(&avPacketAlloc, lib, "av_packet_alloc")
	purego.RegisterLibFunc(&avPacketFree, lib, "av_packet_free")
	purego.RegisterLibFunc(&avPacketUnref, lib, "av_packet_unref")

	bindingsRegistered = true
	return nil
}

// FindDecoder finds a registered decoder with the specified codec ID.
func FindDecoder(id CodecID) Codec {
	if avcodecFindDecoder == nil {
		return nil
	}
	return avcodecFindDecoder(int32(id))
}

// AllocContext3 allocates an AVCodecContext with defaults for codec.
func AllocContext3(codec Codec) Context {
	if avcodecAllocContext3 == nil {
		return nil
	}
	return avcodecAllocContext3(codec)
}

// FreeContext frees the codec context and sets the pointer to nil.
func FreeContext(ctx *Context) {
	if ctx == nil || *ctx == nil || avcodecFreeContext == nil {
		return
	}
	avcodecFreeContext(ctx)
	*ctx = nil
}

// Open2 initializes the codec context to use codec.
func Open2(ctx Context, codec Codec, options *avutil.Dictionary) error {
	if avcodecOpen2 == nil {
		return bindings.ErrNotLoaded
	}
	ret := avcodecOpen2(ctx, codec, options)
	return avutil.NewError(ret, "avcodec_open2")
}

// SendPacket supplies a packet to the decoder. A nil packet enters
// draining mode.
func SendPacket(ctx Context, pkt Packet) error {
	if avcodecSendPacket == nil {
		return bindings.ErrNotLoaded
	}
	return avutil.NewError(avcodecSendPacket(ctx, pkt), "avcodec_send_packet")
}

// ReceiveFrame returns decoded output. EAGAIN means another packet is
// needed; EOF means the decoder is fully drained.
func ReceiveFrame(ctx Context, frame avutil.Frame) error {
	if avcodecReceiveFrame == nil {
		return bindings.ErrNotLoaded
	}
	return avutil.NewError(avcodecReceiveFrame(ctx, frame), "avcodec_receive_frame")
}

// FlushBuffers resets internal decoder state. Call it after seeking.
func FlushBuffers(ctx Context) {
	if ctx == nil || avcodecFlushBuffers == nil {
		return
	}
	avcodecFlushBuffers(ctx)
}

// ParametersToContext copies stream parameters into ctx.
func ParametersToContext(ctx Context, par Parameters) error {
	if avcodecParametersToCtx == nil {
		return bindings.ErrNotLoaded
	}
	return avutil.NewError(avcodecParametersToCtx(ctx, par), "avcodec_parameters_to_context")
}

// CodecName returns FFmpeg's short name for id, e.g. "h264".
func CodecName(id CodecID) string {
	if avcodecGetName == nil {
		return id.String()
	}
	return avutil.GoString(avcodecGetName(int32(id)))
}

// PacketAlloc allocates an AVPacket.
func PacketAlloc() Packet {
	if avPacketAlloc == nil {
		return nil
	}
	return avPacketAlloc()
}

// PacketFree frees the packet and sets the pointer to nil.
func PacketFree(pkt *Packet) {
	if pkt == nil || *pkt == nil || avPacketFree == nil {
		return
	}
	avPacketFree(pkt)
	*pkt = nil
}

// PacketUnref releases the packet's buffer and resets its fields.
func PacketUnref(pkt Packet) {
	if pkt == nil || avPacketUnref == nil {
		return
	}
	avPacketUnref(pkt)
}

// AVPacket field offsets, stable since libavcodec 59.
const (
	offsetPacketPts         = 8  // int64 pts
	offsetPacketDts         = 16 // int64 dts
	offsetPacketSize        = 32 // int size
	offsetPacketStreamIndex = 36 // int stream_index
)

func GetPacketPTS(pkt Packet) int64 {
	if pkt == nil {
		return avutil.NoPTSValue
	}
	return *(*int64)(unsafe.Add(pkt, offsetPacketPts))
}

func GetPacketDTS(pkt Packet) int64 {
	if pkt == nil {
		return avutil.NoPTSValue
	}
	return *(*int64)(unsafe.Add(pkt, offsetPacketDts))
}

func GetPacketSize(pkt Packet) int32 {
	if pkt == nil {
		return 0
	}
	return *(*int32)(unsafe.Add(pkt, offsetPacketSize))
}

// GetPacketStreamIndex returns the index of the stream the packet belongs to.
func GetPacketStreamIndex(pkt Packet) int32 {
	if pkt == nil {
		return -1
	}
	return *(*int32)(unsafe.Add(pkt, offsetPacketStreamIndex))
}

// AVCodecContext field offsets for libavcodec 60 (FFmpeg 6.x).
const (
	offsetCtxWidth      = 116 // int width
	offsetCtxHeight     = 120 // int height
	offsetCtxPixFmt     = 136 // enum AVPixelFormat pix_fmt
	offsetCtxSampleRate = 352 // int sample_rate
	offsetCtxSampleFmt  = 360 // enum AVSampleFormat sample_fmt
	offsetCtxChLayout   = 912 // AVChannelLayout ch_layout
)

func GetCtxWidth(ctx Context) int32 {
	if ctx == nil {
		return 0
	}
	return *(*int32)(unsafe.Add(ctx, offsetCtxWidth))
}

func GetCtxHeight(ctx Context) int32 {
	if ctx == nil {
		return 0
	}
	return *(*int32)(unsafe.Add(ctx, offsetCtxHeight))
}

// GetCtxPixFmt returns the decoder's output pixel format.
func GetCtxPixFmt(ctx Context) avutil.PixelFormat {
	if ctx == nil {
		return avutil.PixelFormatNone
	}
	return avutil.PixelFormat(*(*int32)(unsafe.Add(ctx, offsetCtxPixFmt)))
}

func GetCtxSampleRate(ctx Context) int32 {
	if ctx == nil {
		return 0
	}
	return *(*int32)(unsafe.Add(ctx, offsetCtxSampleRate))
}

// GetCtxSampleFmt returns the decoder's output sample format.
func GetCtxSampleFmt(ctx Context) avutil.SampleFormat {
	if ctx == nil {
		return avutil.SampleFormatNone
	}
	return avutil.SampleFormat(*(*int32)(unsafe.Add(ctx, offsetCtxSampleFmt)))
}

// GetCtxChLayoutPtr returns a pointer to the embedded ch_layout field.
func GetCtxChLayoutPtr(ctx Context) unsafe.Pointer {
	if ctx == nil {
		return nil
	}
	return unsafe.Add(ctx, offsetCtxChLayout)
}

// GetCtxChannels returns ch_layout.nb_channels.
func GetCtxChannels(ctx Context) int32 {
	_, n, _ := avutil.ReadChannelLayout(GetCtxChLayoutPtr(ctx))
	return n
}

// GetCtxChannelMask returns the native channel mask of the decoder output,
// substituting FFmpeg's default layout for unordered streams.
func GetCtxChannelMask(ctx Context) uint64 {
	order, n, mask := avutil.ReadChannelLayout(GetCtxChLayoutPtr(ctx))
	if order == avutil.ChannelOrderNative && mask != 0 {
		return mask
	}
	return avutil.DefaultChannelMask(n)
}
