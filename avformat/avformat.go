//go:build !ios && !android && (amd64 || arm64)

// Package avformat provides bindings to FFmpeg's libavformat library.
// It covers input demuxing, seeking, custom AVIO contexts and the
// AVFormatContext and AVStream fields the decoder reads.
package avformat

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/ffdecode/avcodec"
	"github.com/obinnaokechukwu/ffdecode/avutil"
	"github.com/obinnaokechukwu/ffdecode/internal/bindings"
)

// FormatContext is an opaque FFmpeg AVFormatContext pointer.
type FormatContext = unsafe.Pointer

// InputFormat is an opaque FFmpeg AVInputFormat pointer.
type InputFormat = unsafe.Pointer

// Stream is an opaque FFmpeg AVStream pointer.
type Stream = unsafe.Pointer

// IOContext is an opaque FFmpeg AVIOContext pointer.
type IOContext = unsafe.Pointer

// Seek flags for SeekFrame.
const (
	SeekFlagBackward = 1
	SeekFlagByte     = 2
	SeekFlagAny      = 4
	SeekFlagFrame    = 8
)

// SeekSize is AVSEEK_SIZE: the whence value asking a seek callback for the
// total stream size.
const SeekSize = 0x10000

// FlagCustomIO is AVFMT_FLAG_CUSTOM_IO.
const FlagCustomIO = 0x0080

// Function bindings
var (
	avformatOpenInput      func(ctx *unsafe.Pointer, url string, fmt unsafe.Pointer, options *unsafe.Pointer) int32
	avformatCloseInput     func(ctx *unsafe.Pointer)
	avformatFindStreamInfo func(ctx unsafe.Pointer, options *unsafe.Pointer) int32
	avformatAllocContext   func() unsafe.Pointer
	avformatFreeContext    func(ctx unsafe.Pointer)
	avFindInputFormat      func(shortName string) unsafe.Pointer

	avReadFrame func(ctx, pkt unsafe.Pointer) int32
	avSeekFrame func(ctx unsafe.Pointer, streamIndex int32, timestamp int64, flags int32) int32

	avioAllocContext func(buffer unsafe.Pointer, bufferSize, writeFlag int32, opaque unsafe.Pointer, readPacket, writePacket, seek uintptr) unsafe.Pointer
	avioContextFree  func(ctx *unsafe.Pointer)

	bindingsRegistered bool
)

// Load registers the avformat bindings. It is safe to call more than once.
func Load() error {
	if bindingsRegistered {
		return nil
	}
	if err := bindings.Load(); err != nil {
		return err
	}

	lib := bindings.LibAVFormat()
	if lib == 0 {
		return bindings.ErrNotLoaded
	}

	purego.RegisterLibFunc(&avformatOpenInput, lib, "avformat_open_input")
	purego.RegisterLibFunc(&avformatCloseInput, lib, "avformat_close_input")
	purego.RegisterLibFunc(&avformatFindStreamInfo, lib, "avformat_find_stream_info")
	purego.RegisterLibFunc(&avformatAllocContext, lib, "avformat_alloc_context")
	purego.RegisterLibFunc(&avformatFreeContext, lib, "avformat_free_context")
	purego.RegisterLibFunc(&avFindInputFormat, lib, "av_find_input_format")

	purego.RegisterLibFunc(&avReadFrame, lib, "av_read_frame")
	purego.RegisterLibFunc(&avSeekFrame, lib, "av_seek_frame")

	purego.RegisterLibFunc(&avioAllocContext, lib, "avio_alloc_context")
	purego.RegisterLibFunc(&avioContextFree, lib, "avio_context_free")

	bindingsRegistered = true
	return nil
}

// AllocContext allocates an AVFormatContext.
func AllocContext() FormatContext {
	if avformatAllocContext == nil {
		return nil
	}
	return avformatAllocContext()
}

// FreeContext frees an AVFormatContext that was never opened.
func FreeContext(ctx FormatContext) {
	if ctx == nil || avformatFreeContext == nil {
		return
	}
	avformatFreeContext(ctx)
}

// OpenInput opens url, or the AVIO context already attached to *ctx when
// url is empty. On failure FFmpeg frees *ctx and sets it to nil. Entries
// consumed from options are removed from it.
func OpenInput(ctx *FormatContext, url string, fmt InputFormat, options *avutil.Dictionary) error {
	if avformatOpenInput == nil {
		return bindings.ErrNotLoaded
	}
	ret := avformatOpenInput(ctx, url, fmt, options)
	runtime.KeepAlive(url)
	return avutil.NewError(ret, "avformat_open_input")
}

// CloseInput closes an input file and frees the context.
func CloseInput(ctx *FormatContext) {
	if ctx == nil || *ctx == nil || avformatCloseInput == nil {
		return
	}
	avformatCloseInput(ctx)
	*ctx = nil
}

// FindStreamInfo reads packets to get stream info.
func FindStreamInfo(ctx FormatContext) error {
	if avformatFindStreamInfo == nil {
		return bindings.ErrNotLoaded
	}
	return avutil.NewError(avformatFindStreamInfo(ctx, nil), "avformat_find_stream_info")
}

// FindInputFormat looks up a demuxer by short name, e.g. "mp4" or "matroska".
func FindInputFormat(name string) InputFormat {
	if avFindInputFormat == nil || name == "" {
		return nil
	}
	f := avFindInputFormat(name)
	runtime.KeepAlive(name)
	return f
}

// ReadFrame reads the next packet of any stream into pkt.
func ReadFrame(ctx FormatContext, pkt avcodec.Packet) error {
	if avReadFrame == nil {
		return bindings.ErrNotLoaded
	}
	return avutil.NewError(avReadFrame(ctx, pkt), "av_read_frame")
}

// SeekFrame seeks streamIndex to timestamp in that stream's time base.
func SeekFrame(ctx FormatContext, streamIndex int32, timestamp int64, flags int32) error {
	if avSeekFrame == nil {
		return bindings.ErrNotLoaded
	}
	return avutil.NewError(avSeekFrame(ctx, streamIndex, timestamp, flags), "av_seek_frame")
}

// IOAllocContext wraps buffer (allocated with av_malloc) in a read-only or
// writable AVIOContext driven by purego callbacks.
func IOAllocContext(buffer unsafe.Pointer, bufferSize int, writable bool, opaque unsafe.Pointer, read, write, seek uintptr) IOContext {
	if avioAllocContext == nil {
		return nil
	}
	var w int32
	if writable {
		w = 1
	}
	return avioAllocContext(buffer, int32(bufferSize), w, opaque, read, write, seek)
}

// AVIOContext field offsets, stable since libavformat 58.
const offsetIOBuffer = 8 // unsigned char *buffer

// IOContextFree frees the AVIOContext together with its current buffer,
// which FFmpeg may have reallocated since IOAllocContext.
func IOContextFree(ctx *IOContext) {
	if ctx == nil || *ctx == nil || avioContextFree == nil {
		return
	}
	bufField := (*unsafe.Pointer)(unsafe.Add(*ctx, offsetIOBuffer))
	avutil.Free(*bufField)
	*bufField = nil
	avioContextFree(ctx)
	*ctx = nil
}

// AVFormatContext field offsets for libavformat 60 (FFmpeg 6.x).
const (
	offsetIFormat    = 8  // const AVInputFormat *iformat
	offsetIOContext  = 32 // AVIOContext *pb
	offsetNumStreams = 44 // unsigned int nb_streams
	offsetStreams    = 48 // AVStream **streams
	offsetStartTime  = 64 // int64_t start_time
	offsetDuration   = 72 // int64_t duration
	offsetBitRate    = 80 // int64_t bit_rate
	offsetFlags      = 96 // int flags
)

// GetNumStreams returns nb_streams.
func GetNumStreams(ctx FormatContext) int {
	if ctx == nil {
		return 0
	}
	return int(*(*uint32)(unsafe.Add(ctx, offsetNumStreams)))
}

// GetStream returns streams[index], or nil when out of range.
func GetStream(ctx FormatContext, index int) Stream {
	if ctx == nil || index < 0 || index >= GetNumStreams(ctx) {
		return nil
	}
	streams := *(*unsafe.Pointer)(unsafe.Add(ctx, offsetStreams))
	if streams == nil {
		return nil
	}
	return *(*unsafe.Pointer)(unsafe.Add(streams, index*8))
}

// GetStartTime returns the container start time in AV_TIME_BASE units.
func GetStartTime(ctx FormatContext) int64 {
	if ctx == nil {
		return avutil.NoPTSValue
	}
	return *(*int64)(unsafe.Add(ctx, offsetStartTime))
}

// GetDuration returns the container duration in AV_TIME_BASE units.
func GetDuration(ctx FormatContext) int64 {
	if ctx == nil {
		return avutil.NoPTSValue
	}
	return *(*int64)(unsafe.Add(ctx, offsetDuration))
}

// GetBitRate returns the total stream bitrate in bit/s, or 0 if unknown.
func GetBitRate(ctx FormatContext) int64 {
	if ctx == nil {
		return 0
	}
	return *(*int64)(unsafe.Add(ctx, offsetBitRate))
}

// SetIOContext attaches pb before OpenInput is called.
func SetIOContext(ctx FormatContext, pb IOContext) {
	if ctx == nil {
		return
	}
	*(*unsafe.Pointer)(unsafe.Add(ctx, offsetIOContext)) = pb
}

// AddFlags ORs flags into AVFormatContext.flags.
func AddFlags(ctx FormatContext, flags int32) {
	if ctx == nil {
		return
	}
	*(*int32)(unsafe.Add(ctx, offsetFlags)) |= flags
}

// GetFormatName returns the short name of the demuxer in use.
func GetFormatName(ctx FormatContext) string {
	if ctx == nil {
		return ""
	}
	iformat := *(*unsafe.Pointer)(unsafe.Add(ctx, offsetIFormat))
	if iformat == nil {
		return ""
	}
	// AVInputFormat.name is the first field.
	return avutil.GoString(*(*unsafe.Pointer)(iformat))
}

// AVStream field offsets for libavformat 60.x (FFmpeg 6.1) and 61.x.
const (
	offsetStreamIndex        = 8   // int index
	offsetStreamCodecPar     = 16  // AVCodecParameters *codecpar
	offsetStreamTimeBase     = 32  // AVRational time_base
	offsetStreamStartTime    = 40  // int64_t start_time
	offsetStreamDuration     = 48  // int64_t duration
	offsetStreamNbFrames     = 56  // int64_t nb_frames
	offsetStreamMetadata     = 80  // AVDictionary *metadata
	offsetStreamAvgFrameRate = 88  // AVRational avg_frame_rate
	offsetStreamRFrameRate   = 216 // AVRational r_frame_rate
)

func GetStreamIndex(stream Stream) int32 {
	if stream == nil {
		return -1
	}
	return *(*int32)(unsafe.Add(stream, offsetStreamIndex))
}

func GetStreamCodecPar(stream Stream) avcodec.Parameters {
	if stream == nil {
		return nil
	}
	return *(*unsafe.Pointer)(unsafe.Add(stream, offsetStreamCodecPar))
}

func readRational(p unsafe.Pointer) avutil.Rational {
	return avutil.Rational{
		Num: *(*int32)(p),
		Den: *(*int32)(unsafe.Add(p, 4)),
	}
}

// GetStreamTimeBase returns the unit of the stream's timestamps.
func GetStreamTimeBase(stream Stream) avutil.Rational {
	if stream == nil {
		return avutil.Rational{}
	}
	return readRational(unsafe.Add(stream, offsetStreamTimeBase))
}

func GetStreamStartTime(stream Stream) int64 {
	if stream == nil {
		return avutil.NoPTSValue
	}
	return *(*int64)(unsafe.Add(stream, offsetStreamStartTime))
}

// GetStreamDuration returns the duration in stream time base units.
func GetStreamDuration(stream Stream) int64 {
	if stream == nil {
		return avutil.NoPTSValue
	}
	return *(*int64)(unsafe.Add(stream, offsetStreamDuration))
}

// GetStreamNbFrames returns nb_frames, 0 when the container does not say.
func GetStreamNbFrames(stream Stream) int64 {
	if stream == nil {
		return 0
	}
	return *(*int64)(unsafe.Add(stream, offsetStreamNbFrames))
}

func GetStreamMetadata(stream Stream) avutil.Dictionary {
	if stream == nil {
		return nil
	}
	return *(*unsafe.Pointer)(unsafe.Add(stream, offsetStreamMetadata))
}

func GetStreamAvgFrameRate(stream Stream) avutil.Rational {
	if stream == nil {
		return avutil.Rational{}
	}
	return readRational(unsafe.Add(stream, offsetStreamAvgFrameRate))
}

// GetStreamRFrameRate returns the lowest frame rate that can represent all
// timestamps exactly.
func GetStreamRFrameRate(stream Stream) avutil.Rational {
	if stream == nil {
		return avutil.Rational{}
	}
	return readRational(unsafe.Add(stream, offsetStreamRFrameRate))
}

// AVCodecParameters field offsets, stable since libavcodec 59.
const (
	offsetCodecParType       = 0   // enum AVMediaType codec_type
	offsetCodecParCodecID    = 4   // enum AVCodecID codec_id
	offsetCodecParFormat     = 28  // int format
	offsetCodecParBitRate    = 32  // int64_t bit_rate
	offsetCodecParWidth      = 56  // int width
	offsetCodecParHeight     = 60  // int height
	offsetCodecParSampleRate = 116 // int sample_rate
	offsetCodecParChLayout   = 144 // AVChannelLayout ch_layout
)

func GetCodecParType(par avcodec.Parameters) avutil.MediaType {
	if par == nil {
		return avutil.MediaTypeUnknown
	}
	return avutil.MediaType(*(*int32)(unsafe.Add(par, offsetCodecParType)))
}

func GetCodecParCodecID(par avcodec.Parameters) avcodec.CodecID {
	if par == nil {
		return avcodec.CodecIDNone
	}
	return avcodec.CodecID(*(*int32)(unsafe.Add(par, offsetCodecParCodecID)))
}

// GetCodecParFormat returns the pixel format (video) or sample format (audio).
func GetCodecParFormat(par avcodec.Parameters) int32 {
	if par == nil {
		return -1
	}
	return *(*int32)(unsafe.Add(par, offsetCodecParFormat))
}

func GetCodecParBitRate(par avcodec.Parameters) int64 {
	if par == nil {
		return 0
	}
	return *(*int64)(unsafe.Add(par, offsetCodecParBitRate))
}

func GetCodecParWidth(par avcodec.Parameters) int32 {
	if par == nil {
		return 0
	}
	return *(*int32)(unsafe.Add(par, offsetCodecParWidth))
}

func GetCodecParHeight(par avcodec.Parameters) int32 {
	if par == nil {
		return 0
	}
	return *(*int32)(unsafe.Add(par, offsetCodecParHeight))
}

func GetCodecParSampleRate(par avcodec.Parameters) int32 {
	if par == nil {
		return 0
	}
	return *(*int32)(unsafe.Add(par, offsetCodecParSampleRate))
}

// GetCodecParChannels returns ch_layout.nb_channels.
func GetCodecParChannels(par avcodec.Parameters) int32 {
	if par == nil {
		return 0
	}
	_, n, _ := avutil.ReadChannelLayout(unsafe.Add(par, offsetCodecParChLayout))
	return n
}
