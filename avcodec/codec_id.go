//go:build !ios && !android && (amd64 || arm64)

package avcodec

// CodecID represents FFmpeg codec identifiers.
type CodecID int32

// Codec IDs the tests and CLI refer to by name. Any other value read
// from a stream is still valid; CodecName resolves it through FFmpeg.
const (
	CodecIDNone CodecID = 0

	CodecIDMJPEG    CodecID = 7
	CodecIDMPEG4    CodecID = 12
	CodecIDRAWVIDEO CodecID = 13
	CodecIDH264     CodecID = 27
	CodecIDPNG      CodecID = 61
	CodecIDVP8      CodecID = 139
	CodecIDVP9      CodecID = 167
	CodecIDHEVC     CodecID = 173

	CodecIDPCMS16LE CodecID = 65536
	CodecIDMP3      CodecID = 86017
	CodecIDAAC      CodecID = 86018
	CodecIDAC3      CodecID = 86019
	CodecIDVORBIS   CodecID = 86021
	CodecIDFLAC     CodecID = 86028
	CodecIDOPUS     CodecID = 86076
)

// String returns a short name for well-known IDs without calling into FFmpeg.
func (id CodecID) String() string {
	switch id {
	case CodecIDNone:
		return "none"
	case CodecIDMJPEG:
		return "mjpeg"
	case CodecIDMPEG4:
		return "mpeg4"
	case CodecIDRAWVIDEO:
		return "rawvideo"
	case CodecIDH264:
		return "h264"
	case CodecIDPNG:
		return "png"
	case CodecIDVP8:
		return "vp8"
	case CodecIDVP9:
		return "vp9"
	case CodecIDHEVC:
		return "hevc"
	case CodecIDPCMS16LE:
		return "pcm_s16le"
	case CodecIDMP3:
		return "mp3"
	case CodecIDAAC:
		return "aac"
	case CodecIDAC3:
		return "ac3"
	case CodecIDVORBIS:
		return "vorbis"
	case CodecIDFLAC:
		return "flac"
	case CodecIDOPUS:
		return "opus"
	}
	return "unknown"
}

// IsAudio reports whether id falls in FFmpeg's audio codec range.
func (id CodecID) IsAudio() bool {
	return id >= 0x10000 && id < 0x17000
}
