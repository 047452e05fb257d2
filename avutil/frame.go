//go:build !ios && !android && (amd64 || arm64)

package avutil

import "unsafe"

// AVFrame field offsets for libavutil 58 (FFmpeg 6.x) on 64-bit targets.
// Fields up to pkt_dts keep the same position in libavutil 57 through 59.
const (
	offsetFrameData         = 0   // uint8_t *data[8]
	offsetFrameLinesize     = 64  // int linesize[8]
	offsetFrameExtendedData = 96  // uint8_t **extended_data
	offsetFrameWidth        = 104 // int width
	offsetFrameHeight       = 108 // int height
	offsetFrameNbSamples    = 112 // int nb_samples
	offsetFrameFormat       = 116 // int format
	offsetFramePTS          = 136 // int64_t pts
	offsetFramePktDTS       = 144 // int64_t pkt_dts
	offsetFrameBestEffort58 = 344 // int64_t best_effort_timestamp
)

// GetFrameData returns data[plane].
func GetFrameData(frame Frame, plane int) unsafe.Pointer {
	if frame == nil || plane < 0 || plane >= 8 {
		return nil
	}
	return *(*unsafe.Pointer)(unsafe.Add(frame, offsetFrameData+plane*8))
}

// GetFrameLinesize returns linesize[plane].
func GetFrameLinesize(frame Frame, plane int) int32 {
	if frame == nil || plane < 0 || plane >= 8 {
		return 0
	}
	return *(*int32)(unsafe.Add(frame, offsetFrameLinesize+plane*4))
}

// GetFrameDataArray returns a pointer to the frame's data[8] array, suitable
// as the plane-pointer argument of sws_scale.
func GetFrameDataArray(frame Frame) unsafe.Pointer {
	if frame == nil {
		return nil
	}
	return unsafe.Add(frame, offsetFrameData)
}

// GetFrameLinesizeArray returns a pointer to the frame's linesize[8] array.
func GetFrameLinesizeArray(frame Frame) unsafe.Pointer {
	if frame == nil {
		return nil
	}
	return unsafe.Add(frame, offsetFrameLinesize)
}

// GetFrameExtendedData returns extended_data, the plane pointer array audio
// conversion reads from.
func GetFrameExtendedData(frame Frame) unsafe.Pointer {
	if frame == nil {
		return nil
	}
	return *(*unsafe.Pointer)(unsafe.Add(frame, offsetFrameExtendedData))
}

func GetFrameWidth(frame Frame) int32 {
	if frame == nil {
		return 0
	}
	return *(*int32)(unsafe.Add(frame, offsetFrameWidth))
}

func GetFrameHeight(frame Frame) int32 {
	if frame == nil {
		return 0
	}
	return *(*int32)(unsafe.Add(frame, offsetFrameHeight))
}

func GetFrameNbSamples(frame Frame) int32 {
	if frame == nil {
		return 0
	}
	return *(*int32)(unsafe.Add(frame, offsetFrameNbSamples))
}

// GetFrameFormat returns the pixel or sample format.
func GetFrameFormat(frame Frame) int32 {
	if frame == nil {
		return -1
	}
	return *(*int32)(unsafe.Add(frame, offsetFrameFormat))
}

func GetFramePTS(frame Frame) int64 {
	if frame == nil {
		return NoPTSValue
	}
	return *(*int64)(unsafe.Add(frame, offsetFramePTS))
}

func GetFramePktDTS(frame Frame) int64 {
	if frame == nil {
		return NoPTSValue
	}
	return *(*int64)(unsafe.Add(frame, offsetFramePktDTS))
}

// GetFrameBestEffortTimestamp returns best_effort_timestamp when the loaded
// libavutil layout is known, and pts otherwise.
func GetFrameBestEffortTimestamp(frame Frame) int64 {
	if frame == nil {
		return NoPTSValue
	}
	if libMajor == 58 {
		return *(*int64)(unsafe.Add(frame, offsetFrameBestEffort58))
	}
	return GetFramePTS(frame)
}
