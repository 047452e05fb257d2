//go:build !ios && !android && (amd64 || arm64)

package avutil

import (
	"errors"
	"fmt"
	"syscall"
)

// FFmpeg error codes (AVERROR values) the decoder distinguishes.
const (
	AVERROR_EOF               int32 = -541478725             // End of file
	AVERROR_EAGAIN            int32 = -int32(syscall.EAGAIN) // Resource temporarily unavailable
	AVERROR_EINVAL            int32 = -int32(syscall.EINVAL) // Invalid argument
	AVERROR_ENOMEM            int32 = -int32(syscall.ENOMEM) // Out of memory
	AVERROR_DECODER_NOT_FOUND int32 = -1128613112            // Decoder not found
	AVERROR_DEMUXER_NOT_FOUND int32 = -1296385272            // Demuxer not found
	AVERROR_STREAM_NOT_FOUND  int32 = -1381258232            // Stream not found
	AVERROR_INVALIDDATA       int32 = -1094995529            // Invalid data
)

// Error is a negative return code from an FFmpeg call.
type Error struct {
	Code    int32  // Raw FFmpeg error code
	Message string // av_strerror text
	Op      string // FFmpeg function that failed
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// NewError returns nil for code >= 0 and an *Error otherwise.
func NewError(code int32, op string) error {
	if code >= 0 {
		return nil
	}
	return &Error{
		Code:    code,
		Message: ErrorString(code),
		Op:      op,
	}
}

// IsEOF reports whether err carries AVERROR_EOF.
func IsEOF(err error) bool {
	return Code(err) == AVERROR_EOF
}

// IsAgain reports whether err carries EAGAIN. Decoders return it when
// they need another packet before producing output.
func IsAgain(err error) bool {
	return Code(err) == AVERROR_EAGAIN
}

// Code returns the FFmpeg error code from an error, or 0 if not an FFmpeg error.
func Code(err error) int32 {
	var ffErr *Error
	if errors.As(err, &ffErr) {
		return ffErr.Code
	}
	return 0
}
