//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"errors"

	"github.com/obinnaokechukwu/ffdecode/avutil"
)

// ErrorKind classifies an *Error.
type ErrorKind int

const (
	// KindNative is a negative return code from FFmpeg, or one of the
	// local codes used when a native allocation step fails.
	KindNative ErrorKind = iota
	// KindEOF means the stream has no more frames.
	KindEOF
	// KindMismatch means a video operation was called on an audio stream
	// or the other way around.
	KindMismatch
	// KindInvalidArgument means a caller-supplied value was rejected
	// before any native call.
	KindInvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindEOF:
		return "eof"
	case KindMismatch:
		return "mismatch"
	case KindInvalidArgument:
		return "invalid_argument"
	}
	return "unknown"
}

// Sentinels matched by (*Error).Is through errors.Is.
var (
	ErrEOF             = errors.New("ffdecode: end of stream")
	ErrKindMismatch    = errors.New("ffdecode: stream type mismatch")
	ErrInvalidArgument = errors.New("ffdecode: invalid argument")
	ErrNative          = errors.New("ffdecode: ffmpeg failure")
)

// Other errors
var (
	// ErrNotInitialized is returned by Open and friends before Init succeeds.
	ErrNotInitialized = errors.New("ffdecode: Init has not been called")

	// ErrClosed indicates the container has been closed.
	ErrClosed = errors.New("ffdecode: container is closed")

	// ErrSeekOutOfRange is returned by ByteSource.Seek for targets outside the blob.
	ErrSeekOutOfRange = errors.New("ffdecode: seek out of range")

	// ErrInvalidWhence is returned by ByteSource.Seek for an unknown whence.
	ErrInvalidWhence = errors.New("ffdecode: invalid whence")
)

// Operation tags carried in Error.Op.
const (
	opOpen          = "ffmpeg_open"
	opCreateDecoder = "ffmpeg_create_decode_ctx"
	opNextFrame     = "next_frame"
	opDecodeAudio   = "ffmpeg_stream_decode_audio"
	opSeekTime      = "ffmpeg_seek_time"
	opSeekFrame     = "ffmpeg_seek_frame"
)

// Local codes for failures that have no FFmpeg return value.
const (
	codeLocal          int32 = -1
	codeNoDecoder      int32 = -1
	codeAllocCodecCtx  int32 = -2
	codeCopyParams     int32 = -3
	codeAllocFormatCtx int32 = -888
)

// Error is returned by every Container and Stream operation that fails.
type Error struct {
	Kind   ErrorKind
	Code   int32  // FFmpeg AVERROR code, or a local negative code
	Op     string // operation tag, e.g. "ffmpeg_open"
	Detail string // "AV_EOF" or "<op>: <message>"

	cause error
}

func (e *Error) Error() string { return e.Detail }

// Unwrap exposes the underlying *avutil.Error when there is one.
func (e *Error) Unwrap() error { return e.cause }

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrEOF:
		return e.Kind == KindEOF
	case ErrKindMismatch:
		return e.Kind == KindMismatch
	case ErrInvalidArgument:
		return e.Kind == KindInvalidArgument
	case ErrNative:
		return e.Kind == KindNative
	}
	return false
}

// IsEOF reports whether err marks the end of a stream.
func IsEOF(err error) bool {
	return errors.Is(err, ErrEOF)
}

// nativeError renders an FFmpeg return code under op.
func nativeError(code int32, op string) *Error {
	if code == avutil.AVERROR_EOF {
		return &Error{Kind: KindEOF, Code: code, Op: op, Detail: "AV_EOF"}
	}
	return &Error{
		Kind:   KindNative,
		Code:   code,
		Op:     op,
		Detail: op + ": " + avutil.ErrorString(code),
	}
}

// wrapNative converts an error from the binding packages. Non-FFmpeg errors
// (unloaded bindings) keep their text.
func wrapNative(err error, op string) *Error {
	var ffErr *avutil.Error
	if errors.As(err, &ffErr) {
		e := nativeError(ffErr.Code, op)
		e.cause = ffErr
		return e
	}
	return &Error{Kind: KindNative, Code: codeLocal, Op: op, Detail: op + ": " + err.Error(), cause: err}
}

// localError builds an error with a fixed message and no native code.
func localError(kind ErrorKind, code int32, op, msg string) *Error {
	return &Error{Kind: kind, Code: code, Op: op, Detail: op + ": " + msg}
}

func mismatchError(op string) *Error {
	return localError(KindMismatch, codeLocal, op, "stream type mismatch")
}

func invalidArgument(op, msg string) *Error {
	return localError(KindInvalidArgument, codeLocal, op, msg)
}

// retag copies err under a different operation tag.
func retag(err error, op string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	out := *e
	out.Op = op
	if out.Kind != KindEOF {
		out.Detail = op + e.Detail[len(e.Op):]
	}
	return &out
}
