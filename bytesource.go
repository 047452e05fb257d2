package ffdecode

import "io"

// SeekSize is the whence value asking Seek for the total size. It equals
// FFmpeg's AVSEEK_SIZE so the AVIO adapter can pass whence through.
const SeekSize = 0x10000

// ByteSource is an in-memory, seekable view over a private copy of a blob.
// It backs containers opened with OpenBlob.
//
// The cursor is tracked as the number of bytes remaining, so a seek that
// would move before the start or at/after the end fails instead of clamping.
// FFmpeg retries with a smaller request when that happens.
type ByteSource struct {
	data      []byte
	remaining int64
}

// NewByteSource copies b. The caller may reuse b immediately.
func NewByteSource(b []byte) *ByteSource {
	data := make([]byte, len(b))
	copy(data, b)
	return &ByteSource{data: data, remaining: int64(len(data))}
}

// Read copies up to len(p) bytes from the cursor and advances it.
// It returns 0, io.EOF once the blob is exhausted.
func (s *ByteSource) Read(p []byte) (int, error) {
	if s.remaining <= 0 {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	n := copy(p, s.data[s.Position():])
	s.remaining -= int64(n)
	return n, nil
}

// Seek moves the cursor and returns the new absolute position.
// whence is io.SeekStart, io.SeekCurrent, io.SeekEnd or SeekSize.
func (s *ByteSource) Seek(offset int64, whence int) (int64, error) {
	size := s.Size()

	var remaining int64
	switch whence {
	case io.SeekStart:
		if offset < 0 || offset >= size {
			return -1, ErrSeekOutOfRange
		}
		s.remaining = size - offset
		return offset, nil
	case io.SeekCurrent:
		remaining = s.remaining - offset
	case io.SeekEnd:
		remaining = -offset
	case SeekSize:
		return size, nil
	default:
		return -1, ErrInvalidWhence
	}

	// Relative seeks may not land on the very start either: remaining
	// must stay below size.
	if remaining < 0 || remaining >= size {
		return -1, ErrSeekOutOfRange
	}
	s.remaining = remaining
	return size - remaining, nil
}

// Size returns the blob length.
func (s *ByteSource) Size() int64 { return int64(len(s.data)) }

// Len returns the number of unread bytes.
func (s *ByteSource) Len() int { return int(s.remaining) }

// Position returns the absolute cursor offset.
func (s *ByteSource) Position() int64 { return s.Size() - s.remaining }

var _ io.ReadSeeker = (*ByteSource)(nil)
