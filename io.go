//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"errors"
	"io"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/ffdecode/avformat"
	"github.com/obinnaokechukwu/ffdecode/avutil"
	"github.com/obinnaokechukwu/ffdecode/internal/handles"
)

// defaultIOBufferSize is the AVIO read buffer for blob input (32KB).
const defaultIOBufferSize = 32 * 1024

// sources maps AVIO opaque handles back to the ByteSource being read.
var sources = handles.New[*ByteSource]()

// Callbacks are registered once. purego has a fixed callback budget, so
// every blob container shares them and dispatches through sources.
var (
	ioCallbacksOnce sync.Once
	readCallbackPtr uintptr
	seekCallbackPtr uintptr
)

func initIOCallbacks() {
	ioCallbacksOnce.Do(func() {
		// int read_packet(void *opaque, uint8_t *buf, int buf_size)
		readCallbackPtr = purego.NewCallback(func(_ purego.CDecl, opaque unsafe.Pointer, buf *byte, bufSize int32) int32 {
			src, ok := sources.Get(uintptr(opaque))
			if !ok || bufSize <= 0 {
				return -1
			}
			n, err := src.Read(unsafe.Slice(buf, bufSize))
			if errors.Is(err, io.EOF) {
				return avutil.AVERROR_EOF
			}
			return int32(n)
		})

		// int64_t seek(void *opaque, int64_t offset, int whence)
		seekCallbackPtr = purego.NewCallback(func(_ purego.CDecl, opaque unsafe.Pointer, offset int64, whence int32) int64 {
			src, ok := sources.Get(uintptr(opaque))
			if !ok {
				return -1
			}
			// FFmpeg may OR AVSEEK_FORCE into whence.
			pos, err := src.Seek(offset, int(whence&^0x20000))
			if err != nil {
				return -1
			}
			return pos
		})
	})
}

// blobIO owns the AVIO context reading from one ByteSource.
type blobIO struct {
	src    *ByteSource
	handle uintptr
	avio   avformat.IOContext
}

// newBlobIO copies b into a ByteSource and wraps it in a read-only AVIO
// context with a bufSize read buffer.
func newBlobIO(b []byte, bufSize int) (*blobIO, error) {
	initIOCallbacks()

	if bufSize <= 0 {
		bufSize = defaultIOBufferSize
	}
	// FFmpeg takes ownership of this buffer and may replace it.
	buffer := avutil.Malloc(uintptr(bufSize))
	if buffer == nil {
		return nil, avutil.NewError(avutil.AVERROR_ENOMEM, "av_malloc")
	}

	bio := &blobIO{src: NewByteSource(b)}
	bio.handle = sources.Put(bio.src)
	bio.avio = avformat.IOAllocContext(
		buffer, bufSize, false,
		unsafe.Pointer(bio.handle),
		readCallbackPtr, 0, seekCallbackPtr,
	)
	if bio.avio == nil {
		avutil.Free(buffer)
		sources.Delete(bio.handle)
		return nil, avutil.NewError(avutil.AVERROR_ENOMEM, "avio_alloc_context")
	}
	return bio, nil
}

// close frees the AVIO context and its buffer, then forgets the source.
// Safe to call more than once.
func (b *blobIO) close() {
	if b == nil {
		return
	}
	avformat.IOContextFree(&b.avio)
	if b.handle != 0 {
		sources.Delete(b.handle)
		b.handle = 0
	}
	b.src = nil
}
