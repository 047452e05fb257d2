//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"unsafe"

	"github.com/obinnaokechukwu/ffdecode/avutil"
	"github.com/obinnaokechukwu/ffdecode/internal/bindings"
	"github.com/obinnaokechukwu/ffdecode/swscale"
)

// converter turns decoded frames of one geometry into packed BGR24.
type converter struct {
	ctx swscale.Context

	width, height int
	srcFormat     avutil.PixelFormat

	// Destination image, allocated once and reused for every frame.
	dst       [4]unsafe.Pointer
	dstStride [4]int32
}

// newConverter prepares a same-size conversion from srcFormat to BGR24.
func newConverter(width, height int, srcFormat avutil.PixelFormat) (*converter, error) {
	if !bindings.HasSWScale() {
		return nil, localError(KindNative, codeLocal, opNextFrame, "libswscale not available")
	}

	ctx := swscale.GetContext(width, height, srcFormat, width, height, avutil.PixelFormatBGR24, swscale.FlagFastBilinear)
	if ctx == nil {
		return nil, localError(KindNative, codeLocal, opNextFrame, "could not create scaling context")
	}

	dst, stride, err := avutil.ImageAlloc(int32(width), int32(height), avutil.PixelFormatBGR24, 1)
	if err != nil {
		swscale.FreeContext(ctx)
		return nil, wrapNative(err, opNextFrame)
	}

	return &converter{
		ctx:       ctx,
		width:     width,
		height:    height,
		srcFormat: srcFormat,
		dst:       dst,
		dstStride: stride,
	}, nil
}

// matches reports whether frames of this geometry can reuse c.
func (c *converter) matches(width, height int, format avutil.PixelFormat) bool {
	return c.width == width && c.height == height && c.srcFormat == format
}

// convert scales frame into the destination image and returns a copy of
// it, so the result stays valid after the next call.
func (c *converter) convert(frame avutil.Frame) (data []byte, stride int, err error) {
	_, err = swscale.Scale(c.ctx,
		avutil.GetFrameDataArray(frame), avutil.GetFrameLinesizeArray(frame),
		0, int32(c.height),
		&c.dst, &c.dstStride)
	if err != nil {
		return nil, 0, wrapNative(err, opNextFrame)
	}

	stride = int(c.dstStride[0])
	n := stride * c.height
	data = make([]byte, n)
	copy(data, unsafe.Slice((*byte)(c.dst[0]), n))
	return data, stride, nil
}

func (c *converter) close() {
	if c.ctx != nil {
		swscale.FreeContext(c.ctx)
		c.ctx = nil
	}
	if c.dst[0] != nil {
		// av_image_alloc returns one allocation; plane 0 owns it.
		avutil.Free(c.dst[0])
		c.dst = [4]unsafe.Pointer{}
	}
}
