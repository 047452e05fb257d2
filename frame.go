package ffdecode

import (
	"image"
	"time"
)

// Frame is one decoded video frame in packed BGR24.
//
// Data holds Height rows of Stride bytes each. Only the first Width*3
// bytes of a row are pixels. PTS and DTS are in seconds, 0 when unknown.
type Frame struct {
	Data   []byte
	Width  int
	Height int
	Stride int
	PTS    float64
	DTS    float64
}

// Pixel returns the color at (x, y). Coordinates outside the frame
// return black.
func (f *Frame) Pixel(x, y int) (b, g, r uint8) {
	if f == nil || x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0, 0, 0
	}
	i := y*f.Stride + x*3
	if i+2 >= len(f.Data) {
		return 0, 0, 0
	}
	return f.Data[i], f.Data[i+1], f.Data[i+2]
}

// RGBA converts the frame into an opaque image.RGBA.
func (f *Frame) RGBA() *image.RGBA {
	if f == nil {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		src := f.Data[y*f.Stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < f.Width; x++ {
			dst[x*4+0] = src[x*3+2]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+0]
			dst[x*4+3] = 0xff
		}
	}
	return img
}

// PTSDuration returns PTS as a time.Duration.
func (f *Frame) PTSDuration() time.Duration {
	if f == nil {
		return 0
	}
	return time.Duration(f.PTS * float64(time.Second))
}
