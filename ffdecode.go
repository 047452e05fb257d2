//go:build !ios && !android && (amd64 || arm64)

// Package ffdecode decodes media containers through FFmpeg without CGO.
//
// Open a container from a path or an in-memory blob, enumerate its video
// and audio streams, pull BGR24 video frames one at a time, decode a whole
// audio stream into interleaved S16 PCM, and seek by time or frame index.
//
// Call Init once before opening anything:
//
//	if err := ffdecode.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	c, err := ffdecode.Open("clip.mp4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	for _, s := range c.VideoStreams() {
//	    for {
//	        f, err := s.NextFrame()
//	        if ffdecode.IsEOF(err) {
//	            break
//	        }
//	        ...
//	    }
//	}
//
// A Container and its Streams must be used from one goroutine at a time.
// Open one container per goroutine to decode in parallel.
package ffdecode

import (
	"sync"

	"github.com/obinnaokechukwu/ffdecode/avcodec"
	"github.com/obinnaokechukwu/ffdecode/avformat"
	"github.com/obinnaokechukwu/ffdecode/avutil"
	"github.com/obinnaokechukwu/ffdecode/internal/bindings"
	"github.com/obinnaokechukwu/ffdecode/swresample"
	"github.com/obinnaokechukwu/ffdecode/swscale"
)

var (
	initOnce sync.Once
	initErr  error
	ready    bool
)

// Init loads the FFmpeg shared libraries and registers every binding.
// It is safe to call multiple times and returns the same result each time.
//
// libswscale and libswresample are optional: without them NextFrame and
// DecodeAudio fail, but opening and inspecting containers still works.
func Init() error {
	initOnce.Do(func() {
		if initErr = bindings.Load(); initErr != nil {
			return
		}
		for _, load := range []func() error{avutil.Load, avcodec.Load, avformat.Load} {
			if initErr = load(); initErr != nil {
				return
			}
		}
		if bindings.HasSWScale() {
			if initErr = swscale.Load(); initErr != nil {
				return
			}
		}
		if bindings.HasSWResample() {
			if initErr = swresample.Load(); initErr != nil {
				return
			}
		}
		ready = true
	})
	return initErr
}

// IsLoaded returns true once Init has succeeded.
func IsLoaded() bool {
	return ready
}

// Version returns FFmpeg library versions.
func Version() (avutil, avcodec, avformat uint32) {
	return bindings.AVUtilVersion(), bindings.AVCodecVersion(), bindings.AVFormatVersion()
}

// Re-export common types for convenience
type (
	// Rational represents a rational number (fraction).
	Rational = avutil.Rational

	// CodecID represents codec identifiers.
	CodecID = avcodec.CodecID
)
