//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"errors"
	"strings"
)

// ProbeResult is a snapshot of a container's layout, taken without
// decoding any frames.
type ProbeResult struct {
	// Path is the probed path, or "" for a blob.
	Path string

	// Format is the selected demuxer short name (e.g. "mov,mp4,m4a,3gp,3g2,mj2").
	Format string

	Duration float64 // seconds, 0 if unknown
	BitRate  int64

	NumStreams      int
	NumVideoStreams int
	NumAudioStreams int

	// Streams lists video and audio streams in index order.
	Streams []StreamSummary
}

// StreamSummary pairs a stream's codec description with the derived
// values a Stream exposes.
type StreamSummary struct {
	StreamInfo
	Orientation Orientation
	FrameRate   float64
	FrameCount  int64
	Seconds     float64 // video duration, 0 for audio
}

// Probe opens path, records its streams and closes it again.
func Probe(path string, options ...OpenOption) (*ProbeResult, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ffdecode: path cannot be empty")
	}
	c, err := Open(path, options...)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	r := c.probe()
	r.Path = path
	return r, nil
}

// ProbeBlob is Probe for an in-memory container.
func ProbeBlob(b []byte, options ...OpenOption) (*ProbeResult, error) {
	c, err := OpenBlob(b, options...)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return c.probe(), nil
}

func (c *Container) probe() *ProbeResult {
	r := &ProbeResult{
		Format:          c.FormatName(),
		Duration:        c.Duration(),
		BitRate:         c.BitRate(),
		NumStreams:      c.NumStreams(),
		NumVideoStreams: c.NumVideoStreams(),
		NumAudioStreams: c.NumAudioStreams(),
	}
	for _, s := range c.Streams() {
		r.Streams = append(r.Streams, StreamSummary{
			StreamInfo:  s.Info(),
			Orientation: s.Orientation(),
			FrameRate:   s.FrameRate(),
			FrameCount:  s.FrameCount(),
			Seconds:     s.Duration(),
		})
	}
	return r
}
