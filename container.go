//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"io"
	"log/slog"

	"github.com/obinnaokechukwu/ffdecode/avformat"
	"github.com/obinnaokechukwu/ffdecode/avutil"
)

// Container is an opened media file or blob.
//
// A Container owns its demuxer and, for blob input, the AVIO adapter and
// the copied bytes. Streams returned by it borrow from it and fail with
// ErrClosed once the container is closed.
type Container struct {
	fmtCtx avformat.FormatContext
	bio    *blobIO // nil unless opened from a blob

	numStreams int
	numVideo   int
	numAudio   int

	// Materialized on first request.
	videoStreams []*Stream
	audioStreams []*Stream
	videoLoaded  bool
	audioLoaded  bool

	log    *slog.Logger
	closed bool
}

// Open opens the media file at path and probes its streams.
func Open(path string, options ...OpenOption) (*Container, error) {
	if !IsLoaded() {
		return nil, ErrNotInitialized
	}
	opts := buildOptions(options)

	c := &Container{log: opts.Logger}
	if err := c.open(path, opts); err != nil {
		c.Close()
		return nil, err
	}
	c.log.Debug("container opened", "source", path, "format", c.FormatName(),
		"streams", c.numStreams, "video", c.numVideo, "audio", c.numAudio)
	return c, nil
}

// OpenBlob opens a container held in memory. b is copied, so the caller
// may reuse it as soon as OpenBlob returns.
func OpenBlob(b []byte, options ...OpenOption) (*Container, error) {
	if !IsLoaded() {
		return nil, ErrNotInitialized
	}
	opts := buildOptions(options)

	c := &Container{log: opts.Logger}
	if err := c.openBlob(b, opts); err != nil {
		c.Close()
		return nil, err
	}
	c.log.Debug("container opened", "source", "blob", "bytes", len(b), "format", c.FormatName(),
		"streams", c.numStreams, "video", c.numVideo, "audio", c.numAudio)
	return c, nil
}

// OpenReader reads r to the end and opens the result as a blob.
func OpenReader(r io.Reader, options ...OpenOption) (*Container, error) {
	if !IsLoaded() {
		return nil, ErrNotInitialized
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return OpenBlob(b, options...)
}

func (c *Container) openBlob(b []byte, opts *OpenOptions) error {
	bio, err := newBlobIO(b, opts.IOBufferSize)
	if err != nil {
		return wrapNative(err, opOpen)
	}
	c.bio = bio

	c.fmtCtx = avformat.AllocContext()
	if c.fmtCtx == nil {
		return localError(KindNative, codeAllocFormatCtx, opOpen, "could not allocate format context")
	}
	avformat.SetIOContext(c.fmtCtx, bio.avio)
	avformat.AddFlags(c.fmtCtx, avformat.FlagCustomIO)

	return c.open("", opts)
}

// open runs avformat_open_input and stream probing on c.fmtCtx, which is
// nil for paths and pre-allocated for blobs.
func (c *Container) open(url string, opts *OpenOptions) error {
	var inputFormat avformat.InputFormat
	if opts.Format != "" {
		if inputFormat = avformat.FindInputFormat(opts.Format); inputFormat == nil {
			return nativeError(avutil.AVERROR_DEMUXER_NOT_FOUND, opOpen)
		}
	}

	var dict avutil.Dictionary
	defer avutil.DictFree(&dict)
	for k, v := range opts.demuxerOptions() {
		if err := avutil.DictSet(&dict, k, v, 0); err != nil {
			return wrapNative(err, opOpen)
		}
	}

	// On failure FFmpeg frees the context and nils c.fmtCtx, but leaves a
	// custom AVIO context for Close to release.
	if err := avformat.OpenInput(&c.fmtCtx, url, inputFormat, &dict); err != nil {
		return wrapNative(err, opOpen)
	}
	if err := avformat.FindStreamInfo(c.fmtCtx); err != nil {
		return wrapNative(err, opOpen)
	}

	c.numStreams = avformat.GetNumStreams(c.fmtCtx)
	for i := 0; i < c.numStreams; i++ {
		par := avformat.GetStreamCodecPar(avformat.GetStream(c.fmtCtx, i))
		switch avformat.GetCodecParType(par) {
		case avutil.MediaTypeVideo:
			c.numVideo++
		case avutil.MediaTypeAudio:
			c.numAudio++
		}
	}
	return nil
}

// Close releases stream decoders, the demuxer and, for blob input, the
// AVIO context and its bytes. It is safe to call more than once.
func (c *Container) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true

	for _, s := range c.videoStreams {
		s.release()
	}
	for _, s := range c.audioStreams {
		s.release()
	}

	avformat.CloseInput(&c.fmtCtx)
	if c.bio != nil {
		c.bio.close()
		c.bio = nil
	}

	c.log.Debug("container closed")
	return nil
}

// NumStreams returns the total number of streams of every kind.
func (c *Container) NumStreams() int { return c.numStreams }

// NumVideoStreams returns the number of video streams.
func (c *Container) NumVideoStreams() int { return c.numVideo }

// NumAudioStreams returns the number of audio streams.
func (c *Container) NumAudioStreams() int { return c.numAudio }

// IsBlob reports whether the container was opened from memory.
func (c *Container) IsBlob() bool { return c.bio != nil }

// Duration returns the container duration in seconds, or 0 if unknown.
func (c *Container) Duration() float64 {
	if c.closed {
		return 0
	}
	return microseconds(avformat.GetDuration(c.fmtCtx))
}

// StartTime returns the container start time in seconds, or 0 if unknown.
func (c *Container) StartTime() float64 {
	if c.closed {
		return 0
	}
	return microseconds(avformat.GetStartTime(c.fmtCtx))
}

// BitRate returns the overall bit rate in bit/s, or 0 if unknown.
func (c *Container) BitRate() int64 {
	if c.closed {
		return 0
	}
	return avformat.GetBitRate(c.fmtCtx)
}

// FormatName returns the demuxer short name, e.g. "mov,mp4,m4a,3gp,3g2,mj2".
func (c *Container) FormatName() string {
	if c.closed {
		return ""
	}
	return avformat.GetFormatName(c.fmtCtx)
}

func microseconds(v int64) float64 {
	if v == avutil.NoPTSValue || v < 0 {
		return 0
	}
	return float64(v) / avutil.TimeBase
}

// VideoStreams returns the video streams in index order. The slice is
// built on first call and cached. A closed container has none.
func (c *Container) VideoStreams() []*Stream {
	if c.closed {
		return nil
	}
	if !c.videoLoaded {
		c.videoStreams = c.collect(MediaVideo, c.numVideo)
		c.videoLoaded = true
	}
	return c.videoStreams
}

// AudioStreams returns the audio streams in index order. The slice is
// built on first call and cached.
func (c *Container) AudioStreams() []*Stream {
	if c.closed {
		return nil
	}
	if !c.audioLoaded {
		c.audioStreams = c.collect(MediaAudio, c.numAudio)
		c.audioLoaded = true
	}
	return c.audioStreams
}

// Streams returns every video and audio stream ordered by native index.
func (c *Container) Streams() []*Stream {
	video, audio := c.VideoStreams(), c.AudioStreams()
	out := make([]*Stream, 0, len(video)+len(audio))
	for len(video) > 0 || len(audio) > 0 {
		if len(audio) == 0 || (len(video) > 0 && video[0].index < audio[0].index) {
			out = append(out, video[0])
			video = video[1:]
		} else {
			out = append(out, audio[0])
			audio = audio[1:]
		}
	}
	return out
}

func (c *Container) collect(kind MediaKind, count int) []*Stream {
	if count == 0 || c.closed {
		return nil
	}
	out := make([]*Stream, 0, count)
	for i := 0; i < c.numStreams; i++ {
		st := avformat.GetStream(c.fmtCtx, i)
		if mediaKindOf(avformat.GetCodecParType(avformat.GetStreamCodecPar(st))) != kind {
			continue
		}
		out = append(out, newStream(c, st, kind))
	}
	return out
}
