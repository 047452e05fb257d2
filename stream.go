//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"github.com/obinnaokechukwu/ffdecode/avcodec"
	"github.com/obinnaokechukwu/ffdecode/avformat"
	"github.com/obinnaokechukwu/ffdecode/avutil"
)

// MediaKind is the kind of a Stream.
type MediaKind int

const (
	MediaVideo MediaKind = iota
	MediaAudio
	mediaOther
)

func (k MediaKind) String() string {
	switch k {
	case MediaVideo:
		return "video"
	case MediaAudio:
		return "audio"
	}
	return "other"
}

func mediaKindOf(t avutil.MediaType) MediaKind {
	switch t {
	case avutil.MediaTypeVideo:
		return MediaVideo
	case avutil.MediaTypeAudio:
		return MediaAudio
	}
	return mediaOther
}

// Orientation is the display rotation of a video stream, taken from its
// "rotate" tag.
type Orientation int

const (
	OrientationTop Orientation = iota
	OrientationLeft
	OrientationBottom
	OrientationRight
)

func (o Orientation) String() string {
	switch o {
	case OrientationLeft:
		return "left"
	case OrientationBottom:
		return "bottom"
	case OrientationRight:
		return "right"
	}
	return "top"
}

// Degrees returns the clockwise rotation in degrees.
func (o Orientation) Degrees() int {
	switch o {
	case OrientationLeft:
		return 90
	case OrientationBottom:
		return 180
	case OrientationRight:
		return 270
	}
	return 0
}

// orientationFromTag maps a rotate tag value. Values outside the four
// right angles map to Top.
func orientationFromTag(tag string) Orientation {
	switch atoi(tag) % 360 {
	case 90:
		return OrientationLeft
	case 180:
		return OrientationBottom
	case 270:
		return OrientationRight
	}
	return OrientationTop
}

// atoi parses like C atoi: optional leading whitespace and sign, then
// digits up to the first non-digit. Anything unparsable is 0.
func atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || (s[i] >= '\t' && s[i] <= '\r')) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1<<31 {
			// C leaves overflow undefined; stop growing.
			break
		}
	}
	if neg {
		return -n
	}
	return n
}

// StreamInfo describes a stream as FFmpeg reports it.
type StreamInfo struct {
	Index       int
	Kind        MediaKind
	CodecID     avcodec.CodecID
	CodecName   string
	Width       int
	Height      int
	PixelFormat avutil.PixelFormat
	SampleRate  int
	Channels    int
	TimeBase    avutil.Rational
	FrameRate   avutil.Rational
	Duration    int64 // in TimeBase units
	BitRate     int64
	Metadata    map[string]string
}

// Stream is one video or audio stream of a Container.
type Stream struct {
	c     *Container
	st    avformat.Stream
	index int
	kind  MediaKind

	timeBase    avutil.Rational
	frameCount  int64
	frameRate   float64
	duration    float64
	orientation Orientation
	info        StreamInfo

	dec *decoder // video decode state, built on first NextFrame
}

func newStream(c *Container, st avformat.Stream, kind MediaKind) *Stream {
	par := avformat.GetStreamCodecPar(st)
	s := &Stream{
		c:          c,
		st:         st,
		index:      int(avformat.GetStreamIndex(st)),
		kind:       kind,
		timeBase:   avformat.GetStreamTimeBase(st),
		frameCount: avformat.GetStreamNbFrames(st),
	}

	meta := avutil.DictToMap(avformat.GetStreamMetadata(st))
	rate := avformat.GetStreamRFrameRate(st)

	if kind == MediaVideo {
		s.frameRate = rate.Float64()
		if d := avformat.GetStreamDuration(st); d != avutil.NoPTSValue {
			s.duration = float64(d) * s.timeBase.Float64()
		}
		s.orientation = orientationFromTag(meta["rotate"])
	}

	id := avformat.GetCodecParCodecID(par)
	s.info = StreamInfo{
		Index:     s.index,
		Kind:      kind,
		CodecID:   id,
		CodecName: avcodec.CodecName(id),
		TimeBase:  s.timeBase,
		Duration:  avformat.GetStreamDuration(st),
		BitRate:   avformat.GetCodecParBitRate(par),
		Metadata:  meta,
	}
	switch kind {
	case MediaVideo:
		s.info.Width = int(avformat.GetCodecParWidth(par))
		s.info.Height = int(avformat.GetCodecParHeight(par))
		s.info.PixelFormat = avutil.PixelFormat(avformat.GetCodecParFormat(par))
		s.info.FrameRate = rate
	case MediaAudio:
		s.info.SampleRate = int(avformat.GetCodecParSampleRate(par))
		s.info.Channels = int(avformat.GetCodecParChannels(par))
	}
	return s
}

// Index returns the native stream index within the container.
func (s *Stream) Index() int { return s.index }

// Kind returns MediaVideo or MediaAudio.
func (s *Stream) Kind() MediaKind { return s.kind }

// FrameCount returns the frame count stored in the container, which is 0
// when the container does not record it.
func (s *Stream) FrameCount() int64 { return s.frameCount }

// TimeBase returns the stream time base in seconds per tick.
func (s *Stream) TimeBase() float64 { return s.timeBase.Float64() }

// FrameRate returns the video frame rate (r_frame_rate). Audio streams
// report 0.
func (s *Stream) FrameRate() float64 { return s.frameRate }

// Duration returns the video stream duration in seconds, or 0 when unknown.
// Audio streams report 0.
func (s *Stream) Duration() float64 { return s.duration }

// Orientation returns the display orientation. Audio streams report Top.
func (s *Stream) Orientation() Orientation { return s.orientation }

// Info returns a snapshot of the stream's codec parameters and tags.
func (s *Stream) Info() StreamInfo {
	info := s.info
	info.Metadata = make(map[string]string, len(s.info.Metadata))
	for k, v := range s.info.Metadata {
		info.Metadata[k] = v
	}
	return info
}

func (s *Stream) closed() bool {
	return s.c == nil || s.c.closed
}

// release frees the video decode state. The container calls it on Close.
func (s *Stream) release() {
	if s.dec != nil {
		s.dec.close()
		s.dec = nil
	}
}
