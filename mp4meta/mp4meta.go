// Package mp4meta reads the track list of an MP4 or MOV file in pure Go.
//
// It needs no FFmpeg libraries, so it can check a file before handing it
// to the decoder, or cross-check the stream counts FFmpeg reports.
package mp4meta

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Kind is the media kind of a track, derived from its handler.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
	KindOther Kind = "other"
)

// Track describes one trak box.
type Track struct {
	ID        uint32
	Kind      Kind
	Handler   string // hdlr handler type, e.g. "vide"
	Codec     string // first sample entry fourcc, e.g. "avc1"
	Timescale uint32
	Duration  uint64 // in Timescale units

	// Video sample entries only.
	Width, Height int

	// Audio sample entries only.
	SampleRate, Channels int
}

// Seconds returns the track duration in seconds, 0 if the timescale is unset.
func (t Track) Seconds() float64 {
	if t.Timescale == 0 {
		return 0
	}
	return float64(t.Duration) / float64(t.Timescale)
}

// Info is the parsed top-level structure.
type Info struct {
	Fragmented bool
	Tracks     []Track
}

// Count returns the number of tracks of kind k.
func (i *Info) Count(k Kind) int {
	n := 0
	for _, t := range i.Tracks {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// ParseFile parses the file at path.
func ParseFile(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// ParseBytes parses an in-memory file.
func ParseBytes(data []byte) (*Info, error) {
	return Parse(bytes.NewReader(data))
}

// Parse decodes the box tree from r and collects its tracks.
func Parse(r io.ReadSeeker) (*Info, error) {
	f, err := mp4.DecodeFile(r)
	if err != nil {
		return nil, fmt.Errorf("decode mp4: %w", err)
	}

	info := &Info{Fragmented: f.IsFragmented()}

	moov := f.Moov
	if moov == nil && f.Init != nil {
		moov = f.Init.Moov
	}
	if moov == nil {
		return nil, fmt.Errorf("no moov box")
	}

	for _, trak := range moov.Traks {
		info.Tracks = append(info.Tracks, trackFrom(trak))
	}
	return info, nil
}

func trackFrom(trak *mp4.TrakBox) Track {
	t := Track{Kind: KindOther}
	if trak.Tkhd != nil {
		t.ID = trak.Tkhd.TrackID
	}
	if trak.Mdia == nil {
		return t
	}

	if trak.Mdia.Mdhd != nil {
		t.Timescale = trak.Mdia.Mdhd.Timescale
		t.Duration = trak.Mdia.Mdhd.Duration
	}
	if trak.Mdia.Hdlr != nil {
		t.Handler = trak.Mdia.Hdlr.HandlerType
		switch t.Handler {
		case "vide":
			t.Kind = KindVideo
		case "soun":
			t.Kind = KindAudio
		}
	}

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return t
	}
	stsd := trak.Mdia.Minf.Stbl.Stsd
	if len(stsd.Children) == 0 {
		return t
	}

	entry := stsd.Children[0]
	t.Codec = entry.Type()
	switch e := entry.(type) {
	case *mp4.VisualSampleEntryBox:
		t.Width, t.Height = int(e.Width), int(e.Height)
	case *mp4.AudioSampleEntryBox:
		t.SampleRate, t.Channels = int(e.SampleRate), int(e.ChannelCount)
	}
	return t
}
