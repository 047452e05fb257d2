//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/obinnaokechukwu/ffdecode"
	"github.com/obinnaokechukwu/ffdecode/mp4meta"
)

func infoCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print container and stream metadata",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "blob", Usage: "read the file into memory and open it from there"},
			&cli.BoolFlag{Name: "boxes", Usage: "also list MP4/MOV tracks from the box tree"},
		},
		Action: func(c *cli.Context) error {
			files, err := requireFiles(c, 0)
			if err != nil {
				return err
			}
			blob, boxes := c.Bool("blob"), c.Bool("boxes")

			reports, err := forEachFile(c.Context, files, e.cfg.Workers, func(_ context.Context, path string) (*infoReport, error) {
				return e.inspect(path, blob, boxes)
			})
			if err != nil {
				return err
			}
			for _, r := range reports {
				r.write(c.App.Writer)
			}
			return nil
		},
	}
}

// infoReport is everything info prints for one file.
type infoReport struct {
	*ffdecode.ProbeResult
	path   string
	tracks []mp4meta.Track
}

func (e *env) inspect(path string, blob, boxes bool) (*infoReport, error) {
	opts := append(e.cfg.openOptions(), ffdecode.WithLogger(e.log.With("file", path)))

	var (
		probe *ffdecode.ProbeResult
		err   error
	)
	if blob {
		var data []byte
		if data, err = os.ReadFile(path); err == nil {
			probe, err = ffdecode.ProbeBlob(data, opts...)
		}
	} else {
		probe, err = ffdecode.Probe(path, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r := &infoReport{ProbeResult: probe, path: path}

	if boxes && isMP4(path) {
		meta, err := mp4meta.ParseFile(path)
		if err != nil {
			e.log.Warn("box parse failed", "file", path, "error", err)
			return r, nil
		}
		r.tracks = meta.Tracks
		video, audio := meta.Count(mp4meta.KindVideo), meta.Count(mp4meta.KindAudio)
		if video != r.NumVideoStreams || audio != r.NumAudioStreams {
			e.log.Warn("track counts disagree",
				"file", path,
				"ffmpeg_video", r.NumVideoStreams, "ffmpeg_audio", r.NumAudioStreams,
				"boxes_video", video, "boxes_audio", audio)
		}
	}
	return r, nil
}

func isMP4(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".m4a", ".mov", ".3gp":
		return true
	}
	return false
}

func (r *infoReport) write(w io.Writer) {
	fmt.Fprintf(w, "%s\n", r.path)
	fmt.Fprintf(w, "  format:   %s\n", r.Format)
	fmt.Fprintf(w, "  duration: %.3fs\n", r.Duration)
	if r.BitRate > 0 {
		fmt.Fprintf(w, "  bitrate:  %d kb/s\n", r.BitRate/1000)
	}
	fmt.Fprintf(w, "  streams:  %d (video %d, audio %d)\n", r.NumStreams, r.NumVideoStreams, r.NumAudioStreams)

	for _, s := range r.Streams {
		switch s.Kind {
		case ffdecode.MediaVideo:
			fmt.Fprintf(w, "  #%d video %s %dx%d %.3f fps, %d frames, %.3fs, orientation %s (%d°)\n",
				s.Index, s.CodecName, s.Width, s.Height, s.FrameRate, s.FrameCount, s.Seconds,
				s.Orientation, s.Orientation.Degrees())
		case ffdecode.MediaAudio:
			fmt.Fprintf(w, "  #%d audio %s %d Hz, %d channels\n",
				s.Index, s.CodecName, s.SampleRate, s.Channels)
		}
		keys := make([]string, 0, len(s.Metadata))
		for k := range s.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "      %s=%s\n", k, s.Metadata[k])
		}
	}

	if len(r.tracks) > 0 {
		fmt.Fprintf(w, "  boxes:\n")
		for _, t := range r.tracks {
			fmt.Fprintf(w, "    track %d %s %s timescale %d, %.3fs\n",
				t.ID, t.Kind, t.Codec, t.Timescale, t.Seconds())
		}
	}
}
