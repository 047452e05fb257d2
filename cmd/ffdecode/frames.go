//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/image/draw"

	"github.com/obinnaokechukwu/ffdecode"
)

func framesCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "frames",
		Usage:     "decode the first video stream and report frames",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "stop after N frames (0 = all)"},
			&cli.StringFlag{Name: "thumbs", Usage: "write PNG thumbnails into `DIR`"},
			&cli.IntFlag{Name: "width", Usage: "thumbnail width in pixels"},
		},
		Action: func(c *cli.Context) error {
			files, err := requireFiles(c, 0)
			if err != nil {
				return err
			}
			job := frameJob{
				limit:  e.cfg.Frames.Limit,
				thumbs: e.cfg.Frames.OutputDir,
				width:  e.cfg.Frames.ThumbnailWidth,
			}
			if c.IsSet("limit") {
				job.limit = c.Int("limit")
			}
			if c.IsSet("thumbs") {
				job.thumbs = c.String("thumbs")
			}
			if c.IsSet("width") {
				job.width = c.Int("width")
			}
			if job.limit < 0 || job.width <= 0 {
				return fmt.Errorf("frames: invalid --limit or --width")
			}
			if job.thumbs != "" {
				if err := os.MkdirAll(job.thumbs, 0o755); err != nil {
					return fmt.Errorf("create thumbnail directory: %w", err)
				}
			}

			results, err := forEachFile(c.Context, files, e.cfg.Workers, func(ctx context.Context, path string) (frameSummary, error) {
				return e.decodeFrames(ctx, path, job)
			})
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(c.App.Writer, "%s: %d frames %dx%d stride %d, last pts %.3fs\n",
					r.path, r.count, r.width, r.height, r.stride, r.lastPTS)
			}
			return nil
		},
	}
}

type frameJob struct {
	limit  int
	thumbs string
	width  int
}

type frameSummary struct {
	path                  string
	count                 int
	width, height, stride int
	lastPTS               float64
}

func (e *env) decodeFrames(ctx context.Context, path string, job frameJob) (frameSummary, error) {
	sum := frameSummary{path: path}

	c, err := e.open(path)
	if err != nil {
		return sum, fmt.Errorf("%s: %w", path, err)
	}
	defer c.Close()

	streams := c.VideoStreams()
	if len(streams) == 0 {
		return sum, fmt.Errorf("%s: no video stream", path)
	}
	vs := streams[0]

	for job.limit == 0 || sum.count < job.limit {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		f, err := vs.NextFrame()
		if ffdecode.IsEOF(err) {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("%s: frame %d: %w", path, sum.count, err)
		}

		sum.width, sum.height, sum.stride = f.Width, f.Height, f.Stride
		sum.lastPTS = f.PTS
		if job.thumbs != "" {
			name := thumbnailName(job.thumbs, path, sum.count)
			if err := writeThumbnail(name, f, job.width); err != nil {
				return sum, err
			}
		}
		sum.count++
	}

	e.log.Debug("frames decoded", "file", path, "count", sum.count)
	return sum, nil
}

func thumbnailName(dir, path string, n int) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(dir, fmt.Sprintf("%s_%05d.png", base, n))
}

// scaleFrame resizes f to width, keeping its aspect ratio.
func scaleFrame(f *ffdecode.Frame, width int) *image.RGBA {
	src := f.RGBA()
	height := f.Height * width / f.Width
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func writeThumbnail(name string, f *ffdecode.Frame, width int) error {
	out, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create thumbnail: %w", err)
	}
	if err := png.Encode(out, scaleFrame(f, width)); err != nil {
		out.Close()
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return out.Close()
}
