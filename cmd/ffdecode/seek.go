//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func seekCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "seek",
		Usage:     "seek the first video stream and decode one frame",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "time", Aliases: []string{"t"}, Usage: "target position in seconds"},
			&cli.Int64Flag{Name: "frame", Aliases: []string{"f"}, Usage: "target frame index"},
		},
		Action: func(c *cli.Context) error {
			files, err := requireFiles(c, 1)
			if err != nil {
				return err
			}
			if c.IsSet("time") == c.IsSet("frame") {
				return fmt.Errorf("seek: give exactly one of --time or --frame")
			}

			cont, err := e.open(files[0])
			if err != nil {
				return fmt.Errorf("%s: %w", files[0], err)
			}
			defer cont.Close()

			streams := cont.VideoStreams()
			if len(streams) == 0 {
				return fmt.Errorf("%s: no video stream", files[0])
			}
			vs := streams[0]

			if c.IsSet("time") {
				err = vs.SeekTime(c.Float64("time"))
			} else {
				err = vs.SeekFrame(c.Int64("frame"))
			}
			if err != nil {
				return fmt.Errorf("%s: %w", files[0], err)
			}

			f, err := vs.NextFrame()
			if err != nil {
				return fmt.Errorf("%s: %w", files[0], err)
			}
			fmt.Fprintf(c.App.Writer, "%s: frame at pts %.3fs (%v), dts %.3fs, %dx%d\n",
				files[0], f.PTS, f.PTSDuration(), f.DTS, f.Width, f.Height)
			return nil
		},
	}
}
