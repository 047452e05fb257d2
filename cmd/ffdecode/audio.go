//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/obinnaokechukwu/ffdecode"
)

func audioCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "audio",
		Usage:     "decode the first audio stream to raw S16LE PCM",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "rate", Aliases: []string{"r"}, Usage: "output sample rate in Hz"},
			&cli.StringFlag{Name: "layout", Aliases: []string{"l"}, Usage: "mono, stereo, 5.1, ... or a hex mask"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write PCM to `FILE`"},
		},
		Action: func(c *cli.Context) error {
			files, err := requireFiles(c, 1)
			if err != nil {
				return err
			}

			rate := e.cfg.Audio.SampleRate
			if c.IsSet("rate") {
				rate = c.Int("rate")
			}
			name := e.cfg.Audio.Layout
			if c.IsSet("layout") {
				name = c.String("layout")
			}
			layout, err := ffdecode.ParseChannelLayout(name)
			if err != nil {
				return err
			}

			cont, err := e.open(files[0])
			if err != nil {
				return fmt.Errorf("%s: %w", files[0], err)
			}
			defer cont.Close()

			streams := cont.AudioStreams()
			if len(streams) == 0 {
				return fmt.Errorf("%s: no audio stream", files[0])
			}
			pcm, err := streams[0].DecodeAudio(layout, rate)
			if err != nil {
				return fmt.Errorf("%s: %w", files[0], err)
			}

			if out := c.String("out"); out != "" {
				if err := os.WriteFile(out, pcm, 0o644); err != nil {
					return fmt.Errorf("write pcm: %w", err)
				}
			}
			samples := len(pcm) / (2 * layout.Channels())
			fmt.Fprintf(c.App.Writer, "%s: %d bytes, %d samples/channel, %s @ %d Hz (%.3fs)\n",
				files[0], len(pcm), samples, layout, rate, float64(samples)/float64(rate))
			return nil
		},
	}
}
