//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"log/slog"
	"strconv"
	"time"
)

// OpenOptions configures how a container is opened.
type OpenOptions struct {
	// Format hint (e.g., "mp4", "matroska") - optional
	Format string

	// FFmpeg options passed to avformat_open_input
	AVOptions map[string]string

	// ProbeSize caps the bytes read while probing, 0 keeps FFmpeg's default.
	ProbeSize int64

	// AnalyzeDuration caps how much media is analyzed by stream info probing.
	AnalyzeDuration time.Duration

	// IOBufferSize is the AVIO read buffer for blob and reader input.
	IOBufferSize int

	// Logger receives debug events. Defaults to slog.Default().
	Logger *slog.Logger
}

// OpenOption is a functional option for Open, OpenBlob and OpenReader.
type OpenOption func(*OpenOptions)

// WithFormat forces the demuxer instead of probing.
func WithFormat(format string) OpenOption {
	return func(o *OpenOptions) {
		o.Format = format
	}
}

// WithAVOptions sets FFmpeg options passed to avformat_open_input.
// Options the demuxer does not recognize are ignored.
func WithAVOptions(options map[string]string) OpenOption {
	return func(o *OpenOptions) {
		if o.AVOptions == nil {
			o.AVOptions = make(map[string]string, len(options))
		}
		for k, v := range options {
			o.AVOptions[k] = v
		}
	}
}

// WithProbeSize sets the "probesize" demuxer option.
func WithProbeSize(bytes int64) OpenOption {
	return func(o *OpenOptions) {
		o.ProbeSize = bytes
	}
}

// WithAnalyzeDuration sets the "analyzeduration" demuxer option.
func WithAnalyzeDuration(d time.Duration) OpenOption {
	return func(o *OpenOptions) {
		o.AnalyzeDuration = d
	}
}

// WithIOBufferSize sets the AVIO buffer size for blob input.
func WithIOBufferSize(n int) OpenOption {
	return func(o *OpenOptions) {
		o.IOBufferSize = n
	}
}

// WithLogger routes container debug events to l.
func WithLogger(l *slog.Logger) OpenOption {
	return func(o *OpenOptions) {
		o.Logger = l
	}
}

func buildOptions(options []OpenOption) *OpenOptions {
	opts := &OpenOptions{IOBufferSize: defaultIOBufferSize}
	for _, opt := range options {
		opt(opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}

// demuxerOptions merges the typed shortcuts into the raw option map.
func (o *OpenOptions) demuxerOptions() map[string]string {
	out := make(map[string]string, len(o.AVOptions)+2)
	for k, v := range o.AVOptions {
		out[k] = v
	}
	if o.ProbeSize > 0 {
		out["probesize"] = strconv.FormatInt(o.ProbeSize, 10)
	}
	if o.AnalyzeDuration > 0 {
		out["analyzeduration"] = strconv.FormatInt(o.AnalyzeDuration.Microseconds(), 10)
	}
	return out
}
