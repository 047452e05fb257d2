//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"math"

	"github.com/obinnaokechukwu/ffdecode/avformat"
	"github.com/obinnaokechukwu/ffdecode/avutil"
)

// SeekTime moves the demuxer so the next packet read for this stream is
// near position seconds. The seek is not keyframe-aligned, so the first
// frames decoded after it may be incomplete.
//
// On failure the codec is left untouched. On success any open video codec
// is flushed.
func (s *Stream) SeekTime(position float64) error {
	if s.closed() {
		return ErrClosed
	}
	tb := s.timeBase.Float64()
	if tb <= 0 {
		return invalidArgument(opSeekTime, "invalid time base")
	}
	if math.IsNaN(position) || math.IsInf(position, 0) {
		return invalidArgument(opSeekTime, "invalid position")
	}
	ticks := position / tb
	if ticks > math.MaxInt64 || ticks < math.MinInt64 {
		return invalidArgument(opSeekTime, "position out of range")
	}

	ts := int64(ticks)
	if start := avformat.GetStartTime(s.c.fmtCtx); start != avutil.NoPTSValue {
		ts += startTicks(start, s.timeBase)
	}

	if err := avformat.SeekFrame(s.c.fmtCtx, int32(s.index), ts, avformat.SeekFlagAny); err != nil {
		return wrapNative(err, opSeekTime)
	}
	if s.dec != nil {
		s.dec.flush()
	}

	s.c.log.Debug("seek", "stream", s.index, "position", position, "ts", ts)
	return nil
}

// SeekFrame seeks to frame index at the stream's frame rate. Errors from
// the underlying SeekTime carry the SeekFrame operation tag.
func (s *Stream) SeekFrame(index int64) error {
	if s.closed() {
		return ErrClosed
	}
	fps := s.frameRate
	if fps <= 0 {
		return invalidArgument(opSeekFrame, "unknown frame rate")
	}
	position := float64(index) / fps
	if math.IsNaN(position) || math.IsInf(position, 0) {
		return invalidArgument(opSeekFrame, "invalid frame index")
	}
	if err := s.SeekTime(position); err != nil {
		return retag(err, opSeekFrame)
	}
	return nil
}

// startTicks moves a container start time in AV_TIME_BASE units into
// ticks of tb.
func startTicks(start int64, tb avutil.Rational) int64 {
	return avutil.RescaleRnd(start, int64(tb.Den), int64(tb.Num)*avutil.TimeBase,
		avutil.RoundNearInf|avutil.RoundPassMinMax)
}
