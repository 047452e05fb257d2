//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"github.com/obinnaokechukwu/ffdecode/avcodec"
	"github.com/obinnaokechukwu/ffdecode/avutil"
)

// NextFrame decodes the next video frame and converts it to BGR24.
//
// At the end of the stream it returns an error for which IsEOF is true.
// The codec is opened on the first call. After an error other than EOF
// the stream should not be read further.
func (s *Stream) NextFrame() (*Frame, error) {
	if s.closed() {
		return nil, ErrClosed
	}
	if s.kind != MediaVideo {
		return nil, mismatchError(opNextFrame)
	}
	if s.dec == nil {
		dec, err := newDecoder(s.st)
		if err != nil {
			return nil, err
		}
		s.dec = dec
		s.c.log.Debug("decoder created", "stream", s.index,
			"codec", avcodec.CodecName(s.info.CodecID))
	}

	d := s.dec
	for {
		if d.needPacket && !d.draining {
			if err := s.feed(d); err != nil {
				return nil, err
			}
		}

		err := avcodec.ReceiveFrame(d.codecCtx, d.frame)
		switch {
		case avutil.IsAgain(err):
			if d.draining {
				return nil, nativeError(avutil.AVERROR_EOF, opNextFrame)
			}
			if d.stalled {
				// Refused input and produced no output.
				return nil, wrapNative(err, opNextFrame)
			}
			d.needPacket = true
			continue
		case avutil.IsEOF(err):
			return nil, nativeError(avutil.AVERROR_EOF, opNextFrame)
		case err != nil:
			return nil, wrapNative(err, opNextFrame)
		}
		d.stalled = false

		f, err := s.convertFrame(d)
		avutil.FrameUnref(d.frame)
		return f, err
	}
}

// feed sends the next packet of the stream to the codec, or resends the
// held one. At the end of the demuxer it switches the codec to draining.
func (s *Stream) feed(d *decoder) error {
	d.needPacket = false
	if !d.pending {
		err := readPacket(s.c.fmtCtx, d.packet, s.index)
		if avutil.IsEOF(err) {
			d.draining = true
			if err := avcodec.SendPacket(d.codecCtx, nil); err != nil && !avutil.IsEOF(err) {
				return wrapNative(err, opNextFrame)
			}
			return nil
		}
		if err != nil {
			return wrapNative(err, opNextFrame)
		}
	}

	err := avcodec.SendPacket(d.codecCtx, d.packet)
	if avutil.IsAgain(err) {
		// Codec is full; keep the packet until a frame is received.
		d.pending = true
		d.stalled = true
		return nil
	}
	d.pending = false
	avcodec.PacketUnref(d.packet)
	if err != nil {
		return wrapNative(err, opNextFrame)
	}
	return nil
}

func (s *Stream) convertFrame(d *decoder) (*Frame, error) {
	w := int(avutil.GetFrameWidth(d.frame))
	h := int(avutil.GetFrameHeight(d.frame))
	format := avutil.PixelFormat(avutil.GetFrameFormat(d.frame))

	if d.conv == nil || !d.conv.matches(w, h, format) {
		if d.conv != nil {
			d.conv.close()
			d.conv = nil
		}
		conv, err := newConverter(w, h, format)
		if err != nil {
			return nil, err
		}
		d.conv = conv
	}

	data, stride, err := d.conv.convert(d.frame)
	if err != nil {
		return nil, err
	}

	tb := s.timeBase.Float64()
	pts := avutil.GetFrameBestEffortTimestamp(d.frame)
	if pts == avutil.NoPTSValue {
		pts = avutil.GetFramePTS(d.frame)
	}
	return &Frame{
		Data:   data,
		Width:  w,
		Height: h,
		Stride: stride,
		PTS:    seconds(pts, tb),
		DTS:    seconds(avutil.GetFramePktDTS(d.frame), tb),
	}, nil
}

// seconds converts a timestamp in ticks of tb seconds. Unknown is 0.
func seconds(ts int64, tb float64) float64 {
	if ts == avutil.NoPTSValue {
		return 0
	}
	return float64(ts) * tb
}
