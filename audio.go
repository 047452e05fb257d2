//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"unsafe"

	"github.com/obinnaokechukwu/ffdecode/avcodec"
	"github.com/obinnaokechukwu/ffdecode/avutil"
	"github.com/obinnaokechukwu/ffdecode/swresample"
)

// DecodeAudio decodes the rest of an audio stream into interleaved signed
// 16-bit PCM with the given channel layout and sample rate.
//
// It reads packets from the container's current position to the end, so
// call SeekTime first to decode from elsewhere. A stream with no samples
// yields an empty slice and a nil error. Each call uses its own codec
// context; nothing partial is returned on error.
func (s *Stream) DecodeAudio(layout ChannelLayout, sampleRate int) ([]byte, error) {
	if s.closed() {
		return nil, ErrClosed
	}
	if s.kind != MediaAudio {
		return nil, mismatchError(opDecodeAudio)
	}
	if layout == 0 {
		return nil, invalidArgument(opDecodeAudio, "invalid channel layout")
	}
	if sampleRate <= 0 {
		return nil, invalidArgument(opDecodeAudio, "invalid sample rate")
	}

	job, err := newAudioJob(s, layout, sampleRate)
	if err != nil {
		return nil, err
	}
	defer job.close()

	if err := job.run(); err != nil {
		return nil, err
	}
	return job.drain()
}

// audioJob holds everything one DecodeAudio call allocates.
type audioJob struct {
	s *Stream

	codecCtx avcodec.Context
	packet   avcodec.Packet
	frame    avutil.Frame
	rs       *resampler
	fifo     avutil.AudioFifo
}

func newAudioJob(s *Stream, layout ChannelLayout, sampleRate int) (*audioJob, error) {
	ctx, err := openCodec(s.st)
	if err != nil {
		return nil, err
	}
	j := &audioJob{s: s, codecCtx: ctx}

	if j.packet = avcodec.PacketAlloc(); j.packet == nil {
		j.close()
		return nil, nativeError(avutil.AVERROR_ENOMEM, opDecodeAudio)
	}
	if j.frame = avutil.FrameAlloc(); j.frame == nil {
		j.close()
		return nil, nativeError(avutil.AVERROR_ENOMEM, opDecodeAudio)
	}

	src := swresample.Layout{
		ChannelMask:  sourceMask(ctx),
		SampleFormat: avcodec.GetCtxSampleFmt(ctx),
		SampleRate:   avcodec.GetCtxSampleRate(ctx),
	}
	dst := swresample.Layout{
		ChannelMask:  uint64(layout),
		SampleFormat: avutil.SampleFormatS16,
		SampleRate:   int32(sampleRate),
	}
	if j.rs, err = newResampler(dst, src); err != nil {
		j.close()
		return nil, err
	}

	if j.fifo = avutil.AudioFifoAlloc(avutil.SampleFormatS16, dst.Channels(), 1); j.fifo == nil {
		j.close()
		return nil, nativeError(avutil.AVERROR_ENOMEM, opDecodeAudio)
	}

	s.c.log.Debug("audio decode started", "stream", s.index,
		"codec", avcodec.CodecName(s.info.CodecID),
		"src_rate", src.SampleRate, "src_channels", src.Channels(),
		"dst_rate", sampleRate, "dst_layout", layout.String())
	return j, nil
}

// run feeds every remaining packet of the stream through the codec and
// the resampler into the FIFO, then drains the codec.
func (j *audioJob) run() error {
	for {
		err := readPacket(j.s.c.fmtCtx, j.packet, j.s.index)
		if avutil.IsEOF(err) {
			break
		}
		if err != nil {
			return wrapNative(err, opDecodeAudio)
		}

		if err := j.send(j.packet); err != nil {
			return err
		}
		if err := j.receive(); err != nil {
			return err
		}
	}

	if err := j.send(nil); err != nil {
		return err
	}
	return j.receive()
}

// send hands pkt to the codec. When the codec is full its frames are
// pulled out first and pkt is sent again. A nil pkt starts draining.
func (j *audioJob) send(pkt avcodec.Packet) error {
	defer avcodec.PacketUnref(pkt)

	err := avcodec.SendPacket(j.codecCtx, pkt)
	if avutil.IsAgain(err) {
		if err := j.receive(); err != nil {
			return err
		}
		err = avcodec.SendPacket(j.codecCtx, pkt)
	}
	if err != nil && !(pkt == nil && avutil.IsEOF(err)) {
		return wrapNative(err, opDecodeAudio)
	}
	return nil
}

// receive pulls frames until the codec wants more input or is done.
func (j *audioJob) receive() error {
	for {
		err := avcodec.ReceiveFrame(j.codecCtx, j.frame)
		if avutil.IsAgain(err) || avutil.IsEOF(err) {
			return nil
		}
		if err != nil {
			return wrapNative(err, opDecodeAudio)
		}

		err = j.push()
		avutil.FrameUnref(j.frame)
		if err != nil {
			return err
		}
	}
}

// push resamples the current frame and appends it to the FIFO.
func (j *audioJob) push() error {
	planes, n, err := j.rs.convert(j.frame)
	if err != nil {
		return err
	}
	defer avutil.Free(planes[0])

	if n == 0 {
		return nil
	}
	if err := avutil.AudioFifoRealloc(j.fifo, avutil.AudioFifoSize(j.fifo)+n); err != nil {
		return wrapNative(err, opDecodeAudio)
	}
	if _, err := avutil.AudioFifoWrite(j.fifo, &planes, n); err != nil {
		return wrapNative(err, opDecodeAudio)
	}
	return nil
}

// drain copies the whole FIFO out as one interleaved buffer.
func (j *audioJob) drain() ([]byte, error) {
	n := avutil.AudioFifoSize(j.fifo)
	if n <= 0 {
		return []byte{}, nil
	}
	channels := j.rs.dst.Channels()

	size, err := avutil.SamplesBufferSize(channels, n, avutil.SampleFormatS16, 1)
	if err != nil {
		return nil, wrapNative(err, opDecodeAudio)
	}
	planes, _, err := avutil.SamplesAlloc(channels, n, avutil.SampleFormatS16, 1)
	if err != nil {
		return nil, wrapNative(err, opDecodeAudio)
	}
	defer avutil.Free(planes[0])

	if _, err := avutil.AudioFifoRead(j.fifo, &planes, n); err != nil {
		return nil, wrapNative(err, opDecodeAudio)
	}

	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(planes[0]), size))
	return out, nil
}

func (j *audioJob) close() {
	avutil.FrameFree(&j.frame)
	if j.rs != nil {
		j.rs.close()
		j.rs = nil
	}
	avutil.AudioFifoFree(&j.fifo)
	avcodec.PacketFree(&j.packet)
	avcodec.FreeContext(&j.codecCtx)
}
