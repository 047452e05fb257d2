//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import (
	"github.com/obinnaokechukwu/ffdecode/avcodec"
	"github.com/obinnaokechukwu/ffdecode/avformat"
	"github.com/obinnaokechukwu/ffdecode/avutil"
)

// decoder is an opened codec context for one stream plus the packet and
// frame it decodes with.
type decoder struct {
	codecCtx avcodec.Context
	packet   avcodec.Packet
	frame    avutil.Frame

	// needPacket is set when the codec asked for more input.
	needPacket bool
	// draining is set once the demuxer hit EOF and a NULL packet was sent.
	draining bool
	// pending is set while packet holds data the codec refused with EAGAIN.
	pending bool
	// stalled is set from a refused send until the next frame comes out.
	stalled bool

	conv *converter
}

// openCodec builds an opened codec context for st. Each failed stage
// reports its own local code under opCreateDecoder.
func openCodec(st avformat.Stream) (avcodec.Context, error) {
	par := avformat.GetStreamCodecPar(st)

	codec := avcodec.FindDecoder(avformat.GetCodecParCodecID(par))
	if codec == nil {
		return nil, localError(KindNative, codeNoDecoder, opCreateDecoder, "decoder not found")
	}

	ctx := avcodec.AllocContext3(codec)
	if ctx == nil {
		return nil, localError(KindNative, codeAllocCodecCtx, opCreateDecoder, "could not allocate codec context")
	}

	if err := avcodec.ParametersToContext(ctx, par); err != nil {
		avcodec.FreeContext(&ctx)
		return nil, localError(KindNative, codeCopyParams, opCreateDecoder, "could not copy codec parameters")
	}

	var opts avutil.Dictionary
	defer avutil.DictFree(&opts)
	if tb := avformat.GetStreamTimeBase(st); tb.Valid() {
		if err := avutil.DictSet(&opts, "pkt_timebase", tb.String(), 0); err != nil {
			avcodec.FreeContext(&ctx)
			return nil, wrapNative(err, opCreateDecoder)
		}
	}

	if err := avcodec.Open2(ctx, codec, &opts); err != nil {
		avcodec.FreeContext(&ctx)
		return nil, wrapNative(err, opCreateDecoder)
	}
	return ctx, nil
}

// newDecoder opens a codec for st and allocates its packet and frame.
func newDecoder(st avformat.Stream) (*decoder, error) {
	ctx, err := openCodec(st)
	if err != nil {
		return nil, err
	}
	d := &decoder{codecCtx: ctx, needPacket: true}

	if d.packet = avcodec.PacketAlloc(); d.packet == nil {
		d.close()
		return nil, nativeError(avutil.AVERROR_ENOMEM, opCreateDecoder)
	}
	if d.frame = avutil.FrameAlloc(); d.frame == nil {
		d.close()
		return nil, nativeError(avutil.AVERROR_ENOMEM, opCreateDecoder)
	}
	return d, nil
}

// readPacket reads into pkt until a packet of stream index arrives.
// io errors, including EOF, are returned as *avutil.Error.
func readPacket(fmtCtx avformat.FormatContext, pkt avcodec.Packet, index int) error {
	for {
		avcodec.PacketUnref(pkt)
		if err := avformat.ReadFrame(fmtCtx, pkt); err != nil {
			return err
		}
		if int(avcodec.GetPacketStreamIndex(pkt)) == index {
			return nil
		}
	}
}

// flush drops buffered frames and any held packet after a seek.
func (d *decoder) flush() {
	avcodec.FlushBuffers(d.codecCtx)
	avcodec.PacketUnref(d.packet)
	d.needPacket = true
	d.draining = false
	d.pending = false
	d.stalled = false
}

func (d *decoder) close() {
	if d.conv != nil {
		d.conv.close()
		d.conv = nil
	}
	avutil.FrameFree(&d.frame)
	avcodec.PacketFree(&d.packet)
	avcodec.FreeContext(&d.codecCtx)
}
