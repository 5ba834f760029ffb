package laika

/*------------------------------------------------------------------
 *
 * Name:	fdv
 *
 * Purpose:	Built-in FSK channel modem.
 *
 * Description:	Implements the Modem interface for the 2400A, 2400B
 *		and 800XA link profiles.  A frame is a fixed sync word
 *		followed by a payload field; the payload carries either
 *		voice bits (zero padded up to the payload budget) or a
 *		chunk of the data channel (fdv_data.go).  The FSK
 *		waveform itself comes from gen_tone.go.
 *
 *		No FEC or scrambling: the interesting part here is the
 *		voice/data multiplex, and anything smarter belongs in a
 *		real channel codec wrapped behind the Modem interface.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
)

/* Largest data packet DataReq may be asked to fill. */
const FDV_PAYLOAD_SIZE = 512

type fdv struct {
	profile modemProfile
	tg      *toneGen
	voc     *bitSampler

	header     [6]byte
	haveHeader bool
	src        PacketSource

	/* Data channel state, see fdv_data.go. */
	pending []byte
	poff    int

	closed bool
}

/*------------------------------------------------------------------
 *
 * Name:	fdv_open
 *
 * Purpose:	Create a modem session for one link profile.
 *
 * Inputs:	profiles	- Table from load_profiles.
 *
 *		name		- 2400A, 2400B or 800XA.
 *
 *---------------------------------------------------------------*/

func fdv_open(profiles map[string]modemProfile, name string) (*fdv, error) {
	var profile, ok = profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown link profile %q", name)
	}

	var codecFrames = profile.VoiceBits / profile.CodecBits

	return &fdv{
		profile: profile,
		tg:      gen_tone_init(profile, 70),
		voc:     newBitSampler(profile.SpeechSamples/codecFrames, profile.CodecBits),
	}, nil
}

func (f *fdv) NSpeechSamples() int    { return f.profile.SpeechSamples }
func (f *fdv) NNomModemSamples() int  { return f.profile.ModemSamples }
func (f *fdv) BitsPerCodecFrame() int { return f.profile.CodecBits }
func (f *fdv) BitsPerModemFrame() int { return f.profile.VoiceBits }
func (f *fdv) PayloadSize() int       { return FDV_PAYLOAD_SIZE }

func (f *fdv) SetDataHeader(mac [6]byte) {
	f.header = mac
	f.haveHeader = true
}

func (f *fdv) SetCallbackData(src PacketSource) {
	f.src = src
}

/* Prepend the sync word and modulate payload bits into one frame. */

func (f *fdv) modulate(modOut []int16, payload []byte) {
	if len(modOut) != f.profile.ModemSamples {
		panic(fmt.Sprintf("modulator needs %d sample output buffer, got %d", f.profile.ModemSamples, len(modOut)))
	}

	var frame = make([]byte, (f.profile.frameBits()+7)/8)

	for i := range f.profile.SyncBits {
		set_bit(frame, i, f.profile.SyncWord&(1<<(f.profile.SyncBits-1-i)) != 0)
	}

	for i := range f.profile.PayloadBits {
		if i < len(payload)*8 {
			set_bit(frame, f.profile.SyncBits+i, get_bit(payload, i))
		}
	}

	f.tg.modulate_frame(modOut, frame, f.profile.frameBits(), f.profile.bitsPerSymbol())
}

/*------------------------------------------------------------------
 *
 * Name:	TX
 *
 * Purpose:	The integrated pipeline: speech encode and modulate in
 *		one call.
 *
 * Description:	Runs the built-in vocoder over the block, packs the
 *		codec frames into the modem voice bit layout, and
 *		modulates.  This is deliberately the same path as
 *		RawDataFromCodecFrames + RawDataTX so the two pipelines
 *		produce bit-identical frames for identical voice bits.
 *
 *---------------------------------------------------------------*/

func (f *fdv) TX(modOut []int16, speechIn []int16) {
	var codecFrames = f.profile.VoiceBits / f.profile.CodecBits
	var bytesPerCodecFrame = (f.profile.CodecBits + 7) / 8

	var encoded = make([]byte, bytesPerCodecFrame*codecFrames)
	for i := range codecFrames {
		f.voc.Encode(encoded[i*bytesPerCodecFrame:(i+1)*bytesPerCodecFrame], speechIn[i*f.voc.SamplesPerFrame():])
	}

	var raw = make([]byte, (f.profile.VoiceBits+7)/8)
	f.RawDataFromCodecFrames(raw, encoded)
	f.RawDataTX(modOut, raw)
}

/*------------------------------------------------------------------
 *
 * Name:	RawDataFromCodecFrames
 *
 * Purpose:	Pack byte aligned codec frames into the modem frame's
 *		contiguous voice bit layout.
 *
 * Description:	Codec frames are rarely a whole number of bytes (52 or
 *		28 bits here) so the modem layout packs them tail to
 *		head.
 *
 *---------------------------------------------------------------*/

func (f *fdv) RawDataFromCodecFrames(raw []byte, encoded []byte) {
	var codecFrames = f.profile.VoiceBits / f.profile.CodecBits
	var bytesPerCodecFrame = (f.profile.CodecBits + 7) / 8

	for i := range raw {
		raw[i] = 0
	}

	var n = 0
	for i := range codecFrames {
		var frame = encoded[i*bytesPerCodecFrame:]
		for b := range f.profile.CodecBits {
			set_bit(raw, n, get_bit(frame, b))
			n++
		}
	}
}

func (f *fdv) RawDataTX(modOut []int16, raw []byte) {
	f.modulate(modOut, raw)
}

func (f *fdv) Close() error {
	if f.closed {
		return fmt.Errorf("modem already closed")
	}
	f.closed = true

	return nil
}
