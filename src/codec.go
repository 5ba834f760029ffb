package laika

/*------------------------------------------------------------------
 *
 * Name:	codec
 *
 * Purpose:	Boundaries to the channel modem and the speech codec.
 *
 * Description:	The scheduler only cares about these interfaces.  The
 *		built-in FSK modem (fdv.go) satisfies Modem; a real
 *		deployment would wrap an external channel codec with
 *		its own waveforms and FEC behind the same interface.
 *
 *		SpeechCodec is only used in the split (--codectx)
 *		pipeline, where speech is encoded to bits outside the
 *		modem, e.g. because encoded frames arrive from a
 *		network rather than a microphone.
 *
 *---------------------------------------------------------------*/

// Modem is one open channel codec session.  It is not safe for
// concurrent use: the data callback cycle and the modulator state are
// mutated in strict program order.
type Modem interface {
	// Frame geometry.
	NSpeechSamples() int    // speech samples consumed per frame
	NNomModemSamples() int  // modulated samples produced per frame
	BitsPerCodecFrame() int // voice bits per codec frame
	BitsPerModemFrame() int // voice bits per modem frame
	PayloadSize() int       // largest data packet DataReq may fill

	// Session setup, done once before any frame is produced.
	SetDataHeader(mac [6]byte)
	SetCallbackData(src PacketSource)

	// TX speech-encodes and modulates one block of raw speech.
	TX(modOut []int16, speechIn []int16)

	// DataTX modulates one frame of data, pulling packets from the
	// registered PacketSource as needed.
	DataTX(modOut []int16)

	// RawDataFromCodecFrames packs externally encoded codec frames into
	// the modem frame bit layout expected by RawDataTX.
	RawDataFromCodecFrames(raw []byte, encoded []byte)

	// RawDataTX modulates one frame of pre-encoded voice bits.
	RawDataTX(modOut []int16, raw []byte)

	Close() error
}

// SpeechCodec encodes raw speech into codec bits, one frame at a time.
type SpeechCodec interface {
	SamplesPerFrame() int
	BitsPerFrame() int

	// Encode writes one frame of codec bits.  bits must hold
	// (BitsPerFrame()+7)/8 bytes; speech must hold SamplesPerFrame()
	// samples.
	Encode(bits []byte, speech []int16)

	// Energy reports the audio energy of the most recently encoded
	// frame, in the codec's own units.  These are not the same units as
	// samples_get_energy; a data threshold chosen for one pipeline does
	// not transfer to the other.
	Energy(bits []byte) float64
}
