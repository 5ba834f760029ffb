package laika

/*------------------------------------------------------------------
 *
 * Name:	vocoder
 *
 * Purpose:	Built-in stand-in speech codec.
 *
 * Description:	A real deployment wraps a proper vocoder behind the
 *		SpeechCodec interface.  This one exists so the modem is
 *		usable and testable on its own: each codec frame is an
 *		8 bit quantised energy level followed by the sign bits
 *		of evenly spaced samples.  Crude, but deterministic,
 *		and it reproduces the one property the scheduler relies
 *		on: the energy of a frame can be recovered from its
 *		encoded bits.
 *
 *---------------------------------------------------------------*/

import (
	"math"
)

type bitSampler struct {
	samplesPerFrame int
	bitsPerFrame    int
}

func newBitSampler(samplesPerFrame int, bitsPerFrame int) *bitSampler {
	return &bitSampler{
		samplesPerFrame: samplesPerFrame,
		bitsPerFrame:    bitsPerFrame,
	}
}

func (v *bitSampler) SamplesPerFrame() int {
	return v.samplesPerFrame
}

func (v *bitSampler) BitsPerFrame() int {
	return v.bitsPerFrame
}

/* Quantise mean square energy of the frame to 8 bits, roughly in dB. */

func energy_quantise(meanSquare float64) byte {
	var level = 10 * math.Log10(1+meanSquare)
	if level > 255 {
		level = 255
	}

	return byte(level)
}

func (v *bitSampler) Encode(bits []byte, speech []int16) {
	for i := range bits {
		bits[i] = 0
	}

	var msq float64
	for _, s := range speech[:v.samplesPerFrame] {
		msq += float64(int32(s) * int32(s))
	}
	msq /= float64(v.samplesPerFrame)

	bits[0] = energy_quantise(msq)

	/* Sign bits of evenly spaced samples fill the rest of the frame. */
	var signBits = v.bitsPerFrame - 8
	var stride = v.samplesPerFrame / signBits

	for i := range signBits {
		set_bit(bits, 8+i, speech[i*stride] < 0)
	}
}

func (v *bitSampler) Energy(bits []byte) float64 {
	return float64(bits[0])
}
