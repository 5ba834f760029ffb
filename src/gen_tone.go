package laika

/*------------------------------------------------------------------
 *
 * Name:	gen_tone
 *
 * Purpose:	Convert FSK symbols to audio samples.
 *
 * Description:	Direct digital synthesis with a 32 bit phase
 *		accumulator.  The upper 8 bits index a sine table, so
 *		the tone stays phase continuous across symbol changes
 *		which keeps the spectrum tidy.
 *
 *---------------------------------------------------------------*/

import (
	"math"
)

const TICKS_PER_CYCLE = 256.0 * 256.0 * 256.0 * 256.0

type toneGen struct {
	phase uint32 // Phase accumulator.  Upper bits are used as index into sine table.

	change_per_sample []uint32 // Phase step per sample, one per tone.

	samples_per_symbol int

	sine_table [256]int16
}

/*------------------------------------------------------------------
 *
 * Name:	gen_tone_init
 *
 * Purpose:	Calculate the DDS constants for one modem profile.
 *
 * Inputs:	profile	- Which link profile's tone set and rates.
 *
 *		amp	- Signal amplitude in range of 0 - 100.
 *
 *			  100% uses the full 16 bit sample range of +-32k.
 *
 *---------------------------------------------------------------*/

func gen_tone_init(profile modemProfile, amp int) *toneGen {
	var tg = &toneGen{
		samples_per_symbol: profile.samplesPerSymbol(),
	}

	tg.change_per_sample = make([]uint32, profile.Tones)
	for tone := range profile.Tones {
		var freq = float64(profile.ToneBase + tone*profile.ToneSpacing)
		tg.change_per_sample[tone] = uint32(freq * TICKS_PER_CYCLE / float64(profile.ModemRate))
	}

	for i := range tg.sine_table {
		var a = float64(i) * 2 * math.Pi / 256
		tg.sine_table[i] = int16(math.Sin(a) * 32767 * float64(amp) / 100)
	}

	return tg
}

/* Modulate one symbol, writing samples_per_symbol samples. */

func (tg *toneGen) put_symbol(out []int16, symbol int) {
	for i := range tg.samples_per_symbol {
		tg.phase += tg.change_per_sample[symbol]
		out[i] = tg.sine_table[tg.phase>>24]
	}
}

/*------------------------------------------------------------------
 *
 * Name:	modulate_frame
 *
 * Purpose:	Modulate one frame's worth of bits into modem samples.
 *
 * Inputs:	bits	- Frame bits, MSB first, sync included.
 *
 *		nbits	- Number of bits to send.
 *
 * Outputs:	out	- Exactly nbits / bits-per-symbol symbols worth
 *			  of samples.
 *
 *---------------------------------------------------------------*/

func (tg *toneGen) modulate_frame(out []int16, bits []byte, nbits int, bitsPerSymbol int) {
	var off = 0

	for b := 0; b < nbits; b += bitsPerSymbol {
		var symbol = 0
		for k := range bitsPerSymbol {
			symbol <<= 1
			if get_bit(bits, b+k) {
				symbol |= 1
			}
		}

		tg.put_symbol(out[off:], symbol)
		off += tg.samples_per_symbol
	}
}

/* MSB first bit accessors shared by the modulator and bit packers. */

func get_bit(buf []byte, n int) bool {
	return buf[n/8]&(0x80>>(n%8)) != 0
}

func set_bit(buf []byte, n int, v bool) {
	if v {
		buf[n/8] |= 0x80 >> (n % 8)
	} else {
		buf[n/8] &^= 0x80 >> (n % 8)
	}
}
