package laika

/*------------------------------------------------------------------
 *
 * Name:	energy
 *
 * Purpose:	Determine the amount of 'energy' in a block of speech
 *		samples by squaring them.
 *
 *		This is not a perfect VAD as noise may trigger it, but
 *		works well for demonstrations.
 *
 *---------------------------------------------------------------*/

func samples_get_energy(samples []int16) float64 {
	var e float64

	for _, s := range samples {
		e += float64(int32(s)*int32(s)) / 8192
	}
	e /= float64(len(samples))

	return e
}
