package laika

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// QPSK-ish constellation worked out by hand: four symbols at re = +-4
// with +-0.5 off axis scatter, four at re = +-1 sitting below the RMS
// cut so only the first four feed the noise estimate.
func Test_esno_est_calc(t *testing.T) {
	var rxSym = []complex64{
		complex(4, 0.5), complex(-4, -0.5), complex(4, 0.5), complex(-4, -0.5),
		complex(1, 0), complex(-1, 0), complex(1, 0), complex(-1, 0),
	}

	// sigVar (4*16.25 + 4*1)/8, single axis noise var 1/3, doubled.
	var expected = 10 * math.Log10(8.625/(2.0/3.0))

	assert.InDelta(t, expected, esno_est_calc(rxSym), 1e-9)
}

// When no symbol clears the RMS level there is no scatter to measure,
// so the noise estimate falls back to the signal power.
func Test_esno_est_calc_degenerate(t *testing.T) {
	var rxSym = []complex64{1, 1, 1, 1}

	assert.InDelta(t, 10*math.Log10(0.5), esno_est_calc(rxSym), 1e-9)
}

func Test_esno_est_calc_more_scatter_is_worse(t *testing.T) {
	var clean = []complex64{
		complex(4, 0.25), complex(-4, -0.25), complex(4, -0.25), complex(-4, 0.25),
		complex(1, 0), complex(-1, 0), complex(1, 0), complex(-1, 0),
	}
	var noisy = []complex64{
		complex(4, 1), complex(-4, -1), complex(4, -1), complex(-4, 1),
		complex(1, 0), complex(-1, 0), complex(1, 0), complex(-1, 0),
	}

	assert.Less(t, esno_est_calc(noisy), esno_est_calc(clean))
}
