package laika

/*------------------------------------------------------------------
 *
 * Name:	esno
 *
 * Purpose:	Es/No estimation over a block of received symbols.
 *
 * Description:	Signal quality estimate used for test and validation.
 *		One call per buffer, no state machine: the signal power
 *		is the mean squared magnitude, and the noise power is
 *		estimated from the off-axis scatter of symbols whose
 *		real part clears the RMS level.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
)

func esno_est_calc(rxSym []complex64) float64 {
	var sigVar float64
	for _, s := range rxSym {
		sigVar += float64(real(s))*float64(real(s)) + float64(imag(s))*float64(imag(s))
	}
	sigVar /= float64(len(rxSym))
	var sigRMS = math.Sqrt(sigVar)

	var sumX, sumXX float64
	var n int
	for _, s := range rxSym {
		if math.Abs(float64(real(s))) > sigRMS {
			sumX += float64(imag(s))
			sumXX += float64(imag(s)) * float64(imag(s))
			n++
		}
	}

	var noiseVar float64
	if n > 1 {
		noiseVar = (float64(n)*sumXX - sumX*sumX) / float64(n*(n-1))
	} else {
		noiseVar = sigVar
	}

	/* Total noise power is twice the single axis estimate. */
	noiseVar *= 2

	return 10 * math.Log10(sigVar/noiseVar)
}

/*------------------------------------------------------------------
 *
 * Name:	EsnoEstMain
 *
 * Purpose:	Utility program: read nsym complex float32 symbols from
 *		a file and print the Es/No estimate in dB.
 *
 *---------------------------------------------------------------*/

func EsnoEstMain() {
	if len(os.Args) != 3 {
		fmt.Printf("usage: %s SymbolFile nsym\n", os.Args[0])
		fmt.Printf("SymbolFile holds nsym complex symbols as float32 I/Q pairs.\n")
		os.Exit(1)
	}

	var nsym, nsymErr = strconv.Atoi(os.Args[2])
	if nsymErr != nil || nsym <= 0 {
		log_error("nsym must be a positive integer, not %q", os.Args[2])
		os.Exit(1)
	}

	var fin, openErr = os.Open(os.Args[1])
	if openErr != nil {
		log_error("Error opening symbol file: %s", openErr)
		os.Exit(1)
	}
	defer fin.Close()

	var rxSym = make([]complex64, nsym)
	if err := binary.Read(fin, binary.LittleEndian, rxSym); err != nil {
		log_error("Error reading %d symbols: %s", nsym, err)
		os.Exit(1)
	}

	fmt.Printf("%f\n", esno_est_calc(rxSym))
}
