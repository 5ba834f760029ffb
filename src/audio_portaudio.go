package laika

/*------------------------------------------------------------------
 *
 * Name:	audio_portaudio
 *
 * Purpose:	Interface to an audio device commonly called a "sound
 *		card" for historical reasons.
 *
 * Description:	The scheduler consumes an io.Reader of little endian
 *		16 bit samples, so capture is wrapped up the same way:
 *		whole blocks are read from the default input device and
 *		served out as bytes.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gordonklaus/portaudio"
)

type audioInput struct {
	stream *portaudio.Stream
	in     []int16

	buf []byte /* Unread remainder of the last captured block. */
}

/*------------------------------------------------------------------
 *
 * Name:	audio_input_open
 *
 * Purpose:	Open the default capture device, mono, at the modem's
 *		speech rate, delivering blockSize samples per read.
 *
 *---------------------------------------------------------------*/

func audio_input_open(sampleRate int, blockSize int) (io.ReadCloser, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}

	var a = &audioInput{
		in: make([]int16, blockSize),
	}

	var stream, openErr = portaudio.OpenDefaultStream(1, 0, float64(sampleRate), blockSize, a.in)
	if openErr != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("opening capture stream: %w", openErr)
	}
	a.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("starting capture stream: %w", err)
	}

	return a, nil
}

func (a *audioInput) Read(p []byte) (int, error) {
	if len(a.buf) == 0 {
		if err := a.stream.Read(); err != nil {
			return 0, fmt.Errorf("reading from capture stream: %w", err)
		}

		a.buf = make([]byte, 2*len(a.in))
		for i, s := range a.in {
			binary.LittleEndian.PutUint16(a.buf[2*i:], uint16(s))
		}
	}

	var n = copy(p, a.buf)
	a.buf = a.buf[n:]

	return n, nil
}

func (a *audioInput) Close() error {
	a.stream.Stop()
	var err = a.stream.Close()
	portaudio.Terminate()

	return err
}
