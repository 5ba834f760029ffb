package laika

/*------------------------------------------------------------------
 *
 * Name:	sched
 *
 * Purpose:	Per frame voice/data scheduling.
 *
 * Description:	Once per block of speech samples, decide whether the
 *		channel carries an encoded voice frame or a data frame,
 *		and produce exactly one modem frame either way.  Output
 *		duration therefore stays in lock step with consumed
 *		input duration.
 *
 *		Two pipelines:
 *
 *		Integrated - the modem does speech encoding and
 *		modulation in one call; the data decision uses the raw
 *		sample energy.
 *
 *		Split - speech is encoded to codec bits outside the
 *		modem (e.g. frames arriving from a network), the data
 *		decision uses the energy reported by that codec, and
 *		the modem only modulates.
 *
 *		The threshold is one scalar shared by both pipelines
 *		even though their energy units differ.  Callers using
 *		the split pipeline must calibrate the threshold to the
 *		codec's units, not the raw sample units.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

type Scheduler struct {
	modem     Modem
	speech    SpeechCodec // nil selects the integrated pipeline
	threshold float64

	flog *frameLog // optional per frame decision log

	/* Session totals, reported at end of stream. */
	voiceFrames int
	dataFrames  int
}

func NewScheduler(modem Modem, threshold float64) *Scheduler {
	return &Scheduler{
		modem:     modem,
		threshold: threshold,
	}
}

// UseSpeechCodec switches to the split pipeline.  Selected once at
// session configuration time, not per frame.
func (s *Scheduler) UseSpeechCodec(codec SpeechCodec) error {
	if s.modem.BitsPerModemFrame()%codec.BitsPerFrame() != 0 {
		return fmt.Errorf("%d codec bits don't pack into %d modem voice bits", codec.BitsPerFrame(), s.modem.BitsPerModemFrame())
	}

	var codecFrames = s.modem.BitsPerModemFrame() / codec.BitsPerFrame()
	if codecFrames*codec.SamplesPerFrame() != s.modem.NSpeechSamples() {
		return fmt.Errorf("%d codec frames of %d samples don't cover a %d sample block",
			codecFrames, codec.SamplesPerFrame(), s.modem.NSpeechSamples())
	}

	s.speech = codec

	return nil
}

func (s *Scheduler) UseFrameLog(flog *frameLog) {
	s.flog = flog
}

/*------------------------------------------------------------------
 *
 * Name:	ProcessBlock
 *
 * Purpose:	Turn one block of speech samples into one modem frame.
 *
 * Returns:	true if the frame carries voice, false if data.
 *
 *---------------------------------------------------------------*/

func (s *Scheduler) ProcessBlock(speechIn []int16, modOut []int16) bool {
	var voice bool
	var energy float64

	if s.speech == nil {
		/* Integrated: decide on raw sample energy. */
		energy = samples_get_energy(speechIn)

		/* Is the audio fragment quiet? */
		if energy < s.threshold {
			s.modem.DataTX(modOut)
		} else {
			s.modem.TX(modOut, speechIn)
			voice = true
		}
	} else {
		/* Split: encode first, decide on the codec's energy. */
		var bitsPerCodecFrame = s.speech.BitsPerFrame()
		var bytesPerCodecFrame = (bitsPerCodecFrame + 7) / 8
		var codecFrames = s.modem.BitsPerModemFrame() / bitsPerCodecFrame

		var encoded = make([]byte, bytesPerCodecFrame*codecFrames)

		for i := range codecFrames {
			var frame = encoded[i*bytesPerCodecFrame : (i+1)*bytesPerCodecFrame]
			s.speech.Encode(frame, speechIn[i*s.speech.SamplesPerFrame():])
			energy += s.speech.Energy(frame)
		}
		energy /= float64(codecFrames)

		if energy < s.threshold {
			s.modem.DataTX(modOut)
		} else {
			var raw = make([]byte, (s.modem.BitsPerModemFrame()+7)/8)
			s.modem.RawDataFromCodecFrames(raw, encoded)
			s.modem.RawDataTX(modOut, raw)
			voice = true
		}
	}

	if voice {
		s.voiceFrames++
	} else {
		s.dataFrames++
	}

	if s.flog != nil {
		s.flog.record(s.voiceFrames+s.dataFrames, voice, energy, s.threshold)
	}

	log_debug("frame %d: energy %.2f threshold %.2f -> %s",
		s.voiceFrames+s.dataFrames, energy, s.threshold, frameKind(voice))

	return voice
}

func frameKind(voice bool) string {
	if voice {
		return "voice"
	}

	return "data"
}

type flusher interface {
	Flush() error
}

/*------------------------------------------------------------------
 *
 * Name:	Run
 *
 * Purpose:	The main loop: read speech blocks until the input is
 *		exhausted, writing one modem frame per block.
 *
 * Description:	A short final read (fewer samples than one block) is
 *		normal end of stream, not an error; the partial block
 *		is dropped without producing output.
 *
 *		If the destination can be flushed it is flushed after
 *		every frame, so a consumer waiting on a pipe sees each
 *		frame without buffering delay.
 *
 * Returns:	Number of frames produced.
 *
 *---------------------------------------------------------------*/

func (s *Scheduler) Run(in io.Reader, out io.Writer) (int, error) {
	var speechIn = make([]int16, s.modem.NSpeechSamples())
	var modOut = make([]int16, s.modem.NNomModemSamples())

	var frames = 0

	for {
		var readErr = binary.Read(in, binary.LittleEndian, speechIn)
		if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
			break
		}
		if readErr != nil {
			return frames, fmt.Errorf("reading speech samples: %w", readErr)
		}

		s.ProcessBlock(speechIn, modOut)

		if writeErr := binary.Write(out, binary.LittleEndian, modOut); writeErr != nil {
			return frames, fmt.Errorf("writing modem samples: %w", writeErr)
		}
		frames++

		/* If this is in a pipeline, we probably don't want the usual
		   buffering to occur. */
		if fl, ok := out.(flusher); ok {
			if flushErr := fl.Flush(); flushErr != nil {
				return frames, fmt.Errorf("flushing modem samples: %w", flushErr)
			}
		}
	}

	return frames, nil
}

func (s *Scheduler) VoiceFrames() int {
	return s.voiceFrames
}

func (s *Scheduler) DataFrames() int {
	return s.dataFrames
}
