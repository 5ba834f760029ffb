package laika

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* A modem that only records which entry point got used. */

type stubModem struct {
	nSpeech   int
	nModem    int
	bitsCodec int
	bitsModem int

	voiceCalls int
	dataCalls  int
	rawCalls   int
	lastRaw    []byte
}

func (m *stubModem) NSpeechSamples() int          { return m.nSpeech }
func (m *stubModem) NNomModemSamples() int        { return m.nModem }
func (m *stubModem) BitsPerCodecFrame() int       { return m.bitsCodec }
func (m *stubModem) BitsPerModemFrame() int       { return m.bitsModem }
func (m *stubModem) PayloadSize() int             { return FDV_PAYLOAD_SIZE }
func (m *stubModem) SetDataHeader([6]byte)        {}
func (m *stubModem) SetCallbackData(PacketSource) {}
func (m *stubModem) TX([]int16, []int16)          { m.voiceCalls++ }
func (m *stubModem) DataTX([]int16)               { m.dataCalls++ }
func (m *stubModem) RawDataFromCodecFrames(raw []byte, encoded []byte) {
	copy(raw, encoded)
}
func (m *stubModem) RawDataTX(_ []int16, raw []byte) {
	m.rawCalls++
	m.lastRaw = append([]byte(nil), raw...)
}
func (m *stubModem) Close() error { return nil }

/* A speech codec that hands out scripted per frame energies. */

type stubSpeech struct {
	samples  int
	bits     int
	energies []float64
	next     int
}

func (c *stubSpeech) SamplesPerFrame() int   { return c.samples }
func (c *stubSpeech) BitsPerFrame() int      { return c.bits }
func (c *stubSpeech) Encode([]byte, []int16) {}
func (c *stubSpeech) Energy([]byte) float64 {
	var e = c.energies[c.next]
	c.next++
	return e
}

func Test_Scheduler_integrated_silence_is_data(t *testing.T) {
	var modem = &stubModem{nSpeech: 320, nModem: 1920, bitsCodec: 52, bitsModem: 52}
	var sched = NewScheduler(modem, 15)

	var silence = make([]int16, 320)
	var modOut = make([]int16, 1920)

	assert.False(t, sched.ProcessBlock(silence, modOut))
	assert.Equal(t, 1, modem.dataCalls)
	assert.Equal(t, 0, modem.voiceCalls)
}

func Test_Scheduler_integrated_loud_is_voice(t *testing.T) {
	var modem = &stubModem{nSpeech: 320, nModem: 1920, bitsCodec: 52, bitsModem: 52}
	var sched = NewScheduler(modem, 0)

	var loud = make([]int16, 320)
	for i := range loud {
		loud[i] = math.MaxInt16
	}
	var modOut = make([]int16, 1920)

	assert.True(t, sched.ProcessBlock(loud, modOut))
	assert.Equal(t, 0, modem.dataCalls)
	assert.Equal(t, 1, modem.voiceCalls)
}

func Test_Scheduler_split_energy_averaging(t *testing.T) {
	// 4 codec frames per modem frame, scripted energies averaging 3.0.
	var energies = []float64{1.5, 2.5, 3.5, 4.5}

	var run = func(threshold float64) (*stubModem, bool) {
		var modem = &stubModem{nSpeech: 320, nModem: 1920, bitsCodec: 13, bitsModem: 52}
		var sched = NewScheduler(modem, threshold)
		var codec = &stubSpeech{samples: 80, bits: 13, energies: energies}
		require.NoError(t, sched.UseSpeechCodec(codec))

		var voice = sched.ProcessBlock(make([]int16, 320), make([]int16, 1920))
		return modem, voice
	}

	// average == threshold is not "quiet", so this goes out as voice...
	var voiceModem, voice = run(3.0)
	assert.True(t, voice)
	assert.Equal(t, 1, voiceModem.rawCalls)
	assert.Equal(t, 0, voiceModem.dataCalls)

	// ...and a hair above the average flips it to data.
	var dataModem, data = run(3.0 + 1e-6)
	assert.False(t, data)
	assert.Equal(t, 0, dataModem.rawCalls)
	assert.Equal(t, 1, dataModem.dataCalls)
}

func Test_Scheduler_run_frame_per_block(t *testing.T) {
	var modem = &stubModem{nSpeech: 320, nModem: 1920, bitsCodec: 52, bitsModem: 52}
	var sched = NewScheduler(modem, 15)

	// 5 full blocks plus a partial 100 sample tail which must be dropped.
	var samples = make([]int16, 5*320+100)
	var input bytes.Buffer
	require.NoError(t, binary.Write(&input, binary.LittleEndian, samples))

	var output bytes.Buffer
	var frames, err = sched.Run(&input, &output)
	require.NoError(t, err)

	assert.Equal(t, 5, frames)
	assert.Equal(t, 5*1920*2, output.Len(), "every frame must be exactly one modem frame of samples")
	assert.Equal(t, 5, sched.DataFrames()+sched.VoiceFrames())
}

func Test_Scheduler_run_empty_input(t *testing.T) {
	var modem = &stubModem{nSpeech: 320, nModem: 1920, bitsCodec: 52, bitsModem: 52}
	var sched = NewScheduler(modem, 15)

	var output bytes.Buffer
	var frames, err = sched.Run(bytes.NewReader(nil), &output)
	require.NoError(t, err)

	assert.Zero(t, frames)
	assert.Zero(t, output.Len())
}

func Test_Scheduler_rejects_mismatched_speech_codec(t *testing.T) {
	var modem = &stubModem{nSpeech: 320, nModem: 1920, bitsCodec: 13, bitsModem: 52}
	var sched = NewScheduler(modem, 15)

	// 13 bit frames fit, but 7 samples per frame don't cover the block.
	assert.Error(t, sched.UseSpeechCodec(&stubSpeech{samples: 7, bits: 13}))

	// 5 bit frames don't divide 52.
	assert.Error(t, sched.UseSpeechCodec(&stubSpeech{samples: 80, bits: 5}))
}
