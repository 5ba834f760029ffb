package laika

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_load_profiles_builtin(t *testing.T) {
	var profiles, err = load_profiles("")
	require.NoError(t, err)

	require.Contains(t, profiles, "2400A")
	require.Contains(t, profiles, "2400B")
	require.Contains(t, profiles, "800XA")

	var a = profiles["2400A"]
	assert.Equal(t, 2, a.bitsPerSymbol())
	assert.Equal(t, 96, a.frameBits())
	assert.Equal(t, 48, a.symbolsPerFrame())
	assert.Equal(t, 40, a.samplesPerSymbol())

	var b = profiles["2400B"]
	assert.Equal(t, 1, b.bitsPerSymbol())
	assert.Equal(t, 96, b.symbolsPerFrame())
	assert.Equal(t, 20, b.samplesPerSymbol())

	var x = profiles["800XA"]
	assert.Equal(t, 2, x.bitsPerSymbol())
	assert.Equal(t, 64, x.frameBits())
	assert.Equal(t, 32, x.symbolsPerFrame())
	assert.Equal(t, 20, x.samplesPerSymbol())
}

func Test_load_profiles_override_file(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "profiles.yaml")

	var override = `profiles:
  - name: TEST
    speech_rate: 8000
    modem_rate: 8000
    speech_samples: 320
    modem_samples: 320
    tones: 2
    tone_base: 1000
    tone_spacing: 1000
    sync_bits: 8
    sync_word: 0xa5
    payload_bits: 72
    codec_bits: 36
    voice_bits: 72
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	var profiles, err = load_profiles(path)
	require.NoError(t, err)

	require.Len(t, profiles, 1)
	var p = profiles["TEST"]
	assert.Equal(t, 80, p.symbolsPerFrame())
	assert.Equal(t, 4, p.samplesPerSymbol())
}

func Test_load_profiles_missing_file(t *testing.T) {
	var _, err = load_profiles(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func Test_load_profiles_malformed(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles: {"), 0o644))

	var _, err = load_profiles(path)
	assert.Error(t, err)
}

func Test_profile_validate(t *testing.T) {
	var good = modemProfile{
		Name:          "T",
		SpeechRate:    8000,
		ModemRate:     8000,
		SpeechSamples: 320,
		ModemSamples:  320,
		Tones:         4,
		ToneBase:      800,
		ToneSpacing:   400,
		SyncBits:      8,
		SyncWord:      0xa5,
		PayloadBits:   56,
		CodecBits:     32,
		VoiceBits:     32,
	}
	require.NoError(t, good.validate())

	var bad = good
	bad.Tones = 3
	assert.Error(t, bad.validate(), "only 2 and 4 FSK")

	bad = good
	bad.VoiceBits = 64
	assert.Error(t, bad.validate(), "voice bits must fit the payload")

	bad = good
	bad.ModemSamples = 321
	assert.Error(t, bad.validate(), "samples must divide into symbols")

	bad = good
	bad.CodecBits = 28
	assert.Error(t, bad.validate(), "voice bits must be whole codec frames")

	bad = good
	bad.CodecBits = 16
	bad.SpeechSamples = 321
	assert.Error(t, bad.validate(), "speech must divide into codec frames")
}
