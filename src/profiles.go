package laika

/*------------------------------------------------------------------
 *
 * Name:	profiles
 *
 * Purpose:	Frame geometry for the built-in modem's link profiles.
 *
 * Description:	For maximum flexibility the geometry lives in a data
 *		file rather than being scattered through the modulator
 *		as magic numbers.  The copy baked into the binary can
 *		be overridden with a file on disk, e.g. to experiment
 *		with tone spacing without recompiling.
 *
 *---------------------------------------------------------------*/

import (
	_ "embed"
	"fmt"
	"math/bits"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var builtin_profiles_yaml []byte

type modemProfile struct {
	Name          string `yaml:"name"`
	SpeechRate    int    `yaml:"speech_rate"`
	ModemRate     int    `yaml:"modem_rate"`
	SpeechSamples int    `yaml:"speech_samples"`
	ModemSamples  int    `yaml:"modem_samples"`
	Tones         int    `yaml:"tones"`
	ToneBase      int    `yaml:"tone_base"`
	ToneSpacing   int    `yaml:"tone_spacing"`
	SyncBits      int    `yaml:"sync_bits"`
	SyncWord      uint32 `yaml:"sync_word"`
	PayloadBits   int    `yaml:"payload_bits"`
	CodecBits     int    `yaml:"codec_bits"`
	VoiceBits     int    `yaml:"voice_bits"`
}

type profileFile struct {
	Profiles []modemProfile `yaml:"profiles"`
}

func (p *modemProfile) bitsPerSymbol() int {
	return bits.Len(uint(p.Tones)) - 1
}

func (p *modemProfile) frameBits() int {
	return p.SyncBits + p.PayloadBits
}

func (p *modemProfile) symbolsPerFrame() int {
	return p.frameBits() / p.bitsPerSymbol()
}

func (p *modemProfile) samplesPerSymbol() int {
	return p.ModemSamples / p.symbolsPerFrame()
}

func (p *modemProfile) validate() error {
	if p.Tones != 2 && p.Tones != 4 {
		return fmt.Errorf("profile %s: %d tones, only 2 and 4 FSK are supported", p.Name, p.Tones)
	}

	if p.frameBits()%p.bitsPerSymbol() != 0 {
		return fmt.Errorf("profile %s: %d frame bits don't divide into %d bit symbols", p.Name, p.frameBits(), p.bitsPerSymbol())
	}

	if p.ModemSamples%p.symbolsPerFrame() != 0 {
		return fmt.Errorf("profile %s: %d modem samples don't divide into %d symbols", p.Name, p.ModemSamples, p.symbolsPerFrame())
	}

	if p.VoiceBits > p.PayloadBits {
		return fmt.Errorf("profile %s: %d voice bits don't fit in %d payload bits", p.Name, p.VoiceBits, p.PayloadBits)
	}

	if p.CodecBits <= 0 || p.VoiceBits%p.CodecBits != 0 {
		return fmt.Errorf("profile %s: %d voice bits is not a whole number of %d bit codec frames", p.Name, p.VoiceBits, p.CodecBits)
	}

	if p.SpeechSamples%(p.VoiceBits/p.CodecBits) != 0 {
		return fmt.Errorf("profile %s: %d speech samples don't divide into %d codec frames", p.Name, p.SpeechSamples, p.VoiceBits/p.CodecBits)
	}

	return nil
}

/*------------------------------------------------------------------
 *
 * Name:	load_profiles
 *
 * Purpose:	Parse the profile table, either the embedded copy or an
 *		override file, and index it by name.
 *
 *---------------------------------------------------------------*/

func load_profiles(path string) (map[string]modemProfile, error) {
	var data = builtin_profiles_yaml

	if path != "" {
		var readErr error
		data, readErr = os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("reading profile file: %w", readErr)
		}
	}

	var parsed profileFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing profile file: %w", err)
	}

	if len(parsed.Profiles) == 0 {
		return nil, fmt.Errorf("no profiles defined")
	}

	var byName = make(map[string]modemProfile, len(parsed.Profiles))
	for _, p := range parsed.Profiles {
		if err := p.validate(); err != nil {
			return nil, err
		}
		byName[p.Name] = p
	}

	return byName, nil
}
