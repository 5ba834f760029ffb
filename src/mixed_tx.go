package laika

/*------------------------------------------------------------------
 *
 * Name:	mixed_tx
 *
 * Purpose:	Transmit program demonstrating mixed VHF packet data
 *		and speech frames.
 *
 * Description:	Reads raw 16 bit speech samples, splits the channel
 *		between voice and data frames based on audio energy,
 *		and writes raw modem samples.
 *
 * Examples:	mixed-tx 2400A hts1a.raw hts1a_fdmdv.raw
 *
 *		cat hts1a.raw | mixed-tx 800XA --callsign PE1RXQ - - | aplay -r 8000 -f S16_LE
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/spf13/pflag"
	"github.com/tzneal/coordconv"
)

func MixedTXMain() {
	var codectx = pflag.Bool("codectx", false, "Encode speech outside the modem and use the raw frame entry points.")
	var callsign = pflag.String("callsign", "NOCALL", "Station callsign, up to 8 characters 0-9 A-Z.")
	var ssid = pflag.Int("ssid", 0, "Secondary station ID, 0-15.")
	var macMulticast = pflag.Bool("mac-multicast", false, "Set the multicast bit of the station address.")
	var dataThreshold = pflag.Float64("data-threshold", 15, `Frames with average energy below this carry data instead of speech.
With --codectx the units are the speech codec's, not raw sample energy.`)
	var position = pflag.String("position", "", "Position for FPRS reports as decimal degrees 'lat,lon'.  Default is Mount Everest.")
	var positionUTM = pflag.String("position-utm", "", "Position for FPRS reports as 'zone[band] easting northing', e.g. '19T 326082 4855210'.")
	var adevice = pflag.BoolP("adevice", "A", false, "Capture speech from the default sound device instead of a file.")
	var frameLogPath = pflag.String("frame-log", "", "Write per frame decisions as CSV to this file, or daily files in this directory.")
	var profilePath = pflag.String("profiles", "", "Override the built-in modem profile table with this YAML file.")
	var verbose = pflag.BoolP("verbose", "v", false, "Log every frame decision.")
	var version = pflag.Bool("version", false, "Display version information.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Transmit mixed voice and data frames.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s 2400A|2400B|800XA InputRawSpeechFile OutputModemRawFile [options]\n", os.Args[0])
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Use - for standard input / standard output.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Example:  %s 2400A hts1a.raw hts1a_fdmdv.raw\n", os.Args[0])
	}

	// !!! PARSE !!!
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	if *version {
		printVersion(*verbose)
		os.Exit(0)
	}

	if pflag.NArg() != 3 {
		pflag.Usage()
		os.Exit(1)
	}

	set_verbose(*verbose)

	var mode = pflag.Arg(0)
	var inName = pflag.Arg(1)
	var outName = pflag.Arg(2)

	/*
	 * Everything that can be misconfigured fails here, before any
	 * frame is produced.
	 */

	var profiles, profErr = load_profiles(*profilePath)
	if profErr != nil {
		log_error("Error in profile table: %s", profErr)
		os.Exit(1)
	}

	var modem, openErr = fdv_open(profiles, mode)
	if openErr != nil {
		log_error("Error in mode: %s", openErr)
		os.Exit(1)
	}

	var mac, macErr = eth_ar_call2mac(*callsign, *ssid, *macMulticast)
	if macErr != nil {
		log_error("Error in station address: %s", macErr)
		os.Exit(1)
	}

	var pos, posErr = parse_position(*position, *positionUTM)
	if posErr != nil {
		log_error("Error in position: %s", posErr)
		os.Exit(1)
	}

	var flog, flogErr = framelog_init(*frameLogPath)
	if flogErr != nil {
		log_error("Error in frame log: %s", flogErr)
		os.Exit(1)
	}
	defer flog.Close()

	/* Generate our address and register it for the header frames. */
	modem.SetDataHeader(mac)

	var source = newDemoSource(mac, pos)
	modem.SetCallbackData(source)

	var decodedCall, decodedSSID, _ = eth_ar_mac2call(mac)
	log_info("Station %s-%d, address %02x:%02x:%02x:%02x:%02x:%02x",
		decodedCall, decodedSSID, mac[0], mac[1], mac[2], mac[3], mac[4], mac[5])

	var sched = NewScheduler(modem, *dataThreshold)
	sched.UseFrameLog(flog)

	if *codectx {
		var codecFrames = modem.BitsPerModemFrame() / modem.BitsPerCodecFrame()
		var codec = newBitSampler(modem.NSpeechSamples()/codecFrames, modem.BitsPerCodecFrame())
		if err := sched.UseSpeechCodec(codec); err != nil {
			log_error("Error in speech codec setup: %s", err)
			os.Exit(1)
		}
	}

	/*
	 * Input and output streams.
	 */

	var in io.Reader
	switch {
	case *adevice:
		var audio, audioErr = audio_input_open(profiles[mode].SpeechRate, modem.NSpeechSamples())
		if audioErr != nil {
			log_error("Error opening sound device: %s", audioErr)
			os.Exit(1)
		}
		defer audio.Close()
		in = audio
	case inName == "-":
		in = bufio.NewReader(os.Stdin)
	default:
		var fin, finErr = os.Open(inName)
		if finErr != nil {
			log_error("Error opening input raw speech sample file: %s: %s", inName, finErr)
			os.Exit(1)
		}
		defer fin.Close()
		in = bufio.NewReader(fin)
	}

	var out io.Writer
	if outName == "-" {
		out = bufio.NewWriter(os.Stdout)
	} else {
		var fout, foutErr = os.Create(outName)
		if foutErr != nil {
			log_error("Error opening output modem sample file: %s: %s", outName, foutErr)
			os.Exit(1)
		}
		defer fout.Close()

		var buffered = bufio.NewWriter(fout)
		defer buffered.Flush()
		out = buffered
	}

	/* OK main loop */

	var frames, runErr = sched.Run(in, out)
	if runErr != nil {
		log_error("Transmit stopped after %d frames: %s", frames, runErr)
		os.Exit(1)
	}

	if err := modem.Close(); err != nil {
		log_error("Error closing modem: %s", err)
		os.Exit(1)
	}

	log_info("Sent %d frames: %d voice, %d data", frames, sched.VoiceFrames(), sched.DataFrames())

	if source.violations > 0 {
		log_error("%d received packets in a transmit only session", source.violations)
		os.Exit(1)
	}
}

/* Mount Everest.  Hard to mistake for a real station position. */

var default_position = s2.LatLng{
	Lat: s1.Angle(27.987850 * math.Pi / 180),
	Lng: s1.Angle(86.925026 * math.Pi / 180),
}

func parse_position(latlon string, utm string) (s2.LatLng, error) {
	if latlon != "" && utm != "" {
		return s2.LatLng{}, fmt.Errorf("give either --position or --position-utm, not both")
	}

	if latlon != "" {
		var parts = strings.SplitN(latlon, ",", 2)
		if len(parts) != 2 {
			return s2.LatLng{}, fmt.Errorf("expected 'lat,lon', not %q", latlon)
		}

		var lat, latErr = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		var lon, lonErr = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if latErr != nil || lonErr != nil {
			return s2.LatLng{}, fmt.Errorf("expected decimal degrees 'lat,lon', not %q", latlon)
		}

		return s2.LatLng{Lat: s1.Angle(lat * math.Pi / 180), Lng: s1.Angle(lon * math.Pi / 180)}, nil
	}

	if utm != "" {
		return parse_position_utm(utm)
	}

	return default_position, nil
}

func parse_position_utm(utm string) (s2.LatLng, error) {
	var fields = strings.Fields(utm)
	if len(fields) != 3 {
		return s2.LatLng{}, fmt.Errorf("expected 'zone[band] easting northing', not %q", utm)
	}

	var zoneStr = fields[0]
	var hemisphere = coordconv.HemisphereNorth

	var last = zoneStr[len(zoneStr)-1]
	if last >= 'A' && last <= 'Z' {
		if !strings.ContainsRune("CDEFGHJKLMNPQRSTUVWX", rune(last)) {
			return s2.LatLng{}, fmt.Errorf("latitudinal band must be one of CDEFGHJKLMNPQRSTUVWX")
		}
		if last < 'N' {
			hemisphere = coordconv.HemisphereSouth
		}
		zoneStr = zoneStr[:len(zoneStr)-1]
	}

	var zone, zoneErr = strconv.Atoi(zoneStr)
	if zoneErr != nil {
		return s2.LatLng{}, fmt.Errorf("bad UTM zone %q", fields[0])
	}

	var easting, eastErr = strconv.ParseFloat(fields[1], 64)
	var northing, northErr = strconv.ParseFloat(fields[2], 64)
	if eastErr != nil || northErr != nil {
		return s2.LatLng{}, fmt.Errorf("bad UTM easting/northing in %q", utm)
	}

	return coordconv.DefaultUTMConverter.ConvertToGeodetic(coordconv.UTMCoord{
		Zone:       zone,
		Hemisphere: hemisphere,
		Easting:    easting,
		Northing:   northing,
	})
}
