package laika

/*------------------------------------------------------------------
 *
 * Name:	fprs
 *
 * Purpose:	FPRS position element encoding.
 *
 *		FPRS is the position reporting protocol used on the
 *		eth_ar data channel.  We only generate the position
 *		element here; framing (addresses and ethertype) is done
 *		by the packet source.
 *
 * Description:	The element is 8 bytes:
 *
 *		byte 0		0x07	position element, 7 data bytes
 *		bytes 1-7	lon and lat, 28 bits each, big endian
 *				bit stream
 *
 *		lon is folded into [0,360) and scaled by 2^28 / 360.
 *		lat is offset by +180 and scaled the same way.
 *
 *---------------------------------------------------------------*/

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const fprs_coord_bits = 28

func fprs_coord_enc(degrees float64) uint64 {
	var v = int64(math.Floor(degrees / 360 * (1 << fprs_coord_bits)))
	return uint64(v) & (1<<fprs_coord_bits - 1)
}

func fprs_position_enc(pos s2.LatLng) [8]byte {
	var lon = fprs_coord_enc(pos.Lng.Degrees())
	var lat = fprs_coord_enc(pos.Lat.Degrees() + 180)

	var bits = lon<<fprs_coord_bits | lat

	var element [8]byte
	element[0] = 0x07
	for i := range 7 {
		element[1+i] = byte(bits >> (48 - 8*i))
	}

	return element
}

/* Reverse mapping, for checking what we said we are. */

func fprs_position_dec(element [8]byte) s2.LatLng {
	var bits uint64
	for i := range 7 {
		bits = bits<<8 | uint64(element[1+i])
	}

	var lon = float64(bits>>fprs_coord_bits) * 360 / (1 << fprs_coord_bits)
	var lat = float64(bits&(1<<fprs_coord_bits-1))*360/(1<<fprs_coord_bits) - 180

	if lon > 180 {
		lon -= 360
	}

	return s2.LatLng{Lat: s1.Angle(lat * math.Pi / 180), Lng: s1.Angle(lon * math.Pi / 180)}
}
