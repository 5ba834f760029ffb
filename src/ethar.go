package laika

/*------------------------------------------------------------------
 *
 * Name:	ethar
 *
 * Purpose:	Encoding an ITU callsign (and 4 bit secondary station ID)
 *		to a valid MAC address, and back again.
 *
 *		http://dmlinking.net/eth_ar.html
 *
 * Description:	The callsign is treated as a base 37 number, up to 8
 *		characters, position 7 being the most significant digit.
 *		Positions past the end of the callsign map to the pad
 *		symbol (digit value 36).  The resulting value occupies
 *		the low 40 bits of the address plus the top two bits of
 *		byte 0.  The rest of byte 0:
 *
 *			bit 1	locally administered, always 1
 *			bit 0	multicast flag
 *			bits 2-5	SSID (0-15)
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strings"
)

/* Lookup table for valid callsign characters. */

var alnum2code = []byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J',
	'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T',
	'U', 'V', 'W', 'X', 'Y', 'Z', 0}

/*------------------------------------------------------------------
 *
 * Name:	eth_ar_call2mac
 *
 * Purpose:	Encode a callsign and SSID into a valid MAC address.
 *
 * Inputs:	callsign	- Up to 8 characters, 0-9 A-Z.
 *				  Lower case is folded to upper.
 *
 *		ssid		- Secondary station ID, 0-15.
 *
 *		multicast	- Sets the multicast bit of the address.
 *
 * Returns:	The 6 byte address, or an error for an out of range
 *		SSID or a character outside the base 37 alphabet.
 *
 *---------------------------------------------------------------*/

func eth_ar_call2mac(callsign string, ssid int, multicast bool) ([6]byte, error) {
	var mac [6]byte

	if ssid > 15 || ssid < 0 {
		return mac, fmt.Errorf("SSID must be 0-15, not %d", ssid)
	}

	var add uint64
	var folded = strings.ToUpper(callsign)

	for i := 7; i >= 0; i-- {
		var c byte
		if i < len(folded) {
			c = folded[i]
		}

		var j int
		for j = 0; j < len(alnum2code); j++ {
			if alnum2code[j] == c {
				break
			}
		}
		if j == len(alnum2code) {
			return mac, fmt.Errorf("callsign %q contains %q which is not in 0-9 A-Z", callsign, rune(c))
		}

		add *= 37
		add += uint64(j)
	}

	var mcast byte
	if multicast {
		mcast = 1
	}

	mac[0] = byte((add>>(40-6))&0xc0) | byte(ssid<<2) | 0x02 | mcast
	mac[1] = byte(add >> 32)
	mac[2] = byte(add >> 24)
	mac[3] = byte(add >> 16)
	mac[4] = byte(add >> 8)
	mac[5] = byte(add)

	return mac, nil
}

/*------------------------------------------------------------------
 *
 * Name:	eth_ar_mac2call
 *
 * Purpose:	Decode an eth_ar MAC address back into callsign, SSID
 *		and multicast flag.  Mostly useful for logging what we
 *		registered with the modem.
 *
 *---------------------------------------------------------------*/

func eth_ar_mac2call(mac [6]byte) (string, int, bool) {
	var multicast = mac[0]&0x01 != 0
	var ssid = int(mac[0]>>2) & 0x0f

	var add = uint64(mac[0]&0xc0) << (40 - 6)
	add |= uint64(mac[1]) << 32
	add |= uint64(mac[2]) << 24
	add |= uint64(mac[3]) << 16
	add |= uint64(mac[4]) << 8
	add |= uint64(mac[5])

	var call []byte
	for range 8 {
		var c = alnum2code[add%37]
		add /= 37

		if c == 0 {
			break
		}
		call = append(call, c)
	}

	return string(call), ssid, multicast
}
