package laika

/*------------------------------------------------------------------
 *
 * Name:	datasrc
 *
 * Purpose:	Supply data packets to the modem on demand.
 *
 * Description:	When the scheduler decides a frame carries data rather
 *		than speech, the modem asks its PacketSource for the
 *		next outbound packet.  A size of zero tells the modem
 *		to insert its own identification header frame instead.
 *
 *		The source is an interface rather than a callback pair,
 *		and the packet cycle counter lives on the instance, so
 *		independent sessions can't bleed into each other.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// PacketSource supplies outbound data packets to a Modem.
type PacketSource interface {
	// DataReq fills packet with the next outbound packet and returns its
	// size.  0 means no payload: the modem inserts its own header frame,
	// which is useful for identifying ourselves.
	DataReq(packet []byte) int

	// DataRx is called when a packet has been received.  This is a
	// transmit only core, so implementations report it as a protocol
	// violation rather than ignoring it.
	DataRx(packet []byte)
}

/* Ethertypes used by the demo packets. */

const (
	ETHERTYPE_EXPERIMENTAL = 0x0101 /* test pattern */
	ETHERTYPE_FPRS         = 0x7370
)

// demoSource cycles through a small fixed repertoire of packet kinds:
// a counting test pattern, an FPRS position report, and (twice per
// cycle) the zero size sentinel.  Data could come from a network
// interface; here we just make it up.
type demoSource struct {
	calls    int
	mac      [6]byte
	position s2.LatLng

	// Incremented when DataRx is wrongly invoked; the CLI checks this at
	// end of session.
	violations int
}

func newDemoSource(mac [6]byte, position s2.LatLng) *demoSource {
	return &demoSource{mac: mac, position: position}
}

/* 14 byte Ethernet style header: dst, src, ethertype. */

func (d *demoSource) fillHeader(packet []byte, ethertype uint16) {
	for i := range 6 {
		packet[i] = 0xff /* Destination: broadcast */
	}
	copy(packet[6:12], d.mac[:]) /* Source: our eth_ar encoded callsign+ssid */
	packet[12] = byte(ethertype >> 8)
	packet[13] = byte(ethertype)
}

func (d *demoSource) DataReq(packet []byte) int {
	var cycle = d.calls % 4
	d.calls++

	switch cycle {
	case 1:
		/* A packet with a simple counting test pattern. */
		if len(packet) < 14+64 {
			panic(fmt.Sprintf("modem offered %d byte packet buffer, need %d", len(packet), 14+64))
		}

		d.fillHeader(packet, ETHERTYPE_EXPERIMENTAL)
		for i := range 64 {
			packet[14+i] = byte(i)
		}

		return 14 + 64

	case 2:
		/* An FPRS position report. */
		if len(packet) < 22 {
			panic(fmt.Sprintf("modem offered %d byte packet buffer, need %d", len(packet), 22))
		}

		d.fillHeader(packet, ETHERTYPE_FPRS)

		var element = fprs_position_enc(d.position)
		copy(packet[14:22], element[:])

		return 22

	default:
		/* Zero size - the modem will insert a header frame. */
		return 0
	}
}

func (d *demoSource) DataRx(packet []byte) {
	/* This should not happen while sending... */
	d.violations++
	log_error("DataRx callback called with a %d byte packet, this should not happen!", len(packet))
}
