package laika

/*------------------------------------------------------------------
 *
 * Name:	fdv_data
 *
 * Purpose:	The data side of the voice/data multiplex.
 *
 * Description:	Data packets are usually bigger than one frame's
 *		payload budget, so they are drained a chunk at a time
 *		across consecutive data frames.  Each data frame
 *		payload is:
 *
 *			byte 0		number of packet bytes present
 *			bytes 1..n	packet bytes
 *			rest		zero fill
 *
 *		When the current packet runs out the registered
 *		PacketSource is asked for another.  A zero size answer
 *		is the "identify yourself" sentinel: the modem makes up
 *		a header frame from the registered station address
 *		instead of user payload.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
)

/* Ethertype of the synthesized identification header frame. */
const ETHERTYPE_ETH_AR_HEADER = 0x7346

/*------------------------------------------------------------------
 *
 * Name:	DataTX
 *
 * Purpose:	Modulate one frame of data, pulling packets from the
 *		PacketSource as needed.
 *
 *---------------------------------------------------------------*/

func (f *fdv) DataTX(modOut []int16) {
	if f.src == nil {
		panic("DataTX without a registered PacketSource")
	}

	var payloadBytes = f.profile.PayloadBits / 8
	var payload = make([]byte, payloadBytes)

	if f.poff >= len(f.pending) {
		f.nextPacket()
	}

	var n = copy(payload[1:], f.pending[f.poff:])
	payload[0] = byte(n)
	f.poff += n

	f.modulate(modOut, payload)
}

func (f *fdv) nextPacket() {
	var buf = make([]byte, FDV_PAYLOAD_SIZE)

	var size = f.src.DataReq(buf)
	if size < 0 || size > len(buf) {
		panic(fmt.Sprintf("PacketSource returned size %d for a %d byte buffer", size, len(buf)))
	}

	if size == 0 {
		/* Sentinel: send our identification header frame instead. */
		buf = f.headerFrame()
		size = len(buf)
	}

	f.pending = buf[:size]
	f.poff = 0
}

/* Broadcast destination, our address as source, no payload. */

func (f *fdv) headerFrame() []byte {
	if !f.haveHeader {
		panic("data header frame requested before SetDataHeader")
	}

	var frame = make([]byte, 14)
	for i := range 6 {
		frame[i] = 0xff
	}
	copy(frame[6:12], f.header[:])
	frame[12] = byte(ETHERTYPE_ETH_AR_HEADER >> 8)
	frame[13] = byte(ETHERTYPE_ETH_AR_HEADER & 0xff)

	return frame
}
