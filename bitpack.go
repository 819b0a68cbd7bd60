//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package asterix

import (
	"strconv"
	"strings"
)

// ReverseBits8 mirrors the bit order of an 8-bit value (bit0 <-> bit7, ...)
func ReverseBits8(value int) (out byte, err error) {
	if value < 0 || value > 0xff {
		err = &BitPackingError{Value: value, Reason: "value does not fit in 8 bits"}
		return
	}

	in := byte(value)
	for n := 0; n < 8; n++ {
		out <<= 1
		out |= in & 1
		in >>= 1
	}

	return
}

// BitsToBytes packs a list of bits into bytes.
//
// Each group of 8 bits is assembled least significant bit first, then
// bit reversed, so the first bit of a group ends up as the MSB of its byte.
// This matches the wiring of the valve drivers.
func BitsToBytes(bits []uint8) (data []byte, err error) {
	if len(bits)%8 != 0 {
		err = &BitPackingError{Value: len(bits), Reason: "bit count is not a multiple of 8"}
		return
	}

	data = make([]byte, len(bits)/8)
	for n := range data {
		val := 0
		for j, bit := range bits[n*8 : n*8+8] {
			if bit != 0 {
				val |= 1 << j
			}
		}

		data[n], err = ReverseBits8(val)
		if err != nil {
			return
		}
	}

	return
}

// PackRow zero pads a valve sample to the wire arity, and packs it.
func PackRow(sample []uint8, arity int) (data []byte, err error) {
	if len(sample) > arity*8 {
		err = &BitPackingError{Value: len(sample), Reason: "sample wider than valve arity"}
		return
	}

	bits := make([]uint8, arity*8)
	copy(bits, sample)

	data, err = BitsToBytes(bits)

	return
}

// ValveCommand formats a VALVES_SET command
func ValveCommand(values []byte) string {
	var sb strings.Builder

	sb.WriteString("VALVES_SET VALUES=")
	for n, v := range values {
		if n > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(v)))
	}

	return sb.String()
}
