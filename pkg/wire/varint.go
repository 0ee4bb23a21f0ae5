package wire

// Varints are base-128: each byte carries 7 value bits, the high bit is a
// continuation flag. Encoding stops at the first byte whose flag is 0, so
// the representation is byte-order independent.

func uvarintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

func putUvarint(buf []byte, v uint64) (int, error) {
	i := 0
	for {
		if i >= len(buf) {
			return 0, ErrBufferTooSmall
		}
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			buf[i] = b
			return i + 1, nil
		}
		buf[i] = b | 0x80
		i++
	}
}

func uvarint(buf []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i, b := range buf {
		if shift >= 64 {
			return 0, 0, invalidDataf("varint overflow")
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, invalidDataf("buffer ended before varint terminator")
}

// Zig-zag maps signed integers onto unsigned ones so that small-magnitude
// negative values stay short under varint encoding. The forward direction
// relies on the arithmetic (sign-extending) right shift.

func zigzag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func unzigzag64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

func zigzag32(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

func unzigzag32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}
