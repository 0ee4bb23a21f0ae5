package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Fixed-width field sizes.
const (
	Float64Size = 8
	BoolSize    = 1
)

// Unsigned integers are varint-encoded and therefore byte-order
// independent; only the fixed-width primitives take a byte order.

// SizeUint64 returns the varint-encoded size of v: ceil(bits-used/7),
// minimum 1.
func SizeUint64(v uint64) int {
	return uvarintSize(v)
}

// PutUint64 varint-encodes v into buf and returns the bytes written.
func PutUint64(buf []byte, v uint64) (int, error) {
	return putUvarint(buf, v)
}

// Uint64 decodes a varint from the front of buf, returning the value and
// the bytes consumed.
func Uint64(buf []byte) (uint64, int, error) {
	return uvarint(buf)
}

func SizeUint32(v uint32) int {
	return uvarintSize(uint64(v))
}

func PutUint32(buf []byte, v uint32) (int, error) {
	return putUvarint(buf, uint64(v))
}

func Uint32(buf []byte) (uint32, int, error) {
	v, n, err := uvarint(buf)
	if err != nil {
		return 0, 0, err
	}
	if v > math.MaxUint32 {
		return 0, 0, invalidDataf("varint value %d exceeds uint32 range", v)
	}
	return uint32(v), n, nil
}

// Signed integers go through the zig-zag transform before varint encoding.

func SizeInt64(v int64) int {
	return uvarintSize(zigzag64(v))
}

func PutInt64(buf []byte, v int64) (int, error) {
	return putUvarint(buf, zigzag64(v))
}

func Int64(buf []byte) (int64, int, error) {
	u, n, err := uvarint(buf)
	if err != nil {
		return 0, 0, err
	}
	return unzigzag64(u), n, nil
}

func SizeInt32(v int32) int {
	return uvarintSize(uint64(zigzag32(v)))
}

func PutInt32(buf []byte, v int32) (int, error) {
	return putUvarint(buf, uint64(zigzag32(v)))
}

func Int32(buf []byte) (int32, int, error) {
	u, n, err := uvarint(buf)
	if err != nil {
		return 0, 0, err
	}
	if u > math.MaxUint32 {
		return 0, 0, invalidDataf("varint value %d exceeds int32 range", u)
	}
	return unzigzag32(uint32(u)), n, nil
}

// PutFloat64 writes the IEEE 754 bits of v as 8 bytes in the given order.
func PutFloat64(buf []byte, v float64, order binary.ByteOrder) (int, error) {
	if len(buf) < Float64Size {
		return 0, ErrBufferTooSmall
	}
	order.PutUint64(buf[:Float64Size], math.Float64bits(v))
	return Float64Size, nil
}

func Float64(buf []byte, order binary.ByteOrder) (float64, int, error) {
	if len(buf) < Float64Size {
		return 0, 0, invalidDataf("need %d bytes for float64, have %d", Float64Size, len(buf))
	}
	return math.Float64frombits(order.Uint64(buf[:Float64Size])), Float64Size, nil
}

// PutBool writes a single byte, strictly 0 or 1.
func PutBool(buf []byte, v bool) (int, error) {
	if len(buf) < BoolSize {
		return 0, ErrBufferTooSmall
	}
	if v {
		buf[0] = 1
	} else {
		buf[0] = 0
	}
	return BoolSize, nil
}

func Bool(buf []byte) (bool, int, error) {
	if len(buf) < BoolSize {
		return false, 0, invalidDataf("empty buffer when expecting bool")
	}
	switch buf[0] {
	case 0:
		return false, BoolSize, nil
	case 1:
		return true, BoolSize, nil
	default:
		return false, 0, invalidDataf("invalid bool byte 0x%02x", buf[0])
	}
}

// Byte sequences are length-prefixed: a varint byte count followed by the
// raw bytes.

func SizeBytes(b []byte) int {
	return uvarintSize(uint64(len(b))) + len(b)
}

func PutBytes(buf, b []byte) (int, error) {
	if len(buf) < SizeBytes(b) {
		return 0, ErrBufferTooSmall
	}
	n, err := putUvarint(buf, uint64(len(b)))
	if err != nil {
		return 0, err
	}
	copy(buf[n:], b)
	return n + len(b), nil
}

// Bytes decodes a length-prefixed byte sequence, copying it out of buf.
func Bytes(buf []byte) ([]byte, int, error) {
	length, n, err := uvarint(buf)
	if err != nil {
		return nil, 0, err
	}
	if length > uint64(math.MaxInt-n) {
		return nil, 0, ErrOverflow
	}
	total := n + int(length)
	if len(buf) < total {
		return nil, 0, invalidDataf("declared length %d exceeds remaining %d bytes", length, len(buf)-n)
	}
	out := make([]byte, length)
	copy(out, buf[n:total])
	return out, total, nil
}

// UTF-8 text uses the same length-prefixed layout, validated on decode.

func SizeString(s string) int {
	return uvarintSize(uint64(len(s))) + len(s)
}

func PutString(buf []byte, s string) (int, error) {
	if len(buf) < SizeString(s) {
		return 0, ErrBufferTooSmall
	}
	n, err := putUvarint(buf, uint64(len(s)))
	if err != nil {
		return 0, err
	}
	copy(buf[n:], s)
	return n + len(s), nil
}

func String(buf []byte) (string, int, error) {
	length, n, err := uvarint(buf)
	if err != nil {
		return "", 0, err
	}
	if length > uint64(math.MaxInt-n) {
		return "", 0, ErrOverflow
	}
	total := n + int(length)
	if len(buf) < total {
		return "", 0, invalidDataf("declared length %d exceeds remaining %d bytes", length, len(buf)-n)
	}
	raw := buf[n:total]
	if !utf8.Valid(raw) {
		return "", 0, invalidDataf("string field is not valid UTF-8")
	}
	return string(raw), total, nil
}
