package wire

import (
	"bytes"
	"encoding/binary"
	"math"

	"lukechampine.com/blake3"
)

const (
	// PrefixSize is the width of the frame length prefix.
	PrefixSize = 4

	// ChecksumSize is the width of the BLAKE3 digest trailing every
	// checksummed frame.
	ChecksumSize = 32
)

// Checksum returns the 256-bit content digest used by the frame and batch
// envelopes. It is deterministic and unkeyed.
func Checksum(payload []byte) [ChecksumSize]byte {
	return blake3.Sum256(payload)
}

// Serialize wraps one record in a self-describing envelope:
//
//	[length: u32][payload][BLAKE3 digest (32 bytes)]
//
// where length = len(payload) + 32, written in the given byte order. The
// returned buffer is allocated once at exactly the required size.
func Serialize(e Encodable, order binary.ByteOrder) ([]byte, error) {
	payloadSize := e.EncodedSize()
	if payloadSize < 0 || uint64(payloadSize) > math.MaxUint32-ChecksumSize {
		return nil, ErrOverflow
	}
	buf := make([]byte, PrefixSize+payloadSize+ChecksumSize)
	n, err := e.EncodeTo(buf[PrefixSize:PrefixSize+payloadSize], order)
	if err != nil {
		return nil, err
	}
	if n != payloadSize {
		return nil, invalidDataf("encoded %d bytes, EncodedSize promised %d", n, payloadSize)
	}
	sum := Checksum(buf[PrefixSize : PrefixSize+payloadSize])
	copy(buf[PrefixSize+payloadSize:], sum[:])
	order.PutUint32(buf[:PrefixSize], uint32(payloadSize+ChecksumSize))
	return buf, nil
}

// Deserialize verifies and decodes a single envelope produced by
// Serialize. The buffer must be exactly the size the prefix declares; a
// digest mismatch is returned as a *ChecksumError carrying both digests,
// and any payload bytes left over after decoding are a structural error.
func Deserialize(buf []byte, order binary.ByteOrder, dst Decodable) error {
	payload, err := verifyFrame(buf, order)
	if err != nil {
		return err
	}
	n, err := dst.DecodeFrom(payload, order)
	if err != nil {
		return err
	}
	if n != len(payload) {
		return invalidDataf("%d trailing bytes in payload after decode", len(payload)-n)
	}
	return nil
}

// verifyFrame checks the length prefix and digest, returning the payload
// region of buf (no copy).
func verifyFrame(buf []byte, order binary.ByteOrder) ([]byte, error) {
	if len(buf) < PrefixSize {
		return nil, invalidDataf("buffer too small for length prefix")
	}
	length := int(order.Uint32(buf[:PrefixSize]))
	if len(buf) != PrefixSize+length {
		return nil, invalidDataf("length prefix %d does not match buffer size %d", length, len(buf))
	}
	if length < ChecksumSize {
		return nil, invalidDataf("declared length %d cannot contain a checksum", length)
	}
	payloadEnd := PrefixSize + length - ChecksumSize
	payload := buf[PrefixSize:payloadEnd]
	stored := buf[payloadEnd:]
	computed := Checksum(payload)
	if !bytes.Equal(stored, computed[:]) {
		return nil, &ChecksumError{
			Stored:   append([]byte(nil), stored...),
			Computed: computed[:],
		}
	}
	return payload, nil
}
