package wire

import (
	"encoding/binary"
	"math"
)

// SerializeBatch encodes every item into one envelope with a single
// digest over the whole concatenated payload:
//
//	[total length: u32][payload 0 | payload 1 | ...][BLAKE3 digest (32 bytes)]
//
// This trades per-item integrity for throughput: one flipped bit anywhere
// invalidates the entire batch. The format carries no per-item
// delimiters; each record only re-describes its own length while being
// decoded, so a consumer must walk the payload cursor-wise (see
// DeserializeBatchPayload) or already know the boundaries.
func SerializeBatch[T Encodable](items []T, order binary.ByteOrder) ([]byte, error) {
	totalPayload := 0
	for _, item := range items {
		size := item.EncodedSize()
		if size < 0 || totalPayload > math.MaxInt-size {
			return nil, ErrOverflow
		}
		totalPayload += size
	}
	if uint64(totalPayload) > math.MaxUint32-ChecksumSize {
		return nil, ErrOverflow
	}

	payload := make([]byte, 0, totalPayload)
	for _, item := range items {
		// Each item gets a temporary buffer sized exactly to it so a
		// size/write mismatch is caught per item, not at the end.
		tmp := make([]byte, item.EncodedSize())
		n, err := item.EncodeTo(tmp, order)
		if err != nil {
			return nil, err
		}
		if n != len(tmp) {
			return nil, invalidDataf("encoded %d bytes, EncodedSize promised %d", n, len(tmp))
		}
		payload = append(payload, tmp[:n]...)
	}

	sum := Checksum(payload)
	out := make([]byte, 0, PrefixSize+totalPayload+ChecksumSize)
	var prefix [PrefixSize]byte
	order.PutUint32(prefix[:], uint32(totalPayload+ChecksumSize))
	out = append(out, prefix[:]...)
	out = append(out, payload...)
	out = append(out, sum[:]...)
	return out, nil
}

// VerifyBatch checks a batch envelope's length prefix and digest and
// returns the payload region (a view into buf, no copy).
func VerifyBatch(buf []byte, order binary.ByteOrder) ([]byte, error) {
	return verifyFrame(buf, order)
}

// DeserializeBatchPayload decodes consecutive records from a verified
// batch payload until it is exhausted. The whole payload must be
// consumed; a record that fails to decode fails the call.
func DeserializeBatchPayload[T any, P DecodablePtr[T]](payload []byte, order binary.ByteOrder) ([]T, error) {
	var out []T
	off := 0
	for off < len(payload) {
		var v T
		n, err := P(&v).DecodeFrom(payload[off:], order)
		if err != nil {
			return nil, err
		}
		off += n
		out = append(out, v)
	}
	return out, nil
}

// DeserializeBatch verifies a batch envelope and decodes every record in
// it, in order.
func DeserializeBatch[T any, P DecodablePtr[T]](buf []byte, order binary.ByteOrder) ([]T, error) {
	payload, err := VerifyBatch(buf, order)
	if err != nil {
		return nil, err
	}
	return DeserializeBatchPayload[T, P](payload, order)
}
