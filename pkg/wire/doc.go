// Package wire implements the Chainwire binary codec: primitive scalar
// encodings, the transaction and block record formats, and the framed
// envelopes that carry them with integrity checking.
//
// # Primitive Encodings
//
// Unsigned integers use base-128 varints (7 value bits plus a
// continuation flag per byte); signed integers pass through a zig-zag
// transform first so small-magnitude negatives stay compact. Floats are
// fixed 8-byte IEEE 754, booleans a strict 0/1 byte, and byte sequences
// and UTF-8 text are varint-length-prefixed. Fixed-width fields honor a
// caller-selected binary.ByteOrder; varints are byte-order independent.
//
// # Record Formats
//
// Transaction fields encode in declared order:
//
//	[id varint][amount varint][fee f64][version u8][sender str][recipient str][signature bytes]
//
// Block:
//
//	[version u8][number varint][prev-hash bytes][tx count varint][tx 0][tx 1]...
//
// # Frames
//
// The general envelope wraps one encoded record with a length prefix and
// a BLAKE3 content digest:
//
//	[length u32][payload][digest (32 bytes)]     length = len(payload) + 32
//
// Deserialize enforces exact buffer size, recomputes the digest, and
// requires decoding to consume the whole payload. The ultra frame is an
// alternate constant 121-byte transaction layout with no prefix and no
// digest, for callers whose own framing supplies delivery integrity:
//
//	[id(8)][amount(8)][fee(8)][version(1)][sender(16)][recipient(16)][sig(64)]
//
// The batch envelope concatenates many record payloads under a single
// digest. ParallelDeserialize decodes many independent general-envelope
// frames with a chunked, order-preserving fork-join map.
//
// # Error Handling
//
// Failures form a closed set: ErrBufferTooSmall, ErrOverflow,
// *InvalidDataError (structural violations), *ChecksumError (carrying
// both digests), and *IOError. Decoding never panics, including on
// truncated, oversized, or otherwise adversarial input.
package wire
