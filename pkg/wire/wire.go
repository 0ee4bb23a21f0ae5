package wire

import "encoding/binary"

// Encodable is implemented by records that know their exact encoded size
// and can write themselves into a caller-supplied buffer.
//
// EncodedSize must equal the byte count EncodeTo actually writes; the
// framing layer treats a mismatch as a defect and reports it as an error.
// EncodeTo may leave partial output in buf when it fails part-way.
type Encodable interface {
	EncodedSize() int
	EncodeTo(buf []byte, order binary.ByteOrder) (int, error)
}

// Decodable is implemented by records that can populate themselves from a
// buffer, reporting exactly how many bytes were consumed so callers can
// advance a cursor over concatenated data.
type Decodable interface {
	DecodeFrom(buf []byte, order binary.ByteOrder) (int, error)
}

// DecodablePtr constrains a pointer type *T to Decodable, letting the
// batch and parallel helpers allocate values generically.
type DecodablePtr[T any] interface {
	*T
	Decodable
}
