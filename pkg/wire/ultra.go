package wire

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Ultra frame: a constant-size, checksum-free transaction encoding for
// callers that need predictable latency and supply delivery integrity
// through their own framing.
//
//	id(8) amount(8) fee(8) version(1) sender(16) recipient(16) sig(64)
//
// Sender and recipient are zero-padded UTF-8, silently truncated at 16
// bytes; the signature is zero-padded or truncated at 64.
const (
	UltraSize = 121

	ultraNameSize = 16
	ultraSigSize  = 64
)

// SerializeUltra encodes tx into a fresh fixed-size array.
func SerializeUltra(tx *Transaction, order binary.ByteOrder) ([UltraSize]byte, error) {
	var buf [UltraSize]byte
	err := PutUltra(buf[:], tx, order)
	return buf, err
}

// PutUltra encodes tx into a caller-owned buffer of at least UltraSize
// bytes, allowing the buffer to be reused across calls without
// allocation. Exactly UltraSize bytes are written.
func PutUltra(buf []byte, tx *Transaction, order binary.ByteOrder) error {
	if len(buf) < UltraSize {
		return ErrBufferTooSmall
	}
	order.PutUint64(buf[0:8], tx.ID)
	order.PutUint64(buf[8:16], tx.Amount)
	order.PutUint64(buf[16:24], math.Float64bits(tx.Fee))
	buf[24] = tx.Version
	putFixedString(buf[25:25+ultraNameSize], tx.Sender)
	putFixedString(buf[41:41+ultraNameSize], tx.Recipient)
	putFixedBytes(buf[57:57+ultraSigSize], tx.Signature)
	return nil
}

// DeserializeUltra decodes a frame of exactly UltraSize bytes. Trailing
// zero padding is stripped from the text fields before UTF-8 validation;
// the signature keeps its full 64 bytes.
func DeserializeUltra(buf []byte, order binary.ByteOrder) (Transaction, error) {
	if len(buf) != UltraSize {
		return Transaction{}, invalidDataf("ultra frame must be exactly %d bytes, got %d", UltraSize, len(buf))
	}
	sender, err := fixedString(buf[25:25+ultraNameSize], "sender")
	if err != nil {
		return Transaction{}, err
	}
	recipient, err := fixedString(buf[41:41+ultraNameSize], "recipient")
	if err != nil {
		return Transaction{}, err
	}
	signature := make([]byte, ultraSigSize)
	copy(signature, buf[57:57+ultraSigSize])
	return Transaction{
		ID:        order.Uint64(buf[0:8]),
		Amount:    order.Uint64(buf[8:16]),
		Fee:       math.Float64frombits(order.Uint64(buf[16:24])),
		Version:   buf[24],
		Sender:    sender,
		Recipient: recipient,
		Signature: signature,
	}, nil
}

// putFixedString copies at most len(dst) bytes of s and zero-fills the
// rest; dst may hold stale bytes from a reused buffer.
func putFixedString(dst []byte, s string) {
	n := copy(dst, s)
	clear(dst[n:])
}

func putFixedBytes(dst, b []byte) {
	n := copy(dst, b)
	clear(dst[n:])
}

func fixedString(field []byte, name string) (string, error) {
	trimmed := bytes.TrimRight(field, "\x00")
	if !utf8.Valid(trimmed) {
		return "", invalidDataf("fixed %s field is not valid UTF-8", name)
	}
	return string(trimmed), nil
}
