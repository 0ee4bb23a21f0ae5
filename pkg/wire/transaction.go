package wire

import (
	"bytes"
	"encoding/binary"
)

// Transaction is a single transfer record. It is a value type: the codec
// never mutates or retains one beyond the duration of a call.
//
// Encoded field order: ID, Amount, Fee, Version (raw byte), Sender,
// Recipient, Signature.
type Transaction struct {
	ID        uint64  `json:"id"`
	Amount    uint64  `json:"amount"`
	Fee       float64 `json:"fee"`
	Version   uint8   `json:"version"`
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Signature []byte  `json:"signature"`
}

// EncodedSize returns the exact number of bytes EncodeTo will write.
func (tx *Transaction) EncodedSize() int {
	return SizeUint64(tx.ID) +
		SizeUint64(tx.Amount) +
		Float64Size +
		1 + // version
		SizeString(tx.Sender) +
		SizeString(tx.Recipient) +
		SizeBytes(tx.Signature)
}

// EncodeTo writes the transaction into buf, failing with
// ErrBufferTooSmall as soon as any field would overflow the destination.
// Fields already written stay in buf.
func (tx *Transaction) EncodeTo(buf []byte, order binary.ByteOrder) (int, error) {
	off := 0
	n, err := PutUint64(buf[off:], tx.ID)
	if err != nil {
		return 0, err
	}
	off += n
	if n, err = PutUint64(buf[off:], tx.Amount); err != nil {
		return 0, err
	}
	off += n
	if n, err = PutFloat64(buf[off:], tx.Fee, order); err != nil {
		return 0, err
	}
	off += n
	if off >= len(buf) {
		return 0, ErrBufferTooSmall
	}
	buf[off] = tx.Version
	off++
	if n, err = PutString(buf[off:], tx.Sender); err != nil {
		return 0, err
	}
	off += n
	if n, err = PutString(buf[off:], tx.Recipient); err != nil {
		return 0, err
	}
	off += n
	if n, err = PutBytes(buf[off:], tx.Signature); err != nil {
		return 0, err
	}
	off += n
	return off, nil
}

// DecodeFrom populates the transaction from buf, returning the bytes
// consumed. It fails on the first field that cannot be decoded.
func (tx *Transaction) DecodeFrom(buf []byte, order binary.ByteOrder) (int, error) {
	off := 0
	id, n, err := Uint64(buf[off:])
	if err != nil {
		return 0, err
	}
	off += n
	amount, n, err := Uint64(buf[off:])
	if err != nil {
		return 0, err
	}
	off += n
	fee, n, err := Float64(buf[off:], order)
	if err != nil {
		return 0, err
	}
	off += n
	if off >= len(buf) {
		return 0, invalidDataf("missing version byte")
	}
	version := buf[off]
	off++
	sender, n, err := String(buf[off:])
	if err != nil {
		return 0, err
	}
	off += n
	recipient, n, err := String(buf[off:])
	if err != nil {
		return 0, err
	}
	off += n
	signature, n, err := Bytes(buf[off:])
	if err != nil {
		return 0, err
	}
	off += n

	tx.ID = id
	tx.Amount = amount
	tx.Fee = fee
	tx.Version = version
	tx.Sender = sender
	tx.Recipient = recipient
	tx.Signature = signature
	return off, nil
}

// Equal reports structural field-by-field equality.
func (tx *Transaction) Equal(other *Transaction) bool {
	return tx.ID == other.ID &&
		tx.Amount == other.Amount &&
		tx.Fee == other.Fee &&
		tx.Version == other.Version &&
		tx.Sender == other.Sender &&
		tx.Recipient == other.Recipient &&
		bytes.Equal(tx.Signature, other.Signature)
}
