package wire

import (
	"bytes"
	"encoding/binary"
)

// Block is an ordered sequence of transactions under a header. Insertion
// order of Transactions is significant and preserved through a round trip.
//
// Encoded field order: Version (raw byte), Number, PrevHash
// (length-prefixed), transaction count (varint), then each transaction.
type Block struct {
	Version      uint8         `json:"version"`
	Number       uint64        `json:"number"`
	PrevHash     []byte        `json:"prev_hash"`
	Transactions []Transaction `json:"transactions"`
}

func (b *Block) EncodedSize() int {
	size := 1 + // version
		SizeUint64(b.Number) +
		SizeBytes(b.PrevHash) +
		uvarintSize(uint64(len(b.Transactions)))
	for i := range b.Transactions {
		size += b.Transactions[i].EncodedSize()
	}
	return size
}

func (b *Block) EncodeTo(buf []byte, order binary.ByteOrder) (int, error) {
	if len(buf) == 0 {
		return 0, ErrBufferTooSmall
	}
	buf[0] = b.Version
	off := 1
	n, err := PutUint64(buf[off:], b.Number)
	if err != nil {
		return 0, err
	}
	off += n
	if n, err = PutBytes(buf[off:], b.PrevHash); err != nil {
		return 0, err
	}
	off += n
	if n, err = putUvarint(buf[off:], uint64(len(b.Transactions))); err != nil {
		return 0, err
	}
	off += n
	for i := range b.Transactions {
		if n, err = b.Transactions[i].EncodeTo(buf[off:], order); err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}

func (b *Block) DecodeFrom(buf []byte, order binary.ByteOrder) (int, error) {
	if len(buf) == 0 {
		return 0, invalidDataf("empty buffer for block")
	}
	version := buf[0]
	off := 1
	number, n, err := Uint64(buf[off:])
	if err != nil {
		return 0, err
	}
	off += n
	prevHash, n, err := Bytes(buf[off:])
	if err != nil {
		return 0, err
	}
	off += n
	count, n, err := uvarint(buf[off:])
	if err != nil {
		return 0, err
	}
	off += n
	// A declared count can never exceed one transaction per remaining
	// byte; reject early instead of over-allocating on corrupt input.
	if count > uint64(len(buf)-off) {
		return 0, invalidDataf("declared %d transactions in %d remaining bytes", count, len(buf)-off)
	}
	txs := make([]Transaction, 0, count)
	for i := uint64(0); i < count; i++ {
		var tx Transaction
		if n, err = tx.DecodeFrom(buf[off:], order); err != nil {
			return 0, err
		}
		off += n
		txs = append(txs, tx)
	}

	b.Version = version
	b.Number = number
	b.PrevHash = prevHash
	b.Transactions = txs
	return off, nil
}

// Equal reports structural equality, including transaction order.
func (b *Block) Equal(other *Block) bool {
	if b.Version != other.Version || b.Number != other.Number {
		return false
	}
	if !bytes.Equal(b.PrevHash, other.PrevHash) {
		return false
	}
	if len(b.Transactions) != len(other.Transactions) {
		return false
	}
	for i := range b.Transactions {
		if !b.Transactions[i].Equal(&other.Transactions[i]) {
			return false
		}
	}
	return true
}
