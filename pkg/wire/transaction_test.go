package wire

import (
	"encoding/binary"
	"testing"
)

func sampleTransaction() Transaction {
	return Transaction{
		ID:        42,
		Amount:    1000,
		Fee:       0.01,
		Version:   1,
		Sender:    "Alice",
		Recipient: "Bob",
		Signature: []byte{1, 2, 3, 4},
	}
}

func TestTransaction_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
	}{
		{"basic", sampleTransaction()},
		{"zero value", Transaction{}},
		{"empty strings", Transaction{ID: 7, Amount: 9, Fee: 1.25, Version: 3}},
		{"long fields", Transaction{
			ID:        1<<63 + 5,
			Amount:    1<<21 - 1,
			Fee:       -12.75,
			Version:   255,
			Sender:    "a very long sender name that exceeds sixteen bytes",
			Recipient: "🎯 unicode recipient",
			Signature: make([]byte, 200),
		}},
	}

	for _, bo := range byteOrders {
		for _, tc := range testCases {
			t.Run(bo.name+"/"+tc.name, func(t *testing.T) {
				size := tc.tx.EncodedSize()
				buf := make([]byte, size)
				written, err := tc.tx.EncodeTo(buf, bo.order)
				if err != nil {
					t.Fatalf("EncodeTo failed: %v", err)
				}
				if written != size {
					t.Fatalf("EncodeTo wrote %d bytes, EncodedSize said %d", written, size)
				}

				var decoded Transaction
				consumed, err := decoded.DecodeFrom(buf, bo.order)
				if err != nil {
					t.Fatalf("DecodeFrom failed: %v", err)
				}
				if consumed != size {
					t.Errorf("DecodeFrom consumed %d bytes, want %d", consumed, size)
				}
				if !decoded.Equal(&tc.tx) {
					t.Errorf("round trip mismatch: got %+v, want %+v", decoded, tc.tx)
				}
			})
		}
	}
}

func TestTransaction_EncodeBufferTooSmall(t *testing.T) {
	tx := sampleTransaction()
	size := tx.EncodedSize()

	// Every destination shorter than the full size fails; nothing is
	// written past the end.
	for n := 0; n < size; n++ {
		if _, err := tx.EncodeTo(make([]byte, n), binary.LittleEndian); err == nil {
			t.Fatalf("EncodeTo succeeded into %d of %d bytes", n, size)
		}
	}
}

func TestTransaction_DecodeTruncated(t *testing.T) {
	tx := sampleTransaction()
	buf := make([]byte, tx.EncodedSize())
	if _, err := tx.EncodeTo(buf, binary.LittleEndian); err != nil {
		t.Fatal(err)
	}

	for n := 0; n < len(buf); n++ {
		var decoded Transaction
		if _, err := decoded.DecodeFrom(buf[:n], binary.LittleEndian); err == nil {
			t.Fatalf("DecodeFrom succeeded on %d of %d bytes", n, len(buf))
		}
	}
}

func TestTransaction_EndiannessMustMatch(t *testing.T) {
	tx := sampleTransaction()
	buf := make([]byte, tx.EncodedSize())
	if _, err := tx.EncodeTo(buf, binary.BigEndian); err != nil {
		t.Fatal(err)
	}

	var decoded Transaction
	// Varints decode identically either way, so this may not error, but
	// the fixed-width fee must come back wrong.
	if _, err := decoded.DecodeFrom(buf, binary.LittleEndian); err == nil {
		if decoded.Fee == tx.Fee {
			t.Error("fee decoded identically under mismatched byte orders")
		}
	}
}

func TestBlock_RoundTrip(t *testing.T) {
	block := Block{
		Version:  1,
		Number:   10,
		PrevHash: []byte{0xde, 0xad, 0xbe, 0xef},
		Transactions: []Transaction{
			{ID: 1, Amount: 500, Fee: 0.02, Version: 1, Sender: "Alice", Recipient: "Bob", Signature: []byte{1, 2, 3}},
			{ID: 2, Amount: 750, Fee: 0.03, Version: 1, Sender: "Charlie", Recipient: "Dave", Signature: []byte{4, 5, 6}},
		},
	}

	for _, bo := range byteOrders {
		t.Run(bo.name, func(t *testing.T) {
			buf := make([]byte, block.EncodedSize())
			written, err := block.EncodeTo(buf, bo.order)
			if err != nil {
				t.Fatalf("EncodeTo failed: %v", err)
			}
			if written != len(buf) {
				t.Fatalf("EncodeTo wrote %d bytes, EncodedSize said %d", written, len(buf))
			}

			var decoded Block
			consumed, err := decoded.DecodeFrom(buf, bo.order)
			if err != nil {
				t.Fatalf("DecodeFrom failed: %v", err)
			}
			if consumed != len(buf) {
				t.Errorf("DecodeFrom consumed %d bytes, want %d", consumed, len(buf))
			}
			if !decoded.Equal(&block) {
				t.Errorf("round trip mismatch: got %+v, want %+v", decoded, block)
			}
		})
	}
}

func TestBlock_TransactionOrderPreserved(t *testing.T) {
	block := Block{Version: 1, Number: 3}
	for i := uint64(0); i < 20; i++ {
		block.Transactions = append(block.Transactions, Transaction{ID: i, Sender: "s", Recipient: "r"})
	}

	buf := make([]byte, block.EncodedSize())
	if _, err := block.EncodeTo(buf, binary.LittleEndian); err != nil {
		t.Fatal(err)
	}
	var decoded Block
	if _, err := decoded.DecodeFrom(buf, binary.LittleEndian); err != nil {
		t.Fatal(err)
	}

	for i, tx := range decoded.Transactions {
		if tx.ID != uint64(i) {
			t.Fatalf("transaction %d has id %d, order not preserved", i, tx.ID)
		}
	}
}

func TestBlock_EmptyBuffer(t *testing.T) {
	var b Block
	if _, err := b.DecodeFrom(nil, binary.LittleEndian); err == nil {
		t.Fatal("expected error decoding block from empty buffer")
	}
}

func TestBlock_CorruptTransactionCount(t *testing.T) {
	block := Block{Version: 1, Number: 1, PrevHash: []byte{1}}
	buf := make([]byte, block.EncodedSize())
	if _, err := block.EncodeTo(buf, binary.LittleEndian); err != nil {
		t.Fatal(err)
	}

	// The final byte is the transaction count; a huge declared count
	// must be rejected, not allocated.
	buf[len(buf)-1] = 0x7F
	var decoded Block
	_, err := decoded.DecodeFrom(buf, binary.LittleEndian)
	assertInvalidData(t, err)
}
