package journal

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skjold/chainwire/pkg/wire"
)

func testTx(id uint64) *wire.Transaction {
	return &wire.Transaction{
		ID:        id,
		Amount:    id * 100,
		Fee:       0.01,
		Version:   1,
		Sender:    "Alice",
		Recipient: "Bob",
		Signature: []byte{1, 2, 3, 4},
	}
}

func testWriter(t *testing.T, dir string) *Writer {
	t.Helper()
	w, err := NewWriter(WriterConfig{
		FilePath:  filepath.Join(dir, "journal.bin"),
		ByteOrder: binary.LittleEndian,
	}, zerolog.Nop())
	require.NoError(t, err)
	return w
}

func TestJournal_AppendAndReadBack(t *testing.T) {
	dir := t.TempDir()
	w := testWriter(t, dir)

	const n = 10
	offsets := make([]int64, 0, n)
	for i := uint64(0); i < n; i++ {
		off, err := w.Append(testTx(i))
		require.NoError(t, err)
		offsets = append(offsets, off)
	}
	require.NoError(t, w.Close())

	// Offsets are strictly increasing and start at zero.
	assert.Equal(t, int64(0), offsets[0])
	for i := 1; i < n; i++ {
		assert.Greater(t, offsets[i], offsets[i-1])
	}

	r, err := NewReader(ReaderConfig{FilePath: w.Path(), ByteOrder: binary.LittleEndian})
	require.NoError(t, err)
	defer r.Close()

	for i := uint64(0); i < n; i++ {
		tx, err := r.ReadNext()
		require.NoError(t, err)
		assert.True(t, tx.Equal(testTx(i)), "record %d mismatch", i)
	}
	_, err = r.ReadNext()
	assert.Equal(t, io.EOF, err)
}

func TestJournal_Iterator(t *testing.T) {
	dir := t.TempDir()
	w := testWriter(t, dir)
	for i := uint64(0); i < 5; i++ {
		_, err := w.Append(testTx(i))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	r, err := NewReader(ReaderConfig{FilePath: w.Path(), ByteOrder: binary.LittleEndian})
	require.NoError(t, err)
	defer r.Close()

	var ids []uint64
	it := r.Iterator()
	for it.Next() {
		ids = append(ids, it.Transaction().ID)
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []uint64{0, 1, 2, 3, 4}, ids)
}

func TestJournal_StartOffset(t *testing.T) {
	dir := t.TempDir()
	w := testWriter(t, dir)
	_, err := w.Append(testTx(1))
	require.NoError(t, err)
	second, err := w.Append(testTx(2))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewReader(ReaderConfig{FilePath: w.Path(), StartOffset: second, ByteOrder: binary.LittleEndian})
	require.NoError(t, err)
	defer r.Close()

	tx, err := r.ReadNext()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), tx.ID)
}

func TestJournal_CorruptionDetected(t *testing.T) {
	dir := t.TempDir()
	w := testWriter(t, dir)
	_, err := w.Append(testTx(1))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// Flip a payload byte on disk.
	data, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	data[wire.PrefixSize+3] ^= 0xFF
	require.NoError(t, os.WriteFile(w.Path(), data, 0600))

	r, err := NewReader(ReaderConfig{FilePath: w.Path(), ByteOrder: binary.LittleEndian})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadNext()
	assert.ErrorIs(t, err, ErrCorruption)
}

func TestRecover_CleanLog(t *testing.T) {
	dir := t.TempDir()
	w := testWriter(t, dir)
	for i := uint64(0); i < 3; i++ {
		_, err := w.Append(testTx(i))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	stats, err := Recover(ReaderConfig{FilePath: w.Path(), ByteOrder: binary.LittleEndian}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, int64(0), stats.TruncatedBytes)
}

func TestRecover_TornTail(t *testing.T) {
	dir := t.TempDir()
	w := testWriter(t, dir)
	for i := uint64(0); i < 3; i++ {
		_, err := w.Append(testTx(i))
		require.NoError(t, err)
	}
	size := w.Size()
	require.NoError(t, w.Close())

	// Simulate a crash mid-append: cut the last record in half.
	torn := size - 10
	require.NoError(t, os.Truncate(w.Path(), torn))

	stats, err := Recover(ReaderConfig{FilePath: w.Path(), ByteOrder: binary.LittleEndian}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Records)
	assert.Greater(t, stats.TruncatedBytes, int64(0))

	// The log is appendable and replayable again.
	w2 := testWriter(t, dir)
	_, err = w2.Append(testTx(99))
	require.NoError(t, err)
	require.NoError(t, w2.Close())

	r, err := NewReader(ReaderConfig{FilePath: w2.Path(), ByteOrder: binary.LittleEndian})
	require.NoError(t, err)
	defer r.Close()

	var ids []uint64
	it := r.Iterator()
	for it.Next() {
		ids = append(ids, it.Transaction().ID)
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []uint64{0, 1, 99}, ids)
}

func TestRecover_MissingFile(t *testing.T) {
	stats, err := Recover(ReaderConfig{FilePath: filepath.Join(t.TempDir(), "absent.bin")}, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, stats.Records)
}

func TestWriter_ClosedRejectsAppends(t *testing.T) {
	dir := t.TempDir()
	w := testWriter(t, dir)
	require.NoError(t, w.Close())

	_, err := w.Append(testTx(1))
	assert.ErrorIs(t, err, ErrClosed)
}
