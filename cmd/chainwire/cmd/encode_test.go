package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skjold/chainwire/pkg/wire"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSampleTx(t *testing.T, dir string) string {
	t.Helper()
	tx := wire.Transaction{
		ID:        42,
		Amount:    1000,
		Fee:       0.01,
		Version:   1,
		Sender:    "Alice",
		Recipient: "Bob",
		Signature: []byte{1, 2, 3, 4},
	}
	payload, err := json.Marshal(tx)
	require.NoError(t, err)

	path := filepath.Join(dir, "tx.json")
	require.NoError(t, os.WriteFile(path, payload, 0o644))
	return path
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleTx(t, dir)
	frame := filepath.Join(dir, "tx.bin")

	out, err := runCommand(t, "encode", input, "-o", frame)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	out, err = runCommand(t, "decode", frame)
	require.NoError(t, err)

	var decoded wire.Transaction
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, uint64(42), decoded.ID)
	assert.Equal(t, "Alice", decoded.Sender)
}

func TestEncodeUltraRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleTx(t, dir)
	frame := filepath.Join(dir, "tx.ultra")

	_, err := runCommand(t, "encode", input, "--ultra", "-o", frame)
	require.NoError(t, err)

	raw, err := os.ReadFile(frame)
	require.NoError(t, err)
	assert.Len(t, raw, wire.UltraSize)

	out, err := runCommand(t, "decode", frame, "--ultra")
	require.NoError(t, err)

	var decoded wire.Transaction
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Bob", decoded.Recipient)
}

func TestInspectReportsCorruption(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleTx(t, dir)
	frame := filepath.Join(dir, "tx.bin")

	// Flag values stick between Execute calls, so reset --ultra explicitly.
	_, err := runCommand(t, "encode", input, "--ultra=false", "-o", frame)
	require.NoError(t, err)

	out, err := runCommand(t, "inspect", frame)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")

	raw, err := os.ReadFile(frame)
	require.NoError(t, err)
	raw[wire.PrefixSize] ^= 0x01
	require.NoError(t, os.WriteFile(frame, raw, 0o644))

	out, err = runCommand(t, "inspect", frame)
	require.Error(t, err)
	assert.Contains(t, out, "MISMATCH")
}

func TestJournalAppendAndCat(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleTx(t, dir)
	logPath := filepath.Join(dir, "txs.journal")

	out, err := runCommand(t, "journal", "append", logPath, input)
	require.NoError(t, err)
	assert.Contains(t, out, "Appended")

	_, err = runCommand(t, "journal", "append", logPath, input)
	require.NoError(t, err)

	out, err = runCommand(t, "journal", "cat", logPath)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("\"id\":42")))
}
