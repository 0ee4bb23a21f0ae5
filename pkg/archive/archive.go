// Package archive persists framed transactions in a Pebble database
// keyed by transaction id. Values are stored as complete checksummed
// wire envelopes and re-verified on every read, so on-disk corruption
// surfaces as a codec error rather than a silently wrong record.
package archive

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/skjold/chainwire/pkg/wire"
)

// ErrNotFound reports that no transaction with the given id is archived.
var ErrNotFound = errors.New("archive: transaction not found")

var (
	txKeyPrefix    = []byte("tx/")
	batchKeyPrefix = []byte("batch/")
)

// Store is a Pebble-backed transaction archive.
type Store struct {
	db    *pebble.DB
	order binary.ByteOrder
	log   zerolog.Logger
}

// Open opens (or creates) the archive at path.
func Open(path string, order binary.ByteOrder, log zerolog.Logger) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	if order == nil {
		order = binary.LittleEndian
	}
	return &Store{
		db:    db,
		order: order,
		log:   log.With().Str("component", "archive").Logger(),
	}, nil
}

// txKey builds the key for a transaction id. Ids are big-endian so keys
// sort numerically regardless of the configured wire byte order.
func txKey(id uint64) []byte {
	key := make([]byte, len(txKeyPrefix)+8)
	copy(key, txKeyPrefix)
	binary.BigEndian.PutUint64(key[len(txKeyPrefix):], id)
	return key
}

// Put frames tx and stores it under its id, replacing any previous
// record with the same id.
func (s *Store) Put(tx *wire.Transaction) error {
	frame, err := wire.Serialize(tx, s.order)
	if err != nil {
		return err
	}
	return s.db.Set(txKey(tx.ID), frame, pebble.Sync)
}

// Get loads and verifies the transaction with the given id.
func (s *Store) Get(id uint64) (*wire.Transaction, error) {
	value, closer, err := s.db.Get(txKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	var tx wire.Transaction
	if err := wire.Deserialize(value, s.order, &tx); err != nil {
		return nil, fmt.Errorf("archive: record %d: %w", id, err)
	}
	return &tx, nil
}

// Delete removes the transaction with the given id, if present.
func (s *Store) Delete(id uint64) error {
	return s.db.Delete(txKey(id), pebble.Sync)
}

// ImportBatch verifies a batch envelope, decodes every transaction in
// it, and stores them atomically alongside a manifest of the imported
// ids. It returns the generated batch id and the record count.
func (s *Store) ImportBatch(buf []byte) (string, int, error) {
	txs, err := wire.DeserializeBatch[wire.Transaction](buf, s.order)
	if err != nil {
		return "", 0, err
	}

	batchID := ksuid.New().String()
	manifest := make([]byte, 0, 8*len(txs))

	batch := s.db.NewBatch()
	defer batch.Close()
	for i := range txs {
		frame, err := wire.Serialize(&txs[i], s.order)
		if err != nil {
			return "", 0, err
		}
		if err := batch.Set(txKey(txs[i].ID), frame, nil); err != nil {
			return "", 0, err
		}
		var idBytes [8]byte
		binary.BigEndian.PutUint64(idBytes[:], txs[i].ID)
		manifest = append(manifest, idBytes[:]...)
	}
	if err := batch.Set(append(batchKeyPrefix, batchID...), manifest, nil); err != nil {
		return "", 0, err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return "", 0, err
	}

	s.log.Info().Str("batch_id", batchID).Int("records", len(txs)).Msg("batch imported")
	return batchID, len(txs), nil
}

// BatchManifest returns the transaction ids imported under batchID.
func (s *Store) BatchManifest(batchID string) ([]uint64, error) {
	value, closer, err := s.db.Get(append(batchKeyPrefix, batchID...))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	if len(value)%8 != 0 {
		return nil, fmt.Errorf("archive: malformed manifest for batch %s", batchID)
	}
	ids := make([]uint64, 0, len(value)/8)
	for off := 0; off < len(value); off += 8 {
		ids = append(ids, binary.BigEndian.Uint64(value[off:off+8]))
	}
	return ids, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
