package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/skjold/chainwire/pkg/wire"
)

// Reader provides sequential, verified access to journal records.
type Reader struct {
	file   *os.File
	reader *bufio.Reader
	config ReaderConfig
	offset int64
}

// NewReader opens the journal for sequential reading.
func NewReader(config ReaderConfig) (*Reader, error) {
	config.ByteOrder = orderOrDefault(config.ByteOrder)

	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}
	if config.StartOffset > 0 {
		if _, err := file.Seek(config.StartOffset, io.SeekStart); err != nil {
			file.Close()
			return nil, err
		}
	}
	return &Reader{
		file:   file,
		reader: bufio.NewReader(file),
		config: config,
		offset: config.StartOffset,
	}, nil
}

// ReadNext reads and verifies the next record. It returns io.EOF at a
// clean end of log, and an error wrapping ErrCorruption for a torn or
// damaged record.
func (r *Reader) ReadNext() (*wire.Transaction, error) {
	frame, err := r.readFrame()
	if err != nil {
		return nil, err
	}

	var tx wire.Transaction
	if err := wire.Deserialize(frame, r.config.ByteOrder, &tx); err != nil {
		return nil, fmt.Errorf("%w: offset %d: %v", ErrCorruption, r.offset-int64(len(frame)), err)
	}
	return &tx, nil
}

// readFrame reassembles one complete wire envelope from the stream.
func (r *Reader) readFrame() ([]byte, error) {
	var prefix [wire.PrefixSize]byte
	if _, err := io.ReadFull(r.reader, prefix[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: torn length prefix at offset %d", ErrCorruption, r.offset)
		}
		return nil, &wire.IOError{Err: err}
	}

	length := r.config.ByteOrder.Uint32(prefix[:])
	if length < wire.ChecksumSize || length > maxFrameSize {
		return nil, fmt.Errorf("%w: implausible frame length %d at offset %d", ErrCorruption, length, r.offset)
	}

	frame := make([]byte, wire.PrefixSize+int(length))
	copy(frame, prefix[:])
	if _, err := io.ReadFull(r.reader, frame[wire.PrefixSize:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: torn record at offset %d", ErrCorruption, r.offset)
		}
		return nil, &wire.IOError{Err: err}
	}

	r.offset += int64(len(frame))
	return frame, nil
}

// Offset returns the current read offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Iterator returns a streaming iterator over the remaining records.
func (r *Reader) Iterator() *Iterator {
	return &Iterator{reader: r}
}

// Iterator streams records until EOF or the first error.
type Iterator struct {
	reader *Reader
	tx     *wire.Transaction
	err    error
}

// Next advances to the next record, reporting whether one is available.
func (it *Iterator) Next() bool {
	it.tx, it.err = it.reader.ReadNext()
	return it.err == nil
}

// Transaction returns the current record.
func (it *Iterator) Transaction() *wire.Transaction {
	return it.tx
}

// Err returns the error that stopped iteration, if it was not a clean EOF.
func (it *Iterator) Err() error {
	if it.err == io.EOF {
		return nil
	}
	return it.err
}

// Recover replays the journal from the start and truncates a torn tail
// so the log is appendable again. Interior corruption (a damaged record
// followed by intact ones cannot be distinguished from a tail tear
// during a forward scan, so everything from the first bad record on is
// dropped) is logged before truncation.
func Recover(config ReaderConfig, log zerolog.Logger) (RecoveryStats, error) {
	var stats RecoveryStats

	reader, err := NewReader(config)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, err
	}

	goodEnd := config.StartOffset
	var scanErr error
	for {
		_, err := reader.ReadNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			scanErr = err
			break
		}
		stats.Records++
		goodEnd = reader.Offset()
	}
	if err := reader.Close(); err != nil {
		return stats, err
	}

	if scanErr == nil {
		return stats, nil
	}
	if !errors.Is(scanErr, ErrCorruption) {
		return stats, scanErr
	}

	info, err := os.Stat(config.FilePath)
	if err != nil {
		return stats, err
	}
	stats.TruncatedBytes = info.Size() - goodEnd
	log.Warn().
		Str("path", config.FilePath).
		Int64("truncated_bytes", stats.TruncatedBytes).
		Int("intact_records", stats.Records).
		Msg("truncating damaged journal tail")
	if err := os.Truncate(config.FilePath, goodEnd); err != nil {
		return stats, err
	}
	return stats, nil
}
