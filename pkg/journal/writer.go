package journal

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/skjold/chainwire/pkg/wire"
)

// Writer appends framed transactions to the journal file.
type Writer struct {
	file       *os.File
	writer     *bufio.Writer
	config     WriterConfig
	log        zerolog.Logger
	fsyncTimer *time.Timer
	mutex      sync.Mutex
	offset     int64
	closed     bool
}

// NewWriter opens (or creates) the journal file for appending.
func NewWriter(config WriterConfig, log zerolog.Logger) (*Writer, error) {
	config.ByteOrder = orderOrDefault(config.ByteOrder)
	if config.BufferSize <= 0 {
		config.BufferSize = 64 << 10
	}

	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	w := &Writer{
		file:   file,
		writer: bufio.NewWriterSize(file, config.BufferSize),
		config: config,
		log:    log.With().Str("component", "journal").Str("path", config.FilePath).Logger(),
		offset: stat.Size(),
	}

	if config.FsyncInterval > 0 {
		w.fsyncTimer = time.AfterFunc(config.FsyncInterval, func() {
			w.mutex.Lock()
			defer w.mutex.Unlock()
			if w.closed {
				return
			}
			if err := w.sync(); err != nil {
				w.log.Error().Err(err).Msg("background fsync failed")
			}
		})
	}

	w.log.Debug().Int64("offset", w.offset).Msg("journal opened for append")
	return w, nil
}

// Append frames tx and writes it to the log, returning the byte offset
// the record starts at.
func (w *Writer) Append(tx *wire.Transaction) (int64, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return 0, ErrClosed
	}

	frame, err := wire.Serialize(tx, w.config.ByteOrder)
	if err != nil {
		return 0, err
	}
	n, err := w.writer.Write(frame)
	if err != nil {
		return 0, &wire.IOError{Err: err}
	}

	recordOffset := w.offset
	w.offset += int64(n)

	if w.config.FsyncInterval == 0 {
		if err := w.sync(); err != nil {
			return 0, err
		}
	} else if w.fsyncTimer != nil {
		w.fsyncTimer.Reset(w.config.FsyncInterval)
	}

	return recordOffset, nil
}

// Sync flushes buffered writes and fsyncs to disk.
func (w *Writer) Sync() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return ErrClosed
	}
	return w.sync()
}

func (w *Writer) sync() error {
	if err := w.writer.Flush(); err != nil {
		return &wire.IOError{Err: err}
	}
	if err := w.file.Sync(); err != nil {
		return &wire.IOError{Err: err}
	}
	return nil
}

// Close syncs outstanding writes and closes the file.
func (w *Writer) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.fsyncTimer != nil {
		w.fsyncTimer.Stop()
	}
	if err := w.sync(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// Size returns the current size of the journal in bytes.
func (w *Writer) Size() int64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.offset
}

// Path returns the journal file path.
func (w *Writer) Path() string {
	return w.config.FilePath
}
