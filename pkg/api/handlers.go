package api

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/skjold/chainwire/pkg/wire"
)

// Server holds the API server state
type Server struct {
	order   binary.ByteOrder
	config  ServerConfig
	metrics *Metrics
	log     zerolog.Logger
}

// NewServer creates a new API server
func NewServer(config ServerConfig, order binary.ByteOrder, metrics *Metrics, log zerolog.Logger) *Server {
	return &Server{
		order:   order,
		config:  config,
		metrics: metrics,
		log:     log,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleEncodeTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var tx wire.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		s.metrics.RecordCodecOperation("encode_transaction", false, time.Since(start), 0)
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	frame, err := wire.Serialize(&tx, s.order)
	if err != nil {
		s.metrics.RecordCodecOperation("encode_transaction", false, time.Since(start), 0)
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.metrics.RecordCodecOperation("encode_transaction", true, time.Since(start), len(frame))
	sendSuccess(w, FrameResponse{
		Frame: base64.StdEncoding.EncodeToString(frame),
		Size:  len(frame),
	})
}

func (s *Server) handleDecodeTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	frame, ok := s.readFrame(w, r, "decode_transaction", start)
	if !ok {
		return
	}

	var tx wire.Transaction
	if err := wire.Deserialize(frame, s.order, &tx); err != nil {
		s.metrics.RecordCodecOperation("decode_transaction", false, time.Since(start), len(frame))
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.metrics.RecordCodecOperation("decode_transaction", true, time.Since(start), len(frame))
	sendSuccess(w, tx)
}

func (s *Server) handleEncodeBlock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var block wire.Block
	if err := json.NewDecoder(r.Body).Decode(&block); err != nil {
		s.metrics.RecordCodecOperation("encode_block", false, time.Since(start), 0)
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	frame, err := wire.Serialize(&block, s.order)
	if err != nil {
		s.metrics.RecordCodecOperation("encode_block", false, time.Since(start), 0)
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.metrics.RecordCodecOperation("encode_block", true, time.Since(start), len(frame))
	sendSuccess(w, FrameResponse{
		Frame: base64.StdEncoding.EncodeToString(frame),
		Size:  len(frame),
	})
}

func (s *Server) handleDecodeBlock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	frame, ok := s.readFrame(w, r, "decode_block", start)
	if !ok {
		return
	}

	var block wire.Block
	if err := wire.Deserialize(frame, s.order, &block); err != nil {
		s.metrics.RecordCodecOperation("decode_block", false, time.Since(start), len(frame))
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.metrics.RecordCodecOperation("decode_block", true, time.Since(start), len(frame))
	sendSuccess(w, block)
}

func (s *Server) handleVerifyFrame(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	frame, ok := s.readFrame(w, r, "verify_frame", start)
	if !ok {
		return
	}

	payload, err := wire.VerifyBatch(frame, s.order)
	if err != nil {
		s.metrics.RecordCodecOperation("verify_frame", false, time.Since(start), len(frame))

		resp := VerifyResponse{Valid: false, Reason: err.Error()}
		var checksumErr *wire.ChecksumError
		if errors.As(err, &checksumErr) {
			resp.Stored = hex.EncodeToString(checksumErr.Stored)
			resp.Computed = hex.EncodeToString(checksumErr.Computed)
		}
		sendSuccess(w, resp)
		return
	}

	s.metrics.RecordCodecOperation("verify_frame", true, time.Since(start), len(frame))
	sendSuccess(w, VerifyResponse{Valid: true, PayloadSize: len(payload)})
}

func (s *Server) handleEncodeBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordCodecOperation("encode_batch", false, time.Since(start), 0)
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	items := make([]wire.Encodable, len(req.Transactions))
	for i := range req.Transactions {
		items[i] = &req.Transactions[i]
	}

	frame, err := wire.SerializeBatch(items, s.order)
	if err != nil {
		s.metrics.RecordCodecOperation("encode_batch", false, time.Since(start), 0)
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.metrics.RecordCodecOperation("encode_batch", true, time.Since(start), len(frame))
	sendSuccess(w, FrameResponse{
		Frame: base64.StdEncoding.EncodeToString(frame),
		Size:  len(frame),
	})
}

func (s *Server) handleDecodeBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	frame, ok := s.readFrame(w, r, "decode_batch", start)
	if !ok {
		return
	}

	txs, err := wire.DeserializeBatch[wire.Transaction](frame, s.order)
	if err != nil {
		s.metrics.RecordCodecOperation("decode_batch", false, time.Since(start), len(frame))
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.metrics.RecordCodecOperation("decode_batch", true, time.Since(start), len(frame))
	sendSuccess(w, BatchResponse{Transactions: txs, Count: len(txs)})
}

// readFrame parses a FrameRequest body and returns the raw frame bytes.
func (s *Server) readFrame(w http.ResponseWriter, r *http.Request, operation string, start time.Time) ([]byte, bool) {
	var req FrameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordCodecOperation(operation, false, time.Since(start), 0)
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return nil, false
	}

	frame, err := base64.StdEncoding.DecodeString(req.Frame)
	if err != nil {
		s.metrics.RecordCodecOperation(operation, false, time.Since(start), 0)
		sendError(w, "Frame is not valid base64", http.StatusBadRequest)
		return nil, false
	}
	return frame, true
}
