package api

import "github.com/skjold/chainwire/pkg/wire"

// APIResponse is the standard envelope for all JSON responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds the API server configuration.
type ServerConfig struct {
	Port      int    `json:"port"`
	Bind      string `json:"bind"`
	ByteOrder string `json:"byte_order"`
}

// FrameResponse carries an encoded frame as base64.
type FrameResponse struct {
	Frame string `json:"frame"`
	Size  int    `json:"size"`
}

// FrameRequest carries a base64 frame to decode or verify.
type FrameRequest struct {
	Frame string `json:"frame"`
}

// VerifyResponse reports the outcome of a frame integrity check.
// Stored and Computed are hex digests, present only on checksum mismatch.
type VerifyResponse struct {
	Valid       bool   `json:"valid"`
	PayloadSize int    `json:"payload_size,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Stored      string `json:"stored_checksum,omitempty"`
	Computed    string `json:"computed_checksum,omitempty"`
}

// BatchRequest carries transactions to serialize as a single batch frame.
type BatchRequest struct {
	Transactions []wire.Transaction `json:"transactions"`
}

// BatchResponse carries the transactions recovered from a batch frame.
type BatchResponse struct {
	Transactions []wire.Transaction `json:"transactions"`
	Count        int                `json:"count"`
}
