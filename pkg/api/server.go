// Package api exposes the chainwire codec over HTTP.
//
// Frames travel as base64 inside JSON envelopes; the codec itself never
// sees anything but raw bytes. Every endpoint is instrumented with
// Prometheus counters and latency/size histograms, scraped at /metrics.
package api

import (
	"encoding/binary"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Router builds the chi router with all routes and middleware configured.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		r.Post("/transactions/encode", s.metrics.InstrumentHandler("POST", "/api/v1/transactions/encode", s.handleEncodeTransaction))
		r.Post("/transactions/decode", s.metrics.InstrumentHandler("POST", "/api/v1/transactions/decode", s.handleDecodeTransaction))

		r.Post("/blocks/encode", s.metrics.InstrumentHandler("POST", "/api/v1/blocks/encode", s.handleEncodeBlock))
		r.Post("/blocks/decode", s.metrics.InstrumentHandler("POST", "/api/v1/blocks/decode", s.handleDecodeBlock))

		r.Post("/frames/verify", s.metrics.InstrumentHandler("POST", "/api/v1/frames/verify", s.handleVerifyFrame))

		r.Post("/batches/encode", s.metrics.InstrumentHandler("POST", "/api/v1/batches/encode", s.handleEncodeBatch))
		r.Post("/batches/decode", s.metrics.InstrumentHandler("POST", "/api/v1/batches/decode", s.handleDecodeBatch))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured.
// It blocks until the listener fails.
func StartServer(config ServerConfig, order binary.ByteOrder, log zerolog.Logger) error {
	metrics := NewMetrics()
	server := NewServer(config, order, metrics, log)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	log.Info().
		Str("addr", addr).
		Msg("starting chainwire API server")

	return http.ListenAndServe(addr, server.Router())
}
