// Package server exposes the chat service over HTTP: POST /chat forwards
// user text to the model with the accumulated history, OPTIONS /chat
// advertises the allowed methods, GET /healthz reports liveness.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/nurashi/Deskbot/internal/config"
	"github.com/nurashi/Deskbot/internal/conversation"
)

// Responder generates a reply for an assembled message list.
type Responder interface {
	ChatCompletion(ctx context.Context, messages []conversation.Turn) (string, error)
}

type Server struct {
	ai                Responder
	history           *conversation.History
	policy            conversation.ResetPolicy
	systemInstruction string
	logger            zerolog.Logger
	http              *http.Server
}

func New(cfg *config.Config, ai Responder, logger zerolog.Logger) *Server {
	s := &Server{
		ai:                ai,
		history:           conversation.NewHistory(),
		policy:            conversation.NewResetPolicy(cfg.Chat.TriggerWord),
		systemInstruction: cfg.Chat.SystemInstruction,
		logger:            logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/healthz", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.http = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) Run() error {
	s.logger.Info().Str("addr", s.http.Addr).Msg("server started")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler returns the routed handler, CORS included. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}
