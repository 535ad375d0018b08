package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/nurashi/Deskbot/internal/prompt"
)

type chatRequest struct {
	UserInput string `json:"user_input"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.chat(w, r)
	case http.MethodOptions:
		w.Header().Set("Allow", strings.Join(allowedMethods, ", "))
		writeJSON(w, http.StatusOK, map[string][]string{"allow": allowedMethods})
	default:
		w.Header().Set("Allow", strings.Join(allowedMethods, ", "))
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "method not allowed"})
	}
}

var allowedMethods = []string{http.MethodPost, http.MethodOptions}

// chat runs one conversation turn. The user turn is only recorded after
// the provider call succeeds, so a failed call leaves the history exactly
// as it was. When the trigger substring shows up in the input or the
// reply, the history is cleared after the exchange is recorded; the reply
// from that final call is still returned to the caller.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	snapshot := s.history.Snapshot()
	messages := prompt.Assemble(s.systemInstruction, snapshot, req.UserInput)

	start := time.Now()
	reply, err := s.ai.ChatCompletion(r.Context(), messages)
	if err != nil {
		s.logger.Error().Err(err).Msg("provider call failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: err.Error()})
		return
	}

	s.history.AppendExchange(req.UserInput, reply)

	reset := s.policy.Triggered(req.UserInput, reply)
	if reset {
		s.history.Reset()
	}

	s.logger.Info().
		Dur("latency", time.Since(start)).
		Int("turns", s.history.Len()).
		Bool("reset", reset).
		Msg("chat turn completed")

	writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
