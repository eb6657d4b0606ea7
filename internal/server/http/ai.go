package httpserver

import (
	"net/http"

	"github.com/kp4ws/FlowSpace/internal/service"
)

type suggestionBody struct {
	Suggestion string `json:"suggestion"`
}

func (s *Server) handleGenerateEmail(w http.ResponseWriter, r *http.Request) {
	var prompt service.EmailPrompt
	if err := decodeJSON(r, &prompt); err != nil {
		s.err(w, r, err)
		return
	}
	text, err := s.ai.GenerateEmail(r.Context(), prompt)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, suggestionBody{Suggestion: text})
}

func (s *Server) handleSummarizeNotes(w http.ResponseWriter, r *http.Request) {
	var prompt service.NotesPrompt
	if err := decodeJSON(r, &prompt); err != nil {
		s.err(w, r, err)
		return
	}
	text, err := s.ai.SummarizeNotes(r.Context(), prompt)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, suggestionBody{Suggestion: text})
}
