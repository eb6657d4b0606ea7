package httpserver

import (
	"net/http"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromCtx(r.Context())
	if !ok {
		s.err(w, r, errs.ErrUnauthorized)
		return
	}
	var in model.NoteCreate
	if err := decodeJSON(r, &in); err != nil {
		s.err(w, r, err)
		return
	}
	n, err := s.notes.Create(r.Context(), ident, in)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, n)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromCtx(r.Context())
	if !ok {
		s.err(w, r, errs.ErrUnauthorized)
		return
	}
	out, err := s.notes.List(r.Context(), ident, pageFromQuery(r))
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, out)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromCtx(r.Context())
	if !ok {
		s.err(w, r, errs.ErrUnauthorized)
		return
	}
	id, err := urlID(r)
	if err != nil {
		s.err(w, r, err)
		return
	}
	n, err := s.notes.Get(r.Context(), ident, id)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, n)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromCtx(r.Context())
	if !ok {
		s.err(w, r, errs.ErrUnauthorized)
		return
	}
	id, err := urlID(r)
	if err != nil {
		s.err(w, r, err)
		return
	}
	var patch model.NotePatch
	if err := decodeJSON(r, &patch); err != nil {
		s.err(w, r, err)
		return
	}
	n, err := s.notes.Update(r.Context(), ident, id, patch)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, n)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromCtx(r.Context())
	if !ok {
		s.err(w, r, errs.ErrUnauthorized)
		return
	}
	id, err := urlID(r)
	if err != nil {
		s.err(w, r, err)
		return
	}
	if err := s.notes.Delete(r.Context(), ident, id); err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, okBody{OK: true})
}
