package httpserver

import (
	"net/http"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromCtx(r.Context())
	if !ok {
		s.err(w, r, errs.ErrUnauthorized)
		return
	}
	var in model.ClientCreate
	if err := decodeJSON(r, &in); err != nil {
		s.err(w, r, err)
		return
	}
	c, err := s.clients.Create(r.Context(), ident, in)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, c)
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromCtx(r.Context())
	if !ok {
		s.err(w, r, errs.ErrUnauthorized)
		return
	}
	out, err := s.clients.List(r.Context(), ident, pageFromQuery(r))
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, out)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
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
	c, err := s.clients.Get(r.Context(), ident, id)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, c)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
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
	var patch model.ClientPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.err(w, r, err)
		return
	}
	c, err := s.clients.Update(r.Context(), ident, id, patch)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, c)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
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
	if err := s.clients.Delete(r.Context(), ident, id); err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, okBody{OK: true})
}
