package httpserver

import (
	"net/http"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromCtx(r.Context())
	if !ok {
		s.err(w, r, errs.ErrUnauthorized)
		return
	}
	var in model.InvoiceCreate
	if err := decodeJSON(r, &in); err != nil {
		s.err(w, r, err)
		return
	}
	inv, err := s.invoices.Create(r.Context(), ident, in)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, inv)
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromCtx(r.Context())
	if !ok {
		s.err(w, r, errs.ErrUnauthorized)
		return
	}
	out, err := s.invoices.List(r.Context(), ident, pageFromQuery(r))
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, out)
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
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
	inv, err := s.invoices.Get(r.Context(), ident, id)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, inv)
}

func (s *Server) handleUpdateInvoice(w http.ResponseWriter, r *http.Request) {
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
	var patch model.InvoicePatch
	if err := decodeJSON(r, &patch); err != nil {
		s.err(w, r, err)
		return
	}
	inv, err := s.invoices.Update(r.Context(), ident, id, patch)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, inv)
}

func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
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
	if err := s.invoices.Delete(r.Context(), ident, id); err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, okBody{OK: true})
}
