package httpserver

import (
	"net/http"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

func (s *Server) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	out, err := s.marketplace.PublicWorkspaces(r.Context())
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, out)
}

func (s *Server) handleShareWorkspace(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromCtx(r.Context())
	if !ok {
		s.err(w, r, errs.ErrUnauthorized)
		return
	}
	var in model.WorkspaceShare
	if err := decodeJSON(r, &in); err != nil {
		s.err(w, r, err)
		return
	}
	ws, err := s.marketplace.ShareWorkspace(r.Context(), ident, in)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, ws)
}

func (s *Server) handleLikeWorkspace(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		s.err(w, r, err)
		return
	}
	n, err := s.marketplace.LikeWorkspace(r.Context(), id)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, likesBody{LikesCount: n})
}

func (s *Server) handleListWidgets(w http.ResponseWriter, r *http.Request) {
	out, err := s.marketplace.PublicWidgets(r.Context())
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, out)
}

func (s *Server) handleShareWidget(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromCtx(r.Context())
	if !ok {
		s.err(w, r, errs.ErrUnauthorized)
		return
	}
	var in model.WidgetShare
	if err := decodeJSON(r, &in); err != nil {
		s.err(w, r, err)
		return
	}
	wd, err := s.marketplace.ShareWidget(r.Context(), ident, in)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, wd)
}

func (s *Server) handleLikeWidget(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		s.err(w, r, err)
		return
	}
	n, err := s.marketplace.LikeWidget(r.Context(), id)
	if err != nil {
		s.err(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, likesBody{LikesCount: n})
}
