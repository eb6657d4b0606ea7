package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"go.uber.org/zap"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

type errorBody struct {
	Detail string `json:"detail"`
}

type okBody struct {
	OK bool `json:"ok"`
}

type likesBody struct {
	LikesCount int64 `json:"likes_count"`
}

// respond writes v as JSON with the given status.
func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

// err maps sentinel errors to HTTP statuses. This is the only place a
// status code is derived from an error; handlers never pick their own.
func (s *Server) err(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		s.respond(w, http.StatusUnauthorized, errorBody{Detail: "Could not validate credentials"})
	case errors.Is(err, errs.ErrNotFound):
		s.respond(w, http.StatusNotFound, errorBody{Detail: "Not found"})
	case errors.Is(err, errs.ErrValidation):
		s.respond(w, http.StatusUnprocessableEntity, errorBody{Detail: err.Error()})
	case errors.Is(err, errs.ErrUnavailable):
		s.log.Error("signing keys unavailable", zap.Error(err))
		s.respond(w, http.StatusInternalServerError, errorBody{Detail: "Could not fetch auth keys"})
	default:
		s.log.Error("internal error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		if s.devMode {
			s.respond(w, http.StatusInternalServerError, errorBody{Detail: err.Error()})
			return
		}
		s.respond(w, http.StatusInternalServerError, errorBody{Detail: "An internal server error occurred. Please contact support."})
	}
}

// decodeJSON decodes a request body, reporting failures as validation errors.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("malformed request body: %w", errs.ErrValidation)
	}
	return nil
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %w", errs.ErrValidation)
	}
	return id, nil
}

// pageFromQuery reads offset/limit query parameters. Values are clamped
// downstream; unparsable values fall back to defaults.
func pageFromQuery(r *http.Request) model.Page {
	q := r.URL.Query()
	offset, _ := strconv.ParseInt(q.Get("offset"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	return model.Page{Offset: offset, Limit: limit}
}
