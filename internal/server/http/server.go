// Package httpserver exposes the FlowSpace REST API.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi"
	"go.uber.org/zap"

	"github.com/kp4ws/FlowSpace/internal/auth"
	"github.com/kp4ws/FlowSpace/internal/service"
)

// Deps collects the collaborators injected into the server.
type Deps struct {
	Log         *zap.Logger
	Verifier    auth.Verifier
	Clients     service.ClientService
	Invoices    service.InvoiceService
	Notes       service.NoteService
	Marketplace service.MarketplaceService
	AI          service.AIService

	// AllowedOrigins is the CORS allow-list.
	AllowedOrigins []string
	// DevMode exposes internal error details in 500 responses.
	DevMode bool
}

// Server wires services into HTTP handlers.
type Server struct {
	log         *zap.Logger
	verifier    auth.Verifier
	clients     service.ClientService
	invoices    service.InvoiceService
	notes       service.NoteService
	marketplace service.MarketplaceService
	ai          service.AIService
	origins     map[string]struct{}
	devMode     bool
}

// New constructs a server with injected services.
func New(d Deps) *Server {
	origins := make(map[string]struct{}, len(d.AllowedOrigins))
	for _, o := range d.AllowedOrigins {
		origins[o] = struct{}{}
	}
	return &Server{
		log:         d.Log,
		verifier:    d.Verifier,
		clients:     d.Clients,
		invoices:    d.Invoices,
		notes:       d.Notes,
		marketplace: d.Marketplace,
		ai:          d.AI,
		origins:     origins,
		devMode:     d.DevMode,
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recovery, s.logging, s.cors)

	r.Get("/", s.handleRoot)

	r.Route("/clients", func(r chi.Router) {
		r.Use(s.withIdentity)
		r.Post("/", s.handleCreateClient)
		r.Get("/", s.handleListClients)
		r.Get("/{id}", s.handleGetClient)
		r.Patch("/{id}", s.handleUpdateClient)
		r.Delete("/{id}", s.handleDeleteClient)
	})

	r.Route("/invoices", func(r chi.Router) {
		r.Use(s.withIdentity)
		r.Post("/", s.handleCreateInvoice)
		r.Get("/", s.handleListInvoices)
		r.Get("/{id}", s.handleGetInvoice)
		r.Patch("/{id}", s.handleUpdateInvoice)
		r.Delete("/{id}", s.handleDeleteInvoice)
	})

	r.Route("/notes", func(r chi.Router) {
		r.Use(s.withIdentity)
		r.Post("/", s.handleCreateNote)
		r.Get("/", s.handleListNotes)
		r.Get("/{id}", s.handleGetNote)
		r.Patch("/{id}", s.handleUpdateNote)
		r.Delete("/{id}", s.handleDeleteNote)
	})

	r.Route("/workspaces", func(r chi.Router) {
		r.Get("/", s.handleListWorkspaces)
		r.With(s.withIdentity).Post("/share", s.handleShareWorkspace)
		r.Post("/{id}/like", s.handleLikeWorkspace)
	})

	r.Route("/widgets", func(r chi.Router) {
		r.Get("/", s.handleListWidgets)
		r.With(s.withIdentity).Post("/share", s.handleShareWidget)
		r.Post("/{id}/like", s.handleLikeWidget)
	})

	r.Route("/ai", func(r chi.Router) {
		r.Use(s.withIdentity)
		r.Post("/generate-email", s.handleGenerateEmail)
		r.Post("/summarize-notes", s.handleSummarizeNotes)
	})

	return r
}

// handleRoot is the liveness route.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"message": "Freelancer Toolkit API is running"})
}
