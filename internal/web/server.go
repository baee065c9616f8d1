// Package web hosts the storefront page over HTTP. It keeps no session
// state: every request carries the page state in its query string or in
// the "state" form field of an interaction.
package web

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/bradykim7/shopfront/internal/catalog"
	"github.com/bradykim7/shopfront/internal/models"
	"github.com/bradykim7/shopfront/internal/page"
	"github.com/bradykim7/shopfront/internal/render"
	"github.com/bradykim7/shopfront/internal/urlstate"
)

// Server serves the storefront page and its fragments
type Server struct {
	store       *catalog.Store
	collections catalog.Collections
	renderer    *render.Renderer
	commands    *page.Registry
	pageSize    int
	log         *zap.Logger
}

// NewServer creates a new server
func NewServer(store *catalog.Store, collections catalog.Collections, renderer *render.Renderer, pageSize int, log *zap.Logger) *Server {
	return &Server{
		store:       store,
		collections: collections,
		renderer:    renderer,
		commands:    page.NewRegistry(log),
		pageSize:    pageSize,
		log:         log.Named("web"),
	}
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(RequestLogger(s.log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", s.handleIndex)
	r.Post("/grid", s.handleGrid)
	r.Get("/products/{id}/quick-view", s.handleQuickView)

	return r
}

// handleIndex renders the full page for the state in the URL
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctrl := page.FromQuery(s.store.Snapshot(), s.collections, r.URL.RawQuery, s.pageSize)

	var highlight *models.Product
	if p, ok := ctrl.ConsumeHighlight(); ok {
		highlight = &p
	}

	setHTML(w)
	if err := s.renderer.Page(w, ctrl.View(), highlight); err != nil {
		s.renderError(w, r, err)
	}
}

// handleGrid applies one interaction and returns the refreshed grid
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	snap := s.store.Snapshot()
	state := urlstate.DecodeQuery(r.PostForm.Get("state"), snap.Groups, s.collections)
	state.HighlightProduct = ""
	if n, err := strconv.Atoi(r.PostForm.Get("page")); err == nil && n > 0 {
		state.Page = n
	}
	ctrl := page.New(snap, s.collections, state, s.pageSize)

	args := page.Args{
		"key":    r.PostForm.Get("key"),
		"value":  r.PostForm.Get("value"),
		"sort":   r.PostForm.Get("sort"),
		"target": r.PostForm.Get("target"),
	}
	if cmd, ok := s.commands.Build(r.PostForm.Get("action"), args); ok {
		ctrl.Dispatch(cmd)
	}

	setHTML(w)
	w.Header().Set("HX-Replace-Url", ctrl.URL("/"))
	if err := s.renderer.Grid(w, ctrl.View()); err != nil {
		s.renderError(w, r, err)
	}
}

// handleQuickView renders the overlay. Unknown ids answer 204 so htmx swaps nothing.
func (s *Server) handleQuickView(w http.ResponseWriter, r *http.Request) {
	p, ok := s.findProduct(chi.URLParam(r, "id"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	setHTML(w)
	if err := s.renderer.QuickView(w, p); err != nil {
		s.renderError(w, r, err)
	}
}

// findProduct resolves a quick-view id. chi routes on the escaped path when
// the id needed escaping, so the escaped form is tried second.
func (s *Server) findProduct(id string) (models.Product, bool) {
	products := s.store.Snapshot().Products
	if p, ok := catalog.FindProduct(products, id); ok {
		return p, true
	}
	if unescaped, err := url.PathUnescape(id); err == nil && unescaped != id {
		return catalog.FindProduct(products, unescaped)
	}
	return models.Product{}, false
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("Render failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", chimw.GetReqID(r.Context())),
		zap.Error(err))
	w.Header().Del("HX-Replace-Url")
	http.Error(w, "render error", http.StatusInternalServerError)
}

// setHTML marks the response as HTML. Renderers buffer their output, so a
// failed render can still answer with an error status.
func setHTML(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
