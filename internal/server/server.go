package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"eli5/internal/output"
)

// Server previews generated documentation over HTTP. It renders the
// Markdown files in the docs directory with the same page chrome as the
// HTML writer.
type Server struct {
	router  chi.Router
	docsDir string
	log     *slog.Logger
}

// New creates the preview server for a docs directory.
func New(docsDir string, log *slog.Logger) *Server {
	s := &Server{docsDir: docsDir, log: log}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/", s.handleIndex)
	r.Get("/docs/{name}", s.handleDoc)
	r.Get("/healthz", s.handleHealth)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleIndex lists the Markdown documents available for preview.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.docsDir)
	if err != nil && !os.IsNotExist(err) {
		jsonError(w, "read docs directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("# ELI5 Documentation Index\n\n")
	if len(names) == 0 {
		b.WriteString("No documents yet. Run `eli5 generate` to create some.\n")
	} else {
		for _, name := range names {
			fmt.Fprintf(&b, "- [%s](/docs/%s)\n", name, name)
		}
	}

	s.renderMarkdown(w, "ELI5 Documentation", b.String())
}

// handleDoc renders one generated Markdown document as HTML. The name
// must be a bare .md filename; anything that looks like a path is
// rejected.
func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name != filepath.Base(name) || !strings.EqualFold(filepath.Ext(name), ".md") {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.docsDir, name))
	if err != nil {
		jsonError(w, "document not found; run `eli5 generate` first", http.StatusNotFound)
		return
	}

	s.renderMarkdown(w, strings.TrimSuffix(name, filepath.Ext(name)), string(data))
}

func (s *Server) renderMarkdown(w http.ResponseWriter, title, markdown string) {
	page, err := output.RenderPage(title, markdown)
	if err != nil {
		jsonError(w, "render document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
