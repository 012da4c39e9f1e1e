// Package web serves a localhost-only single-user form that builds journals;
// it intentionally has no auth/CSRF protection in this mode.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"toggljournal/config"
	"toggljournal/generator"
	"toggljournal/journal"
	"toggljournal/notation"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxFormBytes bounds the size of a submitted form.
const maxFormBytes = 64 << 10

// SourceFactory builds the entry source for a submitted API token. The token
// may be empty when the server runs from a cache.
type SourceFactory func(token string) (generator.Source, error)

type Server struct {
	cfg     config.Config
	sources SourceFactory
	logger  *slog.Logger
	now     func() time.Time
	mux     *http.ServeMux
}

type Option func(*Server)

// WithClock replaces time.Now, used for TODAY and the footer timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func NewServer(cfg config.Config, sources SourceFactory, logger *slog.Logger, options ...Option) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	server := &Server{
		cfg:     cfg,
		sources: sources,
		logger:  logger,
		now:     time.Now,
	}
	for _, option := range options {
		option(server)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleIndex)
	mux.HandleFunc("POST /journal", server.handleJournal)
	mux.HandleFunc("POST /api/projects", server.handleAPIProjects)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := newFormView(s.cfg)
	if err := renderTemplate(w, http.StatusOK, "index.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	input, err := parseJournalForm(w, r)
	view := newFormView(s.cfg)
	view.Input = input
	if err != nil {
		view.Error = err.Error()
		s.renderForm(w, http.StatusBadRequest, view)
		return
	}

	gen, err := s.generatorFor(input.Token)
	if err != nil {
		view.Error = err.Error()
		s.renderForm(w, http.StatusBadRequest, view)
		return
	}

	result, err := gen.Generate(r.Context(), input.request(s.cfg))
	if err != nil {
		s.logger.Error("journal generation failed", "error", err)
		view.Error = err.Error()
		s.renderForm(w, statusForError(err), view)
		return
	}
	if result.Document == nil {
		view.Notice = "No project qualifies for the journal. Nothing was generated."
		s.renderForm(w, http.StatusOK, view)
		return
	}

	html, err := result.Document.HTML(s.cfg.Style)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", journal.FileBaseName(result.Context)+".html"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleAPIProjects(w http.ResponseWriter, r *http.Request) {
	input, err := parseJournalForm(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	gen, err := s.generatorFor(input.Token)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	req := input.request(s.cfg)
	req.Project = journal.AllSentinel
	rc, err := gen.Prepare(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	batch, err := gen.Source.Load(r.Context(), rc.Since, rc.Until)
	if err != nil {
		s.logger.Error("project audit failed", "error", err)
		writeJSON(w, statusForError(err), errorResponse{Error: err.Error()})
		return
	}

	rows := journal.Audit(batch.Entries, gen.Parser, rc.PersonalJournal)
	writeJSON(w, http.StatusOK, buildAuditResponse(rows))
}

func (s *Server) generatorFor(token string) (generator.Generator, error) {
	if s.sources == nil {
		return generator.Generator{}, errors.New("no entry source configured")
	}
	source, err := s.sources(token)
	if err != nil {
		return generator.Generator{}, err
	}
	loc, err := s.cfg.Toggl.Location()
	if err != nil {
		return generator.Generator{}, err
	}
	return generator.Generator{
		Source:   source,
		Parser:   notation.NewParser(s.cfg.Notation.Delimiter),
		Logger:   s.logger,
		Location: loc,
		Now:      s.now,
	}, nil
}

func (s *Server) renderForm(w http.ResponseWriter, status int, view formView) {
	if err := renderTemplate(w, status, "index.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func renderTemplate(w http.ResponseWriter, status int, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, journal.ErrEmptyScope), errors.Is(err, journal.ErrInvalidRange), errors.Is(err, generator.ErrMissingAuthor):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
