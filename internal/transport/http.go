package transport

import (
	"bytes"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/fcea/internal/document"
	"github.com/rpggio/fcea/internal/domain/contract"
	"github.com/rpggio/fcea/internal/domain/vesting"
	"github.com/rpggio/fcea/internal/sharecode"
)

// Config wires the HTTP surface.
type Config struct {
	// MCP serves the streamable MCP endpoint. Nil leaves /mcp unrouted.
	MCP http.Handler
	// BaseURL is the public agreement URL share links point at.
	BaseURL string
	Clock   contract.Clock
	Logger  *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	baseURL string
	clock   contract.Clock
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(cfg.Logger))

	srv := &Server{baseURL: cfg.BaseURL, clock: cfg.Clock}

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}
	r.Get("/health", srv.handleHealth)
	r.Get("/agreement", srv.handleAgreementHTML)
	r.Get("/agreement.md", srv.handleAgreementMarkdown)
	r.Get("/vesting", srv.handleVesting)
	r.Get("/share", srv.handleShare)

	return r
}

func (s *Server) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleAgreementHTML(w http.ResponseWriter, r *http.Request) {
	seed := sharecode.FromValues(r.URL.Query())
	body, err := document.RenderHTML(document.Markdown(seed.Founder, seed.Contributor, s.now()))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var page bytes.Buffer
	if err := document.Page(&page, document.AgreementTitle, body); err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page.Bytes())
}

func (s *Server) handleAgreementMarkdown(w http.ResponseWriter, r *http.Request) {
	seed := sharecode.FromValues(r.URL.Query())
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(document.Markdown(seed.Founder, seed.Contributor, s.now())))
}

// VestingResponse is the body of GET /vesting.
type VestingResponse struct {
	Days     float64          `json:"days"`
	Percent  float64          `json:"percent"`
	Rounded  float64          `json:"rounded"`
	Schedule vesting.Schedule `json:"schedule"`
}

func (s *Server) handleVesting(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		WriteError(w, http.StatusBadRequest, "days is required")
		return
	}
	days, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(days) || math.IsInf(days, 0) {
		WriteError(w, http.StatusBadRequest, "days must be a number")
		return
	}

	schedule := sharecode.FromValues(r.URL.Query()).Contributor.Schedule()
	percent := schedule.At(days)
	WriteJSON(w, http.StatusOK, VestingResponse{
		Days:     days,
		Percent:  percent,
		Rounded:  vesting.Round2(percent),
		Schedule: schedule,
	})
}

// ShareResponse is the body of GET /share.
type ShareResponse struct {
	URL   string `json:"url"`
	Query string `json:"query"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	seed := sharecode.FromValues(r.URL.Query())
	link, err := sharecode.ShareURL(s.baseURL, seed.Founder, seed.Contributor)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, ShareResponse{
		URL:   link,
		Query: sharecode.Encode(seed.Founder, seed.Contributor),
	})
}
