package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"

	"github.com/xtding233/bowling-backend/internal/bowling"
	"github.com/xtding233/bowling-backend/internal/input"
)

type scoreReq struct {
	Rolls []int `json:"rolls"`
}

type scoreResp struct {
	Score  int             `json:"score"`
	Frames []bowling.Frame `json:"frames,omitempty"`
	Err    string          `json:"err,omitempty"`
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         60 * 15,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/score", s.handleScoreQuery)
	r.Post("/score", s.handleScoreBody)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// GET /score?rolls=10,7,3,...
func (s *Server) handleScoreQuery(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("rolls")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, scoreResp{Err: "missing param rolls"})
		return
	}
	rolls, err := input.ParseRolls(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, scoreResp{Err: err.Error()})
		return
	}
	s.serveScore(w, r, rolls)
}

// POST /score {"rolls": [10, 7, 3, ...]}
func (s *Server) handleScoreBody(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, scoreResp{Err: "invalid body: " + err.Error()})
		return
	}
	s.serveScore(w, r, req.Rolls)
}

func (s *Server) serveScore(w http.ResponseWriter, r *http.Request, rolls []int) {
	_, span := s.tracer.Start(r.Context(), "score.http")
	defer span.End()
	span.SetAttributes(attribute.Int("bowling.rolls", len(rolls)))

	total, frames, err := s.score(rolls)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		writeJSON(w, httpStatus(err), scoreResp{Err: err.Error()})
		return
	}
	span.SetAttributes(attribute.Int("bowling.score", total))
	writeJSON(w, http.StatusOK, scoreResp{Score: total, Frames: frames})
}

func httpStatus(err error) int {
	switch {
	case badInput(err):
		return http.StatusBadRequest
	case errors.Is(err, bowling.ErrIncompleteGame), errors.Is(err, bowling.ErrNoRolls):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
