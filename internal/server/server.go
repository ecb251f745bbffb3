// Package server exposes the scorer over HTTP and gRPC.
package server

import (
	"errors"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/xtding233/bowling-backend/internal/bowling"
	"github.com/xtding233/bowling-backend/internal/input"
	"github.com/xtding233/bowling-backend/internal/rules"
)

const tracerName = "github.com/xtding233/bowling-backend/internal/server"

// Server scores games with the current rules. Rules can be swapped while
// requests are in flight.
type Server struct {
	loader  *rules.Loader // nil means built-in defaults
	profile string
	logger  *log.Logger
	tracer  trace.Tracer

	mu    sync.RWMutex
	rules rules.Resolved
}

// New resolves the rules for profile and returns a ready server.
// A nil loader serves the built-in standard rules.
func New(loader *rules.Loader, profile string, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		loader:  loader,
		profile: profile,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
		rules:   rules.Defaults(),
	}
	if loader != nil {
		if err := s.Reload(); err != nil {
			return nil, err
		}
	} else if profile != "" {
		return nil, errors.New("a rules profile requires a rules directory")
	}
	return s, nil
}

// Reload drops cached rules files and resolves them again. On error the
// previous rules stay active.
func (s *Server) Reload() error {
	if s.loader == nil {
		return nil
	}
	s.loader.Invalidate()
	resolved, err := s.loader.Resolve(s.profile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rules = resolved
	s.mu.Unlock()
	s.logger.Printf("rules loaded: profile=%q version=%q tenth_frame=%s", resolved.Profile, resolved.Version, resolved.Scorer.TenthFrame)
	return nil
}

// Rules returns the active rule set.
func (s *Server) Rules() rules.Resolved {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules
}

// WatchFiles lists the rules files whose changes should trigger Reload.
func (s *Server) WatchFiles() []string {
	if s.loader == nil {
		return nil
	}
	return s.loader.Paths().Files(s.profile)
}

// score runs the active scorer and returns the total and its frames.
func (s *Server) score(rolls []int) (int, []bowling.Frame, error) {
	frames, err := s.Rules().Scorer.Frames(rolls)
	if err != nil {
		return 0, nil, err
	}
	return frames[len(frames)-1].Total, frames, nil
}

// badInput reports whether err was caused by malformed or out-of-range rolls,
// as opposed to a well-formed sequence that does not make a complete game.
func badInput(err error) bool {
	return errors.Is(err, bowling.ErrInvalidRoll) || errors.Is(err, input.ErrBadToken)
}
