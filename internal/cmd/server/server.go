// Package server implements the server command: it serves the scorer over
// HTTP and gRPC and reloads rules files when they change.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/xtding233/bowling-backend/internal/platform/config"
	"github.com/xtding233/bowling-backend/internal/rules"
	"github.com/xtding233/bowling-backend/internal/server"
)

const scorerService = "bowling.v1.Scorer"

// Config holds server command configuration.
type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR" envDefault:":8080"`
	GRPCAddr      string        `env:"GRPC_ADDR" envDefault:":9090"`
	RulesDir      string        `env:"RULES_DIR"`
	Profile       string        `env:"PROFILE"`
	WatchInterval time.Duration `env:"WATCH_INTERVAL" envDefault:"2s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC listen address")
	fs.StringVar(&cfg.RulesDir, "rules-dir", cfg.RulesDir, "directory holding default.yaml and profiles/")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "rules profile to apply over default.yaml")
	fs.DurationVar(&cfg.WatchInterval, "watch-interval", cfg.WatchInterval, "how often to poll rules files")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.HTTPAddr == "" && cfg.GRPCAddr == "" {
		return Config{}, errors.New("at least one of http-addr or grpc-addr is required")
	}
	return cfg, nil
}

// Service owns the listeners of one running server.
type Service struct {
	srv    *server.Server
	logger *log.Logger

	httpListener net.Listener
	httpServer   *http.Server

	grpcListener net.Listener
	grpcServer   *grpc.Server
	health       *health.Server

	watcher *rules.FileWatcher
}

// New resolves rules and opens the listeners. Nothing is served until Serve.
func New(cfg Config, logger *log.Logger) (*Service, error) {
	if logger == nil {
		logger = log.Default()
	}
	var loader *rules.Loader
	if cfg.RulesDir != "" {
		loader = rules.NewLoader(cfg.RulesDir)
	}
	srv, err := server.New(loader, cfg.Profile, logger)
	if err != nil {
		return nil, err
	}

	s := &Service{srv: srv, logger: logger}
	if cfg.HTTPAddr != "" {
		s.httpListener, err = net.Listen("tcp", cfg.HTTPAddr)
		if err != nil {
			return nil, fmt.Errorf("listen on http addr %s: %w", cfg.HTTPAddr, err)
		}
		s.httpServer = &http.Server{Handler: srv.Router(), ReadHeaderTimeout: 5 * time.Second}
	}
	if cfg.GRPCAddr != "" {
		s.grpcListener, err = net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			s.closeListeners()
			return nil, fmt.Errorf("listen on grpc addr %s: %w", cfg.GRPCAddr, err)
		}
		s.grpcServer = grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
		s.health = health.NewServer()
		srv.RegisterGRPC(s.grpcServer)
		grpc_health_v1.RegisterHealthServer(s.grpcServer, s.health)
		s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
		s.health.SetServingStatus(scorerService, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	if files := srv.WatchFiles(); len(files) > 0 {
		s.watcher = rules.NewFileWatcher(files, cfg.WatchInterval, func(path string) {
			if err := srv.Reload(); err != nil {
				logger.Printf("rules reload after %s changed: %v", path, err)
			}
		})
	}
	return s, nil
}

// HTTPAddr returns the bound HTTP address, or "" when HTTP is disabled.
func (s *Service) HTTPAddr() string {
	if s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the bound gRPC address, or "" when gRPC is disabled.
func (s *Service) GRPCAddr() string {
	if s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// Run creates a service and serves it until ctx ends.
func Run(ctx context.Context, cfg Config, errOut io.Writer) error {
	if errOut == nil {
		errOut = io.Discard
	}
	s, err := New(cfg, log.New(errOut, "", log.LstdFlags))
	if err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Serve blocks until ctx ends or a listener fails, then stops both servers.
func (s *Service) Serve(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Start()
		defer s.watcher.Stop()
	}

	httpErr := make(chan error, 1)
	if s.httpServer != nil {
		s.logger.Printf("bowling HTTP server listening at %v", s.httpListener.Addr())
		go func() { httpErr <- s.httpServer.Serve(s.httpListener) }()
	}
	grpcErr := make(chan error, 1)
	if s.grpcServer != nil {
		s.logger.Printf("bowling gRPC server listening at %v", s.grpcListener.Addr())
		go func() { grpcErr <- s.grpcServer.Serve(s.grpcListener) }()
	}

	var err error
	select {
	case <-ctx.Done():
	case e := <-httpErr:
		if !errors.Is(e, http.ErrServerClosed) {
			err = fmt.Errorf("serve HTTP: %w", e)
		}
	case e := <-grpcErr:
		if e != nil && !errors.Is(e, grpc.ErrServerStopped) {
			err = fmt.Errorf("serve gRPC: %w", e)
		}
	}
	s.shutdown()
	return err
}

func (s *Service) shutdown() {
	if s.grpcServer != nil {
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
	}
	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Service) closeListeners() {
	if s.httpListener != nil {
		_ = s.httpListener.Close()
	}
	if s.grpcListener != nil {
		_ = s.grpcListener.Close()
	}
}
