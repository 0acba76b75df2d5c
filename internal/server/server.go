package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipegen/config"
	"github.com/pageza/recipegen/internal/api"
	"github.com/pageza/recipegen/internal/database"
	"github.com/pageza/recipegen/internal/document"
	"github.com/pageza/recipegen/internal/middleware"
	"github.com/pageza/recipegen/internal/router"
	"github.com/pageza/recipegen/internal/service"
	"github.com/pageza/recipegen/internal/session"
)

// Dependencies are the collaborators the server is assembled from
type Dependencies struct {
	Generator service.TextGenerator
	Archive   service.DocumentArchive
	Store     session.Store
	Redis     *redis.Client
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	redis  *redis.Client
}

// New builds the server from the configuration, connecting to the optional
// Redis and S3 backends. A Redis server that cannot be reached disables rate
// limiting rather than failing startup.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	generator, err := service.NewTextGenerator(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}

	deps := Dependencies{
		Generator: generator,
		Store:     session.NewMemoryStore(cfg.SessionTTL),
	}

	if cfg.ArchiveEnabled() {
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to configure document archive: %w", err)
		}
		deps.Archive = s3Config
	}

	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Printf("[Server] Warning: Failed to connect to Redis for rate limiting: %v", err)
		} else {
			deps.Redis = client
		}
	}

	return NewWithDependencies(cfg, deps)
}

// NewWithDependencies assembles the server from already constructed collaborators
func NewWithDependencies(cfg *config.Config, deps Dependencies) (*Server, error) {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store := deps.Store
	if store == nil {
		store = session.NewMemoryStore(cfg.SessionTTL)
	}

	recipes := service.NewRecipeService(deps.Generator, document.NewEmitter(cfg.PDFOutputPath), deps.Archive)
	handler := api.NewRecipeHandler(recipes, store)

	var limiter *middleware.RateLimiter
	if deps.Redis != nil {
		limiter = middleware.NewGenerationRateLimiter(deps.Redis, cfg.RateLimit)
	}

	engine, err := router.SetupRouter(cfg, handler, session.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL), limiter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	return &Server{
		router: engine,
		redis:  deps.Redis,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until the server is shut down
func (s *Server) Start() error {
	log.Printf("[Server] Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and releases backend connections
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
