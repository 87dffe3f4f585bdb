package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/studysnap/aicore/internal/config"
	"github.com/studysnap/aicore/internal/http/middleware"
	"github.com/studysnap/aicore/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      config.ServerConfig
	handler     *Handler
	middlewares middleware.Middleware
	srv         *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.ServerConfig,
	handler *Handler,
	middlewares middleware.Middleware,
) *Server {
	return &Server{
		config:      *cfg,
		handler:     handler,
		middlewares: middlewares,
		srv:         nil,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Register routes.
	mux.HandleFunc("POST /v1/summary", s.handler.HandleSummary)
	mux.HandleFunc("POST /v1/questions", s.handler.HandleQuestions)
	mux.HandleFunc("POST /v1/flashcards", s.handler.HandleFlashcards)
	mux.HandleFunc("POST /v1/topics/guide", s.handler.HandleTopicGuide)
	mux.HandleFunc("POST /v1/topics/questions", s.handler.HandleTopicQuestions)
	mux.HandleFunc("POST /v1/topics/flashcards", s.handler.HandleTopicFlashcards)
	mux.HandleFunc("POST /v1/chat", s.handler.HandleChat)
	mux.HandleFunc("POST /v1/vision", s.handler.HandleVision)
	mux.HandleFunc("POST /v1/convert", s.handler.HandleConvert)
	mux.HandleFunc("GET /v1/quick-prompts", s.handler.HandleQuickPrompts)
	mux.HandleFunc("POST /v1/fallback-notice/pop", s.handler.HandleNoticePop)
	mux.HandleFunc("POST /v1/fallback-notice/clear", s.handler.HandleNoticeClear)
	mux.HandleFunc("GET /v1/fallback-notice/preview", s.handler.HandleNoticePreview)
	mux.HandleFunc("GET /v1/settings", s.handler.HandleGetSettings)
	mux.HandleFunc("PUT /v1/settings", s.handler.HandleUpdateSettings)
	mux.HandleFunc("/health", s.handler.HandleHealth)

	// Apply middleware chain.
	handlerWithMiddleware := s.middlewares(mux)

	// Create server with timeouts.
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      handlerWithMiddleware,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
	}

	ctx := context.Background()
	observability.FromContext(ctx).Info("starting HTTP server", observability.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
