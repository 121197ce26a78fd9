// Package server exposes the verification service over HTTP.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/service"
)

// Server is the HTTP API in front of the verification service
type Server struct {
	svc      *service.Service
	llmReady bool
	logger   *zap.Logger
	router   *gin.Engine
}

// New creates the server and registers all routes. llmReady reports
// whether a completion provider is configured; verification endpoints
// refuse with 503 without one.
func New(svc *service.Service, llmReady bool, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		svc:      svc,
		llmReady: llmReady,
		logger:   logger,
		router:   gin.New(),
	}
	s.router.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/v1")
	v1.POST("/verify", s.handleVerifyText)
	v1.POST("/verify/url", s.handleVerifyURL)
	v1.GET("/verifications/:id", s.handleGetVerification)
}

// Handler returns the http.Handler for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the listener fails
func (s *Server) Run(cfg model.ServerConfig) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.logger.Info("api listening", zap.String("addr", addr))
	return s.router.Run(addr)
}
