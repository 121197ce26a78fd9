package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/store"
)

// Text bounds match the pipeline's useful range: anything shorter has
// no claims worth extracting, anything longer gets truncated anyway.
type verifyTextRequest struct {
	Text     string `json:"text" binding:"required,min=10,max=50000"`
	URL      string `json:"url" binding:"omitempty,url"`
	Vertical string `json:"vertical"`
	Language string `json:"language"`
}

type verifyURLRequest struct {
	URL      string `json:"url" binding:"required,url"`
	Vertical string `json:"vertical"`
	Language string `json:"language"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"llm_configured": s.llmReady,
	})
}

func (s *Server) handleVerifyText(c *gin.Context) {
	if !s.requireLLM(c) {
		return
	}

	var req verifyTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	v, err := s.svc.VerifyText(c.Request.Context(), req.Text, req.URL,
		model.ParseVertical(req.Vertical), language(req.Language))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleVerifyURL(c *gin.Context) {
	if !s.requireLLM(c) {
		return
	}

	var req verifyURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	v, err := s.svc.VerifyURL(c.Request.Context(), req.URL,
		model.ParseVertical(req.Vertical), language(req.Language))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleGetVerification(c *gin.Context) {
	v, err := s.svc.GetVerification(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: "no verification with that ID",
		})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// requireLLM refuses verification requests when no completion
// provider is configured.
func (s *Server) requireLLM(c *gin.Context) bool {
	if s.llmReady {
		return true
	}
	c.JSON(http.StatusServiceUnavailable, errorResponse{
		Error:   "llm_not_configured",
		Message: "no completion provider configured; set GROQ_API_KEY or OPENAI_API_KEY",
	})
	return false
}

func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("request failed",
		zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}

func language(lang string) string {
	if lang == "" {
		return "en"
	}
	return lang
}
