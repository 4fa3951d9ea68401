package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tusshar172004/Code-Pod/internal/compile"
	"github.com/Tusshar172004/Code-Pod/internal/errs"
	"github.com/Tusshar172004/Code-Pod/internal/model"
)

// CompileHandler handles POST /compile.
type CompileHandler struct {
	runner compile.Runner
	logger *zap.Logger
}

// NewCompileHandler creates a compile handler.
func NewCompileHandler(runner compile.Runner, logger *zap.Logger) *CompileHandler {
	return &CompileHandler{runner: runner, logger: logger}
}

// Compile godoc
// POST /compile
func (h *CompileHandler) Compile(c *gin.Context) {
	var req model.CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	output, err := h.runner.Execute(c.Request.Context(), req.Code, req.Language)
	if err != nil {
		if errors.Is(err, errs.ErrUnknownLanguage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported language"})
			return
		}
		h.logger.Warn("compile failed", zap.String("language", req.Language), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compile code"})
		return
	}
	c.JSON(http.StatusOK, model.CompileResponse{Output: output})
}
