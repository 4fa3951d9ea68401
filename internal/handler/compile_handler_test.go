package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tusshar172004/Code-Pod/internal/errs"
	"github.com/Tusshar172004/Code-Pod/internal/handler"
)

type stubRunner struct {
	output string
	err    error
	calls  int
}

func (s *stubRunner) Execute(ctx context.Context, code, language string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

func newCompileRouter(runner *stubRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/compile", handler.NewCompileHandler(runner, zap.NewNop()).Compile)
	return r
}

func TestCompileHandler(t *testing.T) {
	t.Run("returns upstream output", func(t *testing.T) {
		runner := &stubRunner{output: "5"}
		r := newCompileRouter(runner)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/compile",
			strings.NewReader(`{"code":"print(2+3)","language":"python3"}`))
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "5", resp["output"])
		assert.Equal(t, 1, runner.calls)
	})

	t.Run("unsupported language is a client error", func(t *testing.T) {
		runner := &stubRunner{err: errs.ErrUnknownLanguage}
		r := newCompileRouter(runner)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/compile",
			strings.NewReader(`{"code":"x","language":"brainfuck"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("upstream failure maps to a single generic error", func(t *testing.T) {
		runner := &stubRunner{err: errs.ErrCompileFailed}
		r := newCompileRouter(runner)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/compile",
			strings.NewReader(`{"code":"x","language":"python3"}`))
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		var resp map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Failed to compile code", resp["error"])
		assert.Equal(t, 1, runner.calls)
	})

	t.Run("missing language rejected before the runner", func(t *testing.T) {
		runner := &stubRunner{output: "5"}
		r := newCompileRouter(runner)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(`{"code":"x"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, runner.calls)
	})

	t.Run("empty script is forwarded", func(t *testing.T) {
		runner := &stubRunner{output: ""}
		r := newCompileRouter(runner)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/compile",
			strings.NewReader(`{"code":"","language":"python3"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, runner.calls)
	})
}
