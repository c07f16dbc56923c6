package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newChainedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Same registration order as the application router.
	r := gin.New()
	r.Use(RequestID())
	r.Use(Logger(logger))
	r.Use(ErrorHandler(logger))
	r.Use(Recovery(logger))
	return r
}

func TestPanicRendersErrorEnvelope(t *testing.T) {
	r := newChainedRouter(t)
	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body struct {
		Error     string `json:"error"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
	if body.Error == "" {
		t.Error("public error message missing")
	}
	if body.RequestID == "" {
		t.Error("request_id missing")
	}
	if body.Error == "kaboom" {
		t.Error("panic value leaked into the public message")
	}
}

func TestFailedHandlerRendersErrorEnvelope(t *testing.T) {
	r := newChainedRouter(t)
	r.GET("/fail", func(c *gin.Context) {
		Fail(c, errors.New("db exploded"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if body := w.Body.String(); body == "" {
		t.Fatal("empty body, want JSON envelope")
	}
}
