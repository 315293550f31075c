package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func setupRecoveryRouter(logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(logger))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestRecovery_PassesThroughWithoutPanic(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupRecoveryRouter(newTestLogger(&logBuf))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", w.Body.String())
	}
}

func TestRecovery_JSONEnvelopeForNonHTMLClients(t *testing.T) {
	tests := []struct {
		name   string
		accept string
	}{
		{name: "explicit json", accept: "application/json"},
		{name: "no accept header", accept: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			r := setupRecoveryRouter(newTestLogger(&logBuf))

			req := httptest.NewRequest(http.MethodGet, "/panic", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", w.Code)
			}

			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %s", w.Body.String())
			}
			if code, ok := body["code"].(float64); !ok || int(code) != 500 {
				t.Errorf("code = %v, want 500", body["code"])
			}
			if msg, _ := body["message"].(string); msg != "internal server error" {
				t.Errorf("message = %v, want internal server error", body["message"])
			}
			if val, exists := body["data"]; !exists || val != nil {
				t.Errorf("data = %v, want explicit null", val)
			}
		})
	}
}

func TestRecovery_HTMLClientWithoutRendererGetsPlainText(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupRecoveryRouter(newTestLogger(&logBuf))

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	// No HTMLRender is configured, so the 500 page render falls back.
	if !strings.Contains(w.Body.String(), "500") {
		t.Errorf("body = %q, want it to mention 500", w.Body.String())
	}
}

func TestRecovery_LogsPanicValueAndStack(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupRecoveryRouter(newTestLogger(&logBuf))

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("Accept", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := logBuf.String()
	for _, want := range []string{"panic recovered", "boom", "/panic", "stack"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestRecovery_AbortsChainAfterPanic(t *testing.T) {
	var logBuf bytes.Buffer

	afterPanic := false
	r := gin.New()
	r.Use(Recovery(newTestLogger(&logBuf)))
	r.GET("/panic", func(c *gin.Context) {
		panic("abort test")
	}, func(c *gin.Context) {
		afterPanic = true
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if afterPanic {
		t.Error("handlers after the panicking one must not run")
	}
}

func TestRecovery_NilLoggerUsesDefault(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(nil))
	r.GET("/panic", func(c *gin.Context) {
		panic("nil logger")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
