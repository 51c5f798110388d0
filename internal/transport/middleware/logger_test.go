package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/tl/gu/namaste", nil)
	rec := httptest.NewRecorder()

	Logger(logger)(handler).ServeHTTP(rec, req)

	out := buf.String()
	for _, want := range []string{"http.request", "method=GET", "/tl/gu/namaste", "status=404"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got %q", want, out)
		}
	}
}

func TestLogger_ServerErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	Logger(logger)(handler).ServeHTTP(rec, req)

	if !strings.Contains(buf.String(), "level=ERROR") {
		t.Errorf("expected ERROR level for 5xx, got %q", buf.String())
	}
}

func TestLogger_DefaultStatusOK(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	// Handler writes a body without an explicit WriteHeader.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	Logger(logger)(handler).ServeHTTP(rec, req)

	if !strings.Contains(buf.String(), "status=200") {
		t.Errorf("expected status=200, got %q", buf.String())
	}
}
