package rest

import (
	"encoding/json"
	"net/http"
	"time"
)

// endpoints is the route list echoed in 404 responses.
var endpoints = []string{
	"GET /",
	"GET /health",
	"GET /tl/gu/{word}",
	"GET /rtl/gu/{word}",
	"POST /sentence/{direction}",
}

// Routes assembles the HTTP route table. ServeMux's plain-text 404 and
// 405 responses are rewritten into the API's JSON envelope, with the
// available routes as the result.
func Routes(xlit *XlitHandler, health *HealthHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", health.Home)
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /tl/gu/{word}", xlit.Word)
	mux.HandleFunc("GET /rtl/gu/{word}", xlit.ReverseWord)
	mux.HandleFunc("POST /sentence/{direction}", xlit.Sentence)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(&routeErrorWriter{ResponseWriter: w, path: r.URL.Path}, r)
	})
}

// routeErrorWriter intercepts the mux's own 404 and 405 responses.
// Handler-written responses pass through untouched; none of them use
// those two codes.
type routeErrorWriter struct {
	http.ResponseWriter
	path      string
	status    int
	swallowed bool
}

func (w *routeErrorWriter) WriteHeader(code int) {
	if code == http.StatusNotFound || code == http.StatusMethodNotAllowed {
		w.status = code
		w.swallowed = true
		w.Header().Set("Content-Type", "application/json")
		w.ResponseWriter.WriteHeader(code)
		w.writeEnvelope()
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *routeErrorWriter) Write(b []byte) (int, error) {
	if w.swallowed {
		// Drop the mux's plain-text body; the envelope is already out.
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *routeErrorWriter) writeEnvelope() {
	msg := "route not found"
	if w.status == http.StatusMethodNotAllowed {
		msg = "method not allowed"
	}
	json.NewEncoder(w.ResponseWriter).Encode(envelope{ //nolint:errcheck
		Error:  msg,
		At:     time.Now().UnixMilli(),
		Input:  w.path,
		Result: endpoints,
	})
}
