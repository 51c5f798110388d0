package rest

import (
	"net/http"
	"time"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

// engineLister reports which directions have a constructed engine.
type engineLister interface {
	Loaded() []domain.Direction
}

// HealthHandler serves the health check and landing endpoints.
type HealthHandler struct {
	engines engineLister
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(engines engineLister, version string) *HealthHandler {
	return &HealthHandler{engines: engines, version: version}
}

// HealthResponse is the JSON response for /health.
type HealthResponse struct {
	Status        string    `json:"status"`
	Service       string    `json:"service"`
	Version       string    `json:"version,omitempty"`
	EnginesLoaded []string  `json:"engines_loaded"`
	Timestamp     time.Time `json:"timestamp"`
}

// Health handles GET /health. The process is healthy as soon as it can
// serve requests; engines load lazily, so an empty engines_loaded list
// is still status ok.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	loaded := h.engines.Loaded()
	names := make([]string, len(loaded))
	for i, d := range loaded {
		names[i] = d.String()
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Service:       "gujarati-xlit",
		Version:       h.version,
		EnginesLoaded: names,
		Timestamp:     time.Now(),
	})
}

// Home handles GET /: a short service description with the available
// routes.
func (h *HealthHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "gujarati-xlit",
		"version": h.version,
		"routes": map[string]string{
			"GET /tl/gu/{word}":          "Roman word to Gujarati candidates",
			"GET /rtl/gu/{word}":         "Gujarati word to Roman candidates",
			"POST /sentence/{direction}": "sentence transliteration, direction en2gu or gu2en",
			"GET /health":                "health check",
		},
	})
}
