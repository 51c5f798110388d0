package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

func TestHealth(t *testing.T) {
	h := NewHealthHandler(staticLister{dirs: []domain.Direction{domain.DirectionRomanToGujarati}}, "1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, []string{"en2gu"}, resp.EnginesLoaded)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestHealth_NoEnginesStillOK(t *testing.T) {
	h := NewHealthHandler(staticLister{}, "dev")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.EnginesLoaded)
}

func TestHome(t *testing.T) {
	h := NewHealthHandler(staticLister{}, "dev")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Home(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gujarati-xlit")
	assert.Contains(t, rec.Body.String(), "/tl/gu/{word}")
}
