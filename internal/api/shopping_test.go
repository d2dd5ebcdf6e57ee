package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBadge(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, response := doJSON(t, router, http.MethodGet, "/api/v1/shopping/badge", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), response["extra_items"])
	assert.Equal(t, float64(0), response["week_days"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/extra-items", map[string]interface{}{
		"name":   "Sponges",
		"amount": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, response = doJSON(t, router, http.MethodGet, "/api/v1/shopping/badge", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), response["extra_items"])
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, response := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", response["status"])
}
