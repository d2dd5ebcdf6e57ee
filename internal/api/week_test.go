package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWeekReturnsSevenDays(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, response := doJSON(t, router, http.MethodGet, "/api/v1/week/2024/10", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	days := response["days"].([]interface{})
	require.Len(t, days, 7)
	first := days[0].(map[string]interface{})["day"].(map[string]interface{})
	assert.Equal(t, "2024-03-04", first["date"])
}

func TestGetWeekInvalidParams(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/v1/week/2023/53", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/week/abc/1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/week/2024/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCurrentWeek(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, response := doJSON(t, router, http.MethodGet, "/api/v1/week/current", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["days"].([]interface{}), 7)
}

func TestGetNextWeekWrapsYearBoundary(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, response := doJSON(t, router, http.MethodGet, "/api/v1/week/2020/53/next?delta=1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), response["week"])
	assert.Equal(t, float64(2021), response["year"])

	w, response = doJSON(t, router, http.MethodGet, "/api/v1/week/2021/1/next?delta=-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(53), response["week"])
	assert.Equal(t, float64(2020), response["year"])
}

func TestGetNextWeekDefaultsToOne(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, response := doJSON(t, router, http.MethodGet, "/api/v1/week/2024/10/next", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(11), response["week"])

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/week/2024/10/next?delta=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
