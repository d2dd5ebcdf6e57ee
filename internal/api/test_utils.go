package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appconfig "github.com/dinnerplan/backend/config"
	"github.com/dinnerplan/backend/internal/database"
	"github.com/dinnerplan/backend/internal/models"
)

// setupTestRouter builds a router backed by a throwaway sqlite database.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := database.SQLiteDSN(filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Meal{},
		&models.Ingredient{},
		&models.Day{},
		&models.DayIngredient{},
		&models.ExtraItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	router := gin.New()
	SetupAPI(router, db, &appconfig.Config{}, nil, nil, zap.NewNop())
	return router, db
}

// doJSON performs a request with an optional JSON body and returns the
// recorder plus the decoded response object.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		_ = json.Unmarshal(w.Body.Bytes(), &response)
	}
	return w, response
}

// createTestMeal creates a meal over the API and returns its id.
func createTestMeal(t *testing.T, router *gin.Engine, name string, ingredients ...string) int {
	t.Helper()

	payload := map[string]interface{}{
		"name":  name,
		"image": "https://img.example/" + name + ".jpg",
	}
	var list []map[string]interface{}
	for _, ing := range ingredients {
		list = append(list, map[string]interface{}{"name": ing, "amount": 1})
	}
	payload["ingredients"] = list

	w, response := doJSON(t, router, http.MethodPost, "/api/v1/meals", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create test meal: status %d, body %s", w.Code, w.Body.String())
	}
	return int(response["id"].(float64))
}
