package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/models"
)

func vitalsTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tenant{}, &models.Salon{}, &models.WebVital{}))

	require.NoError(t, db.Create(&models.Salon{
		TenantID: 1,
		Name:     "Glow Studio",
		Slug:     "glow-studio",
	}).Error)

	r := gin.New()
	r.POST("/api/public/:slug/vitals", NewWebVitalsHandler(db).Ingest)
	return r, db
}

func TestWebVitalsIngest(t *testing.T) {
	r, db := vitalsTestRouter(t)

	t.Run("stores a valid metric", func(t *testing.T) {
		body := `{"metric":"lcp","value":1830.5,"page":"/glow-studio","session_id":"abc"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/public/glow-studio/vitals", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)

		var row models.WebVital
		require.NoError(t, db.First(&row).Error)
		assert.Equal(t, "LCP", row.Metric)
		assert.InDelta(t, 1830.5, row.Value, 0.001)
		assert.Equal(t, "/glow-studio", row.Page)
	})

	t.Run("unknown salon", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/public/nope/vitals", strings.NewReader(`{"metric":"LCP","value":1}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown metric name", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/public/glow-studio/vitals", strings.NewReader(`{"metric":"SPEED","value":1}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
