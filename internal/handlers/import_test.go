// internal/handlers/import_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stocklane/catalog-admin/internal/cache"
	"github.com/stocklane/catalog-admin/internal/models"
	"github.com/stocklane/catalog-admin/internal/services"
)

func newImportRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Inventory{},
	))

	handler := NewImportHandler(services.NewImportService(db, &noopCache{}))

	router := gin.New()
	router.POST("/v1/import/upload", handler.Upload)
	return router, db
}

// noopCache stands in for Redis; the handler tests only care about the
// database side effects.
type noopCache struct{}

func (noopCache) Get(context.Context, cache.Key) (string, bool)         { return "", false }
func (noopCache) Set(context.Context, cache.Key, string, time.Duration) {}
func (noopCache) Delete(context.Context, ...cache.Key)                  {}

func csvBody(t *testing.T, rows int) (*bytes.Buffer, string) {
	t.Helper()

	var csv strings.Builder
	csv.WriteString("Category Name,Category Description,Product Name,Product Description,Product Price,Available Units,Sold Units\n")
	for i := 0; i < rows; i++ {
		csv.WriteString(fmt.Sprintf("Category %d,Imported,Product %d,Imported,19.99,25,3\n", i%4, i))
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "catalog.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv.String()))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadMissingFile(t *testing.T) {
	router, _ := newImportRouter(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/import/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"CSV file is required"}`, rec.Body.String())
}

func TestUploadRejectsSmallBatch(t *testing.T) {
	router, db := newImportRouter(t)

	body, contentType := csvBody(t, 19)
	req := httptest.NewRequest(http.MethodPost, "/v1/import/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"CSV must contain at least 20 entries"}`, rec.Body.String())

	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestUploadSuccess(t *testing.T) {
	router, db := newImportRouter(t)

	body, contentType := csvBody(t, 20)
	req := httptest.NewRequest(http.MethodPost, "/v1/import/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message   string `json:"message"`
		Processed int    `json:"processed"`
		Skipped   int    `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CSV data uploaded successfully", resp.Message)
	assert.Equal(t, 20, resp.Processed)
	assert.Equal(t, 0, resp.Skipped)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.EqualValues(t, 20, count)
}
