// internal/services/helpers_test.go
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stocklane/catalog-admin/internal/cache"
	"github.com/stocklane/catalog-admin/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive across the
	// pool.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Inventory{},
	))

	return db
}

// fakeCache is an in-memory cache.Store that records invalidations so tests
// can assert how often each key was purged.
type fakeCache struct {
	mu      sync.Mutex
	data    map[cache.Key]string
	deletes map[cache.Key]int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		data:    make(map[cache.Key]string),
		deletes: make(map[cache.Key]int),
	}
}

func (f *fakeCache) Get(_ context.Context, key cache.Key) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.data[key]
	return value, ok
}

func (f *fakeCache) Set(_ context.Context, key cache.Key, value string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

func (f *fakeCache) Delete(_ context.Context, keys ...cache.Key) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.data, key)
		f.deletes[key]++
	}
}

func (f *fakeCache) deleteCount(key cache.Key) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deletes[key]
}

// importRow is one CSV data row in column order.
type importRow struct {
	categoryName        string
	categoryDescription string
	productName         string
	productDescription  string
	price               string
	available           string
	sold                string
}

func validRow(n int) importRow {
	return importRow{
		categoryName:        fmt.Sprintf("Category %d", n%4),
		categoryDescription: "Imported category",
		productName:         fmt.Sprintf("Product %d", n),
		productDescription:  "Imported product",
		price:               "19.99",
		available:           "25",
		sold:                "3",
	}
}

func buildCSV(rows []importRow) string {
	var b strings.Builder
	b.WriteString("Category Name,Category Description,Product Name,Product Description,Product Price,Available Units,Sold Units\n")
	for _, r := range rows {
		b.WriteString(strings.Join([]string{
			r.categoryName, r.categoryDescription,
			r.productName, r.productDescription,
			r.price, r.available, r.sold,
		}, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func validRows(n int) []importRow {
	rows := make([]importRow, n)
	for i := range rows {
		rows[i] = validRow(i)
	}
	return rows
}
