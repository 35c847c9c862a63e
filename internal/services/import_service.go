// internal/services/import_service.go
package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stocklane/catalog-admin/internal/cache"
	"github.com/stocklane/catalog-admin/internal/database"
)

// MinImportRows is the smallest batch the pipeline accepts.
const MinImportRows = 20

// Batch-fatal errors. Their text is the wire contract.
var (
	ErrParse         = errors.New("Failed to parse CSV file")
	ErrTooFewRecords = errors.New("CSV must contain at least 20 entries")
)

// ImportSummary distinguishes fully processed rows from skipped ones, so a
// caller can spot a batch that nominally succeeded but dropped most rows.
type ImportSummary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

type ImportService struct {
	db    *gorm.DB
	cache cache.Store
}

func NewImportService(db *gorm.DB, store cache.Store) *ImportService {
	return &ImportService{
		db:    db,
		cache: store,
	}
}

// ImportCSV drives one upload through the pipeline: parse, minimum-size
// check, then validate and reconcile each row in file order. Row failures are
// counted, not raised; only a malformed file or a too-small batch rejects the
// upload, and both happen before any storage mutation.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	rows, err := parseRows(r)
	if err != nil {
		return nil, err
	}

	// The count check runs only after parsing completes.
	if len(rows) < MinImportRows {
		return nil, ErrTooFewRecords
	}

	summary := &ImportSummary{}
	for i, row := range rows {
		record, err := ValidateImportRow(row)
		if err != nil {
			logrus.WithError(err).WithField("row", i+1).Warn("Skipping invalid import row")
			summary.Skipped++
			continue
		}

		err = database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
			_, err := reconcileRecord(tx, record)
			return err
		})
		if err != nil {
			logrus.WithError(err).WithField("row", i+1).Warn("Skipping unreconcilable import row")
			summary.Skipped++
			continue
		}

		summary.Processed++
	}

	// One invalidation per completed batch, even if every row was skipped.
	s.cache.Delete(ctx, cache.KeyProducts, cache.KeyCategories, cache.KeyInventory)

	return summary, nil
}

// parseRows reads the whole CSV so the batch can be sized before any row is
// processed. The header keys each row; rows keep file order.
func parseRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var rows []map[string]string
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		row := make(map[string]string, len(header))
		for i, column := range header {
			row[column] = fields[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}
