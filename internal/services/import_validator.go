// internal/services/import_validator.go
package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Column names the upload contract fixes, wording- and case-exact.
const (
	colCategoryName        = "Category Name"
	colCategoryDescription = "Category Description"
	colProductName         = "Product Name"
	colProductDescription  = "Product Description"
	colProductPrice        = "Product Price"
	colAvailableUnits      = "Available Units"
	colSoldUnits           = "Sold Units"
)

// ImportRecord is one CSV row after validation.
type ImportRecord struct {
	CategoryName        string
	CategoryDescription string
	ProductName         string
	ProductDescription  string
	Price               float64
	Available           int
	Sold                int
}

// RowValidationError names every offending field in a row. It is row-scoped:
// the coordinator skips the row and moves on.
type RowValidationError struct {
	Fields []string
}

func (e *RowValidationError) Error() string {
	return fmt.Sprintf("invalid row: %s", strings.Join(e.Fields, ", "))
}

// ValidateImportRow checks one raw row against the import schema. It is pure:
// no storage access, no side effects.
func ValidateImportRow(row map[string]string) (*ImportRecord, error) {
	invalid := make(map[string]bool)

	requireString := func(column string) string {
		value := strings.TrimSpace(row[column])
		if value == "" {
			invalid[column] = true
		}
		return value
	}

	record := &ImportRecord{
		CategoryName:        requireString(colCategoryName),
		CategoryDescription: requireString(colCategoryDescription),
		ProductName:         requireString(colProductName),
		ProductDescription:  requireString(colProductDescription),
	}

	// Numeric fields must parse and be non-negative. A bad value fails the
	// row; it never falls back to zero.
	price, err := strconv.ParseFloat(strings.TrimSpace(row[colProductPrice]), 64)
	if err != nil || price < 0 {
		invalid[colProductPrice] = true
	}
	record.Price = price

	available, err := strconv.Atoi(strings.TrimSpace(row[colAvailableUnits]))
	if err != nil || available < 0 {
		invalid[colAvailableUnits] = true
	}
	record.Available = available

	sold, err := strconv.Atoi(strings.TrimSpace(row[colSoldUnits]))
	if err != nil || sold < 0 {
		invalid[colSoldUnits] = true
	}
	record.Sold = sold

	if len(invalid) > 0 {
		fields := make([]string, 0, len(invalid))
		for field := range invalid {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		return nil, &RowValidationError{Fields: fields}
	}

	return record, nil
}
