// internal/handlers/import.go
package handlers

import (
	"errors"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stocklane/catalog-admin/internal/services"
	"github.com/stocklane/catalog-admin/internal/utils"
)

type ImportHandler struct {
	importService *services.ImportService
}

func NewImportHandler(importService *services.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// POST /import/upload (Master only)
//
// The upload lands in a scratch file owned by this request. The deferred
// remove runs on every exit path, including batch-fatal rejections.
func (h *ImportHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "CSV file is required")
		return
	}

	scratch, err := os.CreateTemp("", "csv-import-*.csv")
	if err != nil {
		logrus.WithError(err).Error("Failed to create scratch file for import")
		utils.ServerErrorResponse(c)
		return
	}
	scratchPath := scratch.Name()
	scratch.Close()
	defer func() {
		if err := os.Remove(scratchPath); err != nil {
			logrus.WithError(err).WithField("path", scratchPath).Warn("Failed to remove import scratch file")
		}
	}()

	if err := c.SaveUploadedFile(fileHeader, scratchPath); err != nil {
		logrus.WithError(err).Error("Failed to store uploaded CSV")
		utils.ServerErrorResponse(c)
		return
	}

	f, err := os.Open(scratchPath)
	if err != nil {
		logrus.WithError(err).Error("Failed to reopen uploaded CSV")
		utils.ServerErrorResponse(c)
		return
	}
	defer f.Close()

	summary, err := h.importService.ImportCSV(c.Request.Context(), f)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTooFewRecords):
			utils.BadRequestResponse(c, services.ErrTooFewRecords.Error())
		case errors.Is(err, services.ErrParse):
			utils.BadRequestResponse(c, services.ErrParse.Error())
		default:
			logrus.WithError(err).Error("CSV import failed")
			utils.ServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   "CSV data uploaded successfully",
		"processed": summary.Processed,
		"skipped":   summary.Skipped,
	})
}
