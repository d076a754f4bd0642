package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/seadmustafa/FXAPI/internal/core/ports/services"
	"github.com/seadmustafa/FXAPI/internal/dto"
	"github.com/seadmustafa/FXAPI/internal/middleware"
)

// bulkFileField is the multipart field carrying the CSV upload.
const bulkFileField = "file"

type bulkHandler struct {
	bulkService portssvc.BulkConversionSvc
}

func registerBulkRoutes(rg *gin.RouterGroup, bulkService portssvc.BulkConversionSvc) {
	h := &bulkHandler{bulkService: bulkService}
	rg.POST("/bulk-convert", h.processFile)
}

// processFile godoc
// @Summary Convert a CSV file
// @Description Converts every row of an uploaded CSV (transactionId, sourceCurrency, targetCurrency, amount[, conversionDate]). Failing rows are reported without aborting the batch.
// @Tags conversions
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "CSV file"
// @Success 200 {object} dto.BulkConversionResponse
// @Failure 400 {object} dto.ErrorResponse "Missing, empty or unreadable file"
// @Failure 500 {object} dto.ErrorResponse "Failed to process bulk file"
// @Router /bulk-convert [post]
func (h *bulkHandler) processFile(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	header, err := c.FormFile(bulkFileField)
	if err != nil {
		badRequest(c, logger, "A CSV file is required in form field '"+bulkFileField+"'")
		return
	}
	logger = logger.With(slog.String("filename", header.Filename), slog.Int64("size_bytes", header.Size))
	logger.Info("Received bulk conversion file")

	file, err := header.Open()
	if err != nil {
		badRequest(c, logger, "Uploaded file could not be opened")
		return
	}
	defer file.Close()

	result, err := h.bulkService.ProcessBatch(c.Request.Context(), file)
	if err != nil {
		respondError(c, logger, "process bulk file", err)
		return
	}

	logger.Info("Bulk file processed",
		slog.Int("total", result.TotalRecords),
		slog.Int("successful", result.SuccessfulCount),
		slog.Int("failed", result.FailedCount),
	)
	c.JSON(http.StatusOK, dto.ToBulkConversionResponse(result))
}
