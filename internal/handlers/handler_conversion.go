package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/seadmustafa/FXAPI/internal/core/ports/services"
	"github.com/seadmustafa/FXAPI/internal/dto"
	"github.com/seadmustafa/FXAPI/internal/middleware"
)

const (
	defaultHistoryPage = 0
	defaultHistorySize = 20
	historyDateLayout  = "2006-01-02"
)

type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{conversionService: cs}
}

// registerConversionRoutes registers the single conversion and history routes.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := newConversionHandler(conversionService)

	convert := rg.Group("/convert")
	{
		convert.POST("", h.convert)
		convert.GET("/history", h.getHistory)
	}
}

// convert godoc
// @Summary Convert an amount
// @Description Converts an amount between two currencies at the current rate and records the conversion
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConversionRequest true "Conversion details"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or rate not available"
// @Failure 500 {object} dto.ErrorResponse "Failed to record conversion"
// @Failure 502 {object} dto.ErrorResponse "Upstream returned malformed rates"
// @Failure 503 {object} dto.ErrorResponse "Upstream rate service unavailable"
// @Router /convert [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, bindingMessage(err))
		return
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		badRequest(c, logger, "Invalid conversion date: '"+req.ConversionDate+"'")
		return
	}

	logger = logger.With(slog.String("source", req.SourceCurrency), slog.String("target", req.TargetCurrency))
	logger.Info("Received request to convert", slog.String("amount", domainReq.Amount.String()))

	record, err := h.conversionService.Convert(c.Request.Context(), domainReq)
	if err != nil {
		respondError(c, logger, "convert amount", err)
		return
	}

	logger.Info("Conversion recorded", slog.String("transaction_id", record.TransactionID))
	c.JSON(http.StatusOK, dto.ToConversionResponse(record))
}

// getHistory godoc
// @Summary List conversions of one day
// @Description Returns the conversions recorded on a UTC calendar date, newest first
// @Tags conversions
// @Produce  json
// @Param   transactionDate query string true  "Date (YYYY-MM-DD)"
// @Param   page            query int    false "Page number, from 0" default(0)
// @Param   size            query int    false "Page size, 1 to 100" default(20)
// @Success 200 {object} dto.HistoryPageResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve conversion history"
// @Router /convert/history [get]
func (h *conversionHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	rawDate := c.Query("transactionDate")
	if rawDate == "" {
		badRequest(c, logger, "Transaction date is required")
		return
	}
	date, err := time.Parse(historyDateLayout, rawDate)
	if err != nil {
		badRequest(c, logger, "Invalid transaction date: '"+rawDate+"'. Expected YYYY-MM-DD.")
		return
	}
	page, err := intQuery(c, "page", defaultHistoryPage)
	if err != nil {
		badRequest(c, logger, "Page must be an integer")
		return
	}
	size, err := intQuery(c, "size", defaultHistorySize)
	if err != nil {
		badRequest(c, logger, "Size must be an integer")
		return
	}

	logger = logger.With(slog.String("transaction_date", rawDate), slog.Int("page", page), slog.Int("size", size))
	logger.Info("Received request to list conversion history")

	result, err := h.conversionService.GetConversionHistory(c.Request.Context(), date, page, size)
	if err != nil {
		respondError(c, logger, "retrieve conversion history", err)
		return
	}

	logger.Info("Conversion history retrieved", slog.Int("count", len(result.Items)))
	c.JSON(http.StatusOK, dto.ToHistoryPageResponse(result))
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
