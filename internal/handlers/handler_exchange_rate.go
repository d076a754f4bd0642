package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	portssvc "github.com/seadmustafa/FXAPI/internal/core/ports/services"
	"github.com/seadmustafa/FXAPI/internal/dto"
	"github.com/seadmustafa/FXAPI/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("/:base", h.getExchangeRates)
		exchangeRates.GET("/:base/:target", h.getExchangeRate)
	}
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Resolves the current rate between two currencies, crossing through EUR when neither side is EUR
// @Tags exchange rates
// @Produce  json
// @Param   base   path string true "Base currency code (3 letters)" MinLength(3) MaxLength(3)
// @Param   target path string true "Target currency code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid currency code or rate not available"
// @Failure 502 {object} dto.ErrorResponse "Upstream returned malformed rates"
// @Failure 503 {object} dto.ErrorResponse "Upstream rate service unavailable"
// @Router /exchange-rates/{base}/{target} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	base := c.Param("base")
	target := c.Param("target")
	logger := middleware.GetLoggerFromContext(c).With(slog.String("base", base), slog.String("target", target))
	logger.Info("Received request to get exchange rate")

	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), base, target)
	if err != nil {
		respondError(c, logger, "retrieve exchange rate", err)
		return
	}

	logger.Info("Exchange rate retrieved successfully", slog.String("rate", rate.Rate.String()))
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getExchangeRates godoc
// @Summary Get exchange rates for several targets
// @Description Resolves the rate from one base currency to each requested target
// @Tags exchange rates
// @Produce  json
// @Param   base             path  string   true "Base currency code (3 letters)" MinLength(3) MaxLength(3)
// @Param   targetCurrencies query []string true "Target currency codes, comma separated or repeated" collectionFormat(multi)
// @Success 200 {object} map[string]dto.ExchangeRateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid currency code or rate not available"
// @Failure 502 {object} dto.ErrorResponse "Upstream returned malformed rates"
// @Failure 503 {object} dto.ErrorResponse "Upstream rate service unavailable"
// @Router /exchange-rates/{base} [get]
func (h *exchangeRateHandler) getExchangeRates(c *gin.Context) {
	base := c.Param("base")
	targets := splitQueryList(c.QueryArray("targetCurrencies"))
	logger := middleware.GetLoggerFromContext(c).With(slog.String("base", base), slog.Any("targets", targets))
	logger.Info("Received request to get exchange rates")

	rates, err := h.exchangeRateService.GetExchangeRates(c.Request.Context(), base, targets)
	if err != nil {
		respondError(c, logger, "retrieve exchange rates", err)
		return
	}

	logger.Info("Exchange rates retrieved successfully", slog.Int("count", len(rates)))
	c.JSON(http.StatusOK, dto.ToExchangeRateResponses(rates))
}

// splitQueryList accepts both ?x=A,B and ?x=A&x=B.
func splitQueryList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
