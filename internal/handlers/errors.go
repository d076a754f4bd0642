package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/dto"
)

// statusFor maps an error kind to the HTTP status returned to clients.
func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindRateUnavailable, apperrors.KindInput:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindTransientProvider:
		return http.StatusServiceUnavailable
	case apperrors.KindMalformedProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Client errors are logged at
// warn, everything else at error. Internal details never reach the body.
func respondError(c *gin.Context, logger *slog.Logger, action string, err error) {
	status := statusFor(err)
	kind := apperrors.KindOf(err)

	message := apperrors.UserMessage(err)
	if status == http.StatusInternalServerError || status == http.StatusGatewayTimeout {
		message = "Failed to " + action
	}

	if status < http.StatusInternalServerError {
		logger.Warn("Request rejected", slog.String("action", action), slog.String("error", err.Error()))
	} else {
		logger.Error("Request failed", slog.String("action", action), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Error: message, Kind: kind.String()})
}

// badRequest rejects malformed input before it reaches a service.
func badRequest(c *gin.Context, logger *slog.Logger, message string) {
	logger.Warn("Bad request", slog.String("error", message))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message, Kind: apperrors.KindValidation.String()})
}
