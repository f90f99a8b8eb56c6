package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/catalog"
	"github.com/mamadbah2/barstock/internal/inventory"
	"github.com/mamadbah2/barstock/internal/service/export"
	"github.com/mamadbah2/barstock/internal/service/tracking"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, inventory.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, export.ErrUnknownDomain):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrDuplicateCatalogKey),
		errors.Is(err, tracking.ErrSessionAlreadyOpen),
		errors.Is(err, tracking.ErrNoOpenSession):
		return http.StatusConflict
	case errors.Is(err, inventory.ErrInvalidBottleSpec), errors.Is(err, inventory.ErrEmptySession):
		return http.StatusUnprocessableEntity
	case errors.Is(err, export.ErrSheetsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	logger.Debug("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondBadBody(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}
