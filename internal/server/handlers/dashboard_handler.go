package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/service/export"
	"github.com/mamadbah2/barstock/internal/service/reporting"
)

// DashboardHandler serves the cross-domain alerts, forecasts and exports.
type DashboardHandler struct {
	reports  *reporting.Service
	exporter *export.Service
	logger   *zap.Logger
}

func NewDashboardHandler(reports *reporting.Service, exporter *export.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{reports: reports, exporter: exporter, logger: logger}
}

func (h *DashboardHandler) Alerts(c *gin.Context) {
	alerts := h.reports.Alerts()
	c.JSON(http.StatusOK, gin.H{
		"thresholds": h.reports.Thresholds(),
		"liquor":     newAlertViews(alerts.Liquor),
		"beer":       newAlertViews(alerts.Beer),
	})
}

// Predictions lists forecasts soonest-depleted first; items seen in fewer
// than two sessions are omitted.
func (h *DashboardHandler) Predictions(c *gin.Context) {
	predictions := h.reports.Predictions()
	c.JSON(http.StatusOK, gin.H{
		"liquor": newPredictionViews(predictions.Liquor),
		"beer":   newPredictionViews(predictions.Beer),
	})
}

func (h *DashboardHandler) ExportSheets(c *gin.Context) {
	results, err := h.exporter.ExportSheets(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
