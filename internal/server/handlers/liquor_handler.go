package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/domain/models"
	"github.com/mamadbah2/barstock/internal/inventory"
	"github.com/mamadbah2/barstock/internal/service/export"
	"github.com/mamadbah2/barstock/internal/service/reporting"
	"github.com/mamadbah2/barstock/internal/service/tracking"
)

// LiquorHandler serves the liquor catalog, sessions and liquor views.
type LiquorHandler struct {
	tracker  *tracking.LiquorTracker
	reports  *reporting.Service
	exporter *export.Service
	logger   *zap.Logger
}

func NewLiquorHandler(tracker *tracking.LiquorTracker, reports *reporting.Service, exporter *export.Service, logger *zap.Logger) *LiquorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LiquorHandler{tracker: tracker, reports: reports, exporter: exporter, logger: logger}
}

type addBottleRequest struct {
	Type         string  `json:"type"`
	Label        string  `json:"label"`
	VolumeMl     float64 `json:"volumeMl"`
	EmptyWeightG float64 `json:"emptyWeightG"`
	FullWeightG  float64 `json:"fullWeightG"`
}

type measureRequest struct {
	Type    string   `json:"type"`
	Bottle  string   `json:"bottle"`
	WeightG *float64 `json:"weightG"`
}

func (r measureRequest) weight() (float64, error) {
	if r.WeightG == nil {
		return 0, inventory.ErrInvalidInput
	}
	return *r.WeightG, nil
}

func (h *LiquorHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Catalog())
}

func (h *LiquorHandler) AddBottle(c *gin.Context) {
	var req addBottleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, h.logger, err)
		return
	}

	key, err := h.tracker.AddBottle(c.Request.Context(), req.Type, models.BottleSpec{
		Label:        req.Label,
		VolumeMl:     req.VolumeMl,
		EmptyWeightG: req.EmptyWeightG,
		FullWeightG:  req.FullWeightG,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}

// Measure previews a reading without recording it.
func (h *LiquorHandler) Measure(c *gin.Context) {
	var req measureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, h.logger, err)
		return
	}
	weight, err := req.weight()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	item, err := h.tracker.Measure(req.Type, req.Bottle, weight)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newLiquorItemView(item))
}

func (h *LiquorHandler) StartSession(c *gin.Context) {
	started, err := h.tracker.Start()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"startDate": started})
}

func (h *LiquorHandler) OpenSession(c *gin.Context) {
	draft, err := h.tracker.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, draftView[liquorItemView]{StartDate: draft.StartDate, Items: newLiquorItemViews(draft.Items)})
}

func (h *LiquorHandler) AddItem(c *gin.Context) {
	var req measureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, h.logger, err)
		return
	}
	weight, err := req.weight()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	item, err := h.tracker.Record(req.Type, req.Bottle, weight)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, newLiquorItemView(item))
}

func (h *LiquorHandler) RemoveItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, h.logger, inventory.ErrInvalidInput)
		return
	}

	removed, err := h.tracker.Remove(index)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newLiquorItemView(removed))
}

func (h *LiquorHandler) CloseSession(c *gin.Context) {
	session, err := h.tracker.Close(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(session, newLiquorItemView))
}

func (h *LiquorHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, newHistoryView(h.tracker.History(), newLiquorItemView))
}

func (h *LiquorHandler) ExportCSV(c *gin.Context) {
	writeCSV(c, h.exporter, h.logger, tracking.DomainLiquor, "liquor_inventory_history.csv")
}

// Summary groups the latest session by liquor type.
func (h *LiquorHandler) Summary(c *gin.Context) {
	summary, ok := h.reports.LiquorSummary()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"date": nil, "types": []groupSummaryView{}})
		return
	}

	types := make([]groupSummaryView, 0, len(summary.Groups))
	for _, g := range summary.Groups {
		types = append(types, groupSummaryView{
			Type:              g.Group,
			TotalServings:     g.TotalServings,
			AveragePercentage: round(g.AveragePercentage, 1),
			Bottles:           g.Items,
		})
	}
	c.JSON(http.StatusOK, gin.H{"date": summary.Date, "types": types})
}

func (h *LiquorHandler) Trends(c *gin.Context) {
	trends := h.reports.LiquorTrends()
	points := make([]trendView, 0, len(trends))
	for _, t := range trends {
		points = append(points, trendView{Date: t.Date, TotalServings: t.TotalServings, AveragePercentage: round(t.AveragePercentage, 1)})
	}

	groupTotals := h.reports.LiquorTypeTotals()
	totals := make([]typeTotalView, 0, len(groupTotals))
	for _, t := range groupTotals {
		totals = append(totals, typeTotalView{Type: t.Group, RemainingFlOz: t.Quantity.Round(2).InexactFloat64()})
	}
	c.JSON(http.StatusOK, gin.H{"sessions": points, "typeTotals": totals})
}

func (h *LiquorHandler) Series(c *gin.Context) {
	writeSeries(c, h.reports.LiquorSeries(c.Param("key")))
}

func writeSeries(c *gin.Context, points []inventory.Point) {
	for i := range points {
		points[i].Quantity = round(points[i].Quantity, 2)
	}
	c.JSON(http.StatusOK, gin.H{"key": c.Param("key"), "points": points})
}

func writeCSV(c *gin.Context, exporter *export.Service, logger *zap.Logger, domain, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	if err := exporter.WriteCSV(c.Writer, domain); err != nil {
		logger.Error("csv export failed", zap.String("domain", domain), zap.Error(err))
	}
}
