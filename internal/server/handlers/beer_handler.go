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

// BeerHandler serves the beer catalog and counted sessions.
type BeerHandler struct {
	tracker  *tracking.BeerTracker
	reports  *reporting.Service
	exporter *export.Service
	logger   *zap.Logger
}

func NewBeerHandler(tracker *tracking.BeerTracker, reports *reporting.Service, exporter *export.Service, logger *zap.Logger) *BeerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BeerHandler{tracker: tracker, reports: reports, exporter: exporter, logger: logger}
}

type addBeerRequest struct {
	Label    string `json:"label"`
	Category string `json:"category"`
}

type countRequest struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

func (h *BeerHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Catalog())
}

func (h *BeerHandler) AddBeer(c *gin.Context) {
	var req addBeerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, h.logger, err)
		return
	}

	key, err := h.tracker.AddBeer(c.Request.Context(), req.Label, req.Category)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}

func (h *BeerHandler) StartSession(c *gin.Context) {
	started, err := h.tracker.Start()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"startDate": started})
}

func (h *BeerHandler) OpenSession(c *gin.Context) {
	draft, err := h.tracker.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, draftView[models.BeerItem]{StartDate: draft.StartDate, Items: draft.Items})
}

// AddItem records a counted line; the key must exist in the catalog.
func (h *BeerHandler) AddItem(c *gin.Context) {
	var req countRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, h.logger, err)
		return
	}

	item, err := h.tracker.Record(req.Key, req.Count)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *BeerHandler) RemoveItem(c *gin.Context) {
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
	c.JSON(http.StatusOK, removed)
}

func (h *BeerHandler) CloseSession(c *gin.Context) {
	session, err := h.tracker.Close(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(session, identity[models.BeerItem]))
}

func (h *BeerHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, newHistoryView(h.tracker.History(), identity[models.BeerItem]))
}

func (h *BeerHandler) ExportCSV(c *gin.Context) {
	writeCSV(c, h.exporter, h.logger, tracking.DomainBeer, "beer_inventory_history.csv")
}

func (h *BeerHandler) Series(c *gin.Context) {
	writeSeries(c, h.reports.BeerSeries(c.Param("key")))
}
