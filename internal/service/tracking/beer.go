package tracking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/catalog"
	"github.com/mamadbah2/barstock/internal/domain/models"
	"github.com/mamadbah2/barstock/internal/inventory"
	"github.com/mamadbah2/barstock/internal/repository/slots"
)

type BeerSession = inventory.Session[models.BeerItem]

// BeerTracker records counted beer against the beer catalog.
type BeerTracker struct {
	*tracker[models.BeerItem]
	catalog *catalog.Beer
}

func newBeerTracker(store slots.Store, events *broadcaster, now func() time.Time, logger *zap.Logger) *BeerTracker {
	return &BeerTracker{
		tracker: newTracker[models.BeerItem](DomainBeer, slots.BeerHistory, store, events, now, logger),
		catalog: catalog.NewBeer(catalog.DefaultBeers()),
	}
}

func (t *BeerTracker) load(ctx context.Context) error {
	beers, err := loadSlot(ctx, t.store, slots.BeerCatalog, shapeObject, catalog.DefaultBeers, t.logger)
	if err != nil {
		return err
	}
	sessions, err := t.loadHistory(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.catalog = catalog.NewBeer(beers)
	t.ledger.load(sessions)
	t.logger.Info("beer state loaded",
		zap.Int("beers", len(beers)),
		zap.Int("sessions", len(sessions)),
	)
	return nil
}

func (t *BeerTracker) Catalog() map[string]models.BeerSpec {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.catalog.Snapshot()
}

// AddBeer registers a beer and persists the catalog.
func (t *BeerTracker) AddBeer(ctx context.Context, label, category string) (string, error) {
	t.mu.Lock()
	next := catalog.NewBeer(t.catalog.Snapshot())
	key, err := next.Add(label, category)
	if err == nil {
		err = saveSlot(ctx, t.store, slots.BeerCatalog, next.Snapshot())
	}
	if err == nil {
		t.catalog = next
	}
	t.mu.Unlock()

	if err != nil {
		return "", err
	}
	t.logger.Info("beer added", zap.String("key", key))
	t.emit(EventCatalogChanged)
	return key, nil
}

// Record adds count units of the catalog beer key to the open session.
func (t *BeerTracker) Record(key string, count int) (models.BeerItem, error) {
	if count <= 0 {
		return models.BeerItem{}, fmt.Errorf("count must be positive, got %d: %w", count, inventory.ErrInvalidInput)
	}

	t.mu.Lock()
	var item models.BeerItem
	spec, err := t.catalog.Lookup(key)
	if err == nil {
		item = models.BeerItem{CatalogKey: key, Label: spec.Label, Category: spec.Category, Count: count}
		err = t.ledger.add(item)
	}
	t.mu.Unlock()

	if err != nil {
		return models.BeerItem{}, err
	}
	t.emit(EventItemAdded)
	return item, nil
}
