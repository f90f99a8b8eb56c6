package tracking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/catalog"
	"github.com/mamadbah2/barstock/internal/domain/models"
	"github.com/mamadbah2/barstock/internal/inventory"
	"github.com/mamadbah2/barstock/internal/repository/slots"
)

// LiquorSession is a closed liquor stock-take.
type LiquorSession = inventory.Session[models.LiquorItem]

// LiquorTracker records weighed bottles against the liquor catalog.
type LiquorTracker struct {
	*tracker[models.LiquorItem]
	catalog *catalog.Liquor
}

func newLiquorTracker(store slots.Store, events *broadcaster, now func() time.Time, logger *zap.Logger) *LiquorTracker {
	return &LiquorTracker{
		tracker: newTracker[models.LiquorItem](DomainLiquor, slots.LiquorHistory, store, events, now, logger),
		catalog: catalog.NewLiquor(catalog.DefaultBottles()),
	}
}

func (t *LiquorTracker) load(ctx context.Context) error {
	bottles, err := loadSlot(ctx, t.store, slots.LiquorCatalog, shapeObject, catalog.DefaultBottles, t.logger)
	if err != nil {
		return err
	}
	liquor := catalog.NewLiquor(bottles)
	if restored := liquor.Repair(catalog.DefaultBottles()); len(restored) > 0 {
		t.logger.Warn("restored incomplete bottles from defaults", zap.Strings("bottles", restored))
		if err := saveSlot(ctx, t.store, slots.LiquorCatalog, liquor.Snapshot()); err != nil {
			return err
		}
	}

	sessions, err := t.loadHistory(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.catalog = liquor
	t.ledger.load(sessions)
	t.logger.Info("liquor state loaded",
		zap.Int("types", len(liquor.Types())),
		zap.Int("sessions", len(sessions)),
	)
	return nil
}

// Catalog returns a copy of the bottles grouped by liquor type.
func (t *LiquorTracker) Catalog() map[string]map[string]models.BottleSpec {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.catalog.Snapshot()
}

// AddBottle registers a bottle and persists the catalog. The in-memory
// catalog is only replaced once the write succeeded.
func (t *LiquorTracker) AddBottle(ctx context.Context, liquorType string, spec models.BottleSpec) (string, error) {
	t.mu.Lock()
	next := catalog.NewLiquor(t.catalog.Snapshot())
	key, err := next.Add(liquorType, spec)
	if err == nil {
		err = saveSlot(ctx, t.store, slots.LiquorCatalog, next.Snapshot())
	}
	if err == nil {
		t.catalog = next
	}
	t.mu.Unlock()

	if err != nil {
		return "", err
	}
	t.logger.Info("bottle added", zap.String("type", liquorType), zap.String("key", key))
	t.emit(EventCatalogChanged)
	return key, nil
}

// Measure converts a reading without recording it.
func (t *LiquorTracker) Measure(liquorType, bottleKey string, weightG float64) (models.LiquorItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.measure(liquorType, bottleKey, weightG)
}

func (t *LiquorTracker) measure(liquorType, bottleKey string, weightG float64) (models.LiquorItem, error) {
	bottle, err := t.catalog.Lookup(liquorType, bottleKey)
	if err != nil {
		return models.LiquorItem{}, err
	}
	return inventory.Convert(weightG, liquorType, bottle)
}

// Record converts a reading and adds it to the open session.
func (t *LiquorTracker) Record(liquorType, bottleKey string, weightG float64) (models.LiquorItem, error) {
	t.mu.Lock()
	item, err := t.measure(liquorType, bottleKey, weightG)
	if err == nil {
		err = t.ledger.add(item)
	}
	t.mu.Unlock()

	if err != nil {
		return models.LiquorItem{}, err
	}
	t.emit(EventItemAdded)
	return item, nil
}
