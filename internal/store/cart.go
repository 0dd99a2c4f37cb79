package store

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/plant-decor/internal/domain/state"
	"github.com/BruksfildServices01/plant-decor/internal/events"
	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/models"
)

var (
	ErrInvalidQuantity  = httperr.ErrBusiness("invalid_quantity")
	ErrCartItemNotFound = httperr.ErrNotFound("cart_item_not_found")
)

// CartStore keeps one cart per customer. Lines are unique on
// (plant id, variant id) and always hold a quantity of at least one. A
// variant is a single specimen, so its line never exceeds one.
type CartStore struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem
	opts  Options
	snap  snapshot
}

func NewCartStore(ctx context.Context, opts Options) (*CartStore, error) {
	opts = opts.withDefaults()
	s := &CartStore{
		carts: map[string][]models.CartItem{},
		opts:  opts,
		snap:  snapshot{repo: opts.Repo, key: state.KeyCart, log: opts.Log},
	}
	if _, err := s.snap.restore(ctx, &s.carts); err != nil {
		return nil, err
	}
	if s.carts == nil {
		s.carts = map[string][]models.CartItem{}
	}
	return s, nil
}

// AddItem merges into an existing line with the same plant and variant.
func (s *CartStore) AddItem(
	ctx context.Context,
	customerID string,
	plant models.Plant,
	quantity int,
	variantID string,
) ([]models.CartItem, error) {

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var variant *models.PlantVariant
	if variantID != "" {
		v, ok := plant.Variant(variantID)
		if !ok {
			return nil, ErrVariantNotFound
		}
		if v.IsSold {
			return nil, ErrVariantSold
		}
		variant = &v
	}

	s.mu.Lock()
	items := s.carts[customerID]
	if i := lineIndex(items, plant.ID, variantID); i >= 0 {
		items[i].Quantity = capQuantity(variantID, items[i].Quantity+quantity)
	} else {
		items = append(items, models.CartItem{
			PlantID:   plant.ID,
			VariantID: variantID,
			Quantity:  capQuantity(variantID, quantity),
			Plant:     plant.Clone(),
			Variant:   variant,
		})
	}
	s.carts[customerID] = items
	out := cloneItems(items)
	s.snap.persist(ctx, s.carts)
	s.mu.Unlock()

	s.publish(ctx, "item_added", customerID, map[string]any{"plant_id": plant.ID, "variant_id": variantID, "quantity": quantity})
	return out, nil
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (s *CartStore) UpdateQuantity(
	ctx context.Context,
	customerID string,
	plantID string,
	variantID string,
	quantity int,
) ([]models.CartItem, error) {

	if quantity <= 0 {
		return s.RemoveItem(ctx, customerID, plantID, variantID)
	}

	s.mu.Lock()
	items := s.carts[customerID]
	i := lineIndex(items, plantID, variantID)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrCartItemNotFound
	}
	items[i].Quantity = capQuantity(variantID, quantity)
	out := cloneItems(items)
	s.snap.persist(ctx, s.carts)
	s.mu.Unlock()

	s.publish(ctx, "quantity_updated", customerID, map[string]any{"plant_id": plantID, "variant_id": variantID, "quantity": quantity})
	return out, nil
}

func (s *CartStore) RemoveItem(
	ctx context.Context,
	customerID string,
	plantID string,
	variantID string,
) ([]models.CartItem, error) {

	s.mu.Lock()
	items := s.carts[customerID]
	i := lineIndex(items, plantID, variantID)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrCartItemNotFound
	}
	items = append(items[:i:i], items[i+1:]...)
	if len(items) == 0 {
		delete(s.carts, customerID)
	} else {
		s.carts[customerID] = items
	}
	out := cloneItems(items)
	s.snap.persist(ctx, s.carts)
	s.mu.Unlock()

	s.publish(ctx, "item_removed", customerID, map[string]any{"plant_id": plantID, "variant_id": variantID})
	return out, nil
}

func (s *CartStore) Clear(ctx context.Context, customerID string) {
	s.mu.Lock()
	delete(s.carts, customerID)
	s.snap.persist(ctx, s.carts)
	s.mu.Unlock()

	s.publish(ctx, "cleared", customerID, nil)
}

func (s *CartStore) Items(customerID string) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.carts[customerID])
}

// Total prices each line at its variant price when one is selected.
func (s *CartStore) Total(customerID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, it := range s.carts[customerID] {
		total += it.Subtotal()
	}
	return total
}

// ItemCount sums quantities across lines.
func (s *CartStore) ItemCount(customerID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, it := range s.carts[customerID] {
		n += it.Quantity
	}
	return n
}

// ObserveCatalog drops cart lines whose plant or specimen left the catalog.
func (s *CartStore) ObserveCatalog(e events.Event) {
	if e.Store != events.StoreCatalog {
		return
	}

	var drop func(models.CartItem) bool
	switch e.Action {
	case "plant_deleted":
		drop = func(it models.CartItem) bool { return it.PlantID == e.EntityID }
	case "variant_sold", "variant_deleted":
		variantID, _ := e.Metadata["variant_id"].(string)
		if variantID == "" {
			return
		}
		drop = func(it models.CartItem) bool {
			return it.PlantID == e.EntityID && it.VariantID == variantID
		}
	default:
		return
	}

	ctx := context.Background()
	s.mu.Lock()
	var affected []string
	for customerID, items := range s.carts {
		kept := items[:0:0]
		for _, it := range items {
			if !drop(it) {
				kept = append(kept, it)
			}
		}
		if len(kept) == len(items) {
			continue
		}
		if len(kept) == 0 {
			delete(s.carts, customerID)
		} else {
			s.carts[customerID] = kept
		}
		affected = append(affected, customerID)
	}
	if len(affected) > 0 {
		s.snap.persist(ctx, s.carts)
	}
	s.mu.Unlock()

	for _, customerID := range affected {
		s.publish(ctx, "item_removed", customerID, map[string]any{"plant_id": e.EntityID, "reason": e.Action})
	}
}

func (s *CartStore) publish(ctx context.Context, action, customerID string, meta map[string]any) {
	s.opts.Bus.Publish(events.Event{
		Store:    events.StoreCart,
		Action:   action,
		EntityID: customerID,
		ActorID:  events.ActorFrom(ctx),
		Metadata: meta,
		At:       s.opts.Clock.Now(),
	})
}

func capQuantity(variantID string, quantity int) int {
	if variantID != "" && quantity > 1 {
		return 1
	}
	return quantity
}

func lineIndex(items []models.CartItem, plantID, variantID string) int {
	for i, it := range items {
		if it.PlantID == plantID && it.VariantID == variantID {
			return i
		}
	}
	return -1
}

func cloneItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))
	for _, it := range items {
		it.Plant = it.Plant.Clone()
		if it.Variant != nil {
			v := *it.Variant
			it.Variant = &v
		}
		out = append(out, it)
	}
	return out
}
