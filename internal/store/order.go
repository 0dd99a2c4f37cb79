package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/plant-decor/internal/domain/order"
	"github.com/BruksfildServices01/plant-decor/internal/domain/state"
	"github.com/BruksfildServices01/plant-decor/internal/events"
	"github.com/BruksfildServices01/plant-decor/internal/models"
)

type NewOrder struct {
	CustomerID      string
	CustomerName    string
	CustomerPhone   string
	ShippingAddress string
	Notes           string
	PaymentMethod   models.PaymentMethod
	Items           []models.OrderItem
}

// OrderStore owns placed orders and their delivery workflow.
type OrderStore struct {
	mu     sync.Mutex
	orders []models.Order
	opts   Options
	snap   snapshot
}

func NewOrderStore(ctx context.Context, opts Options) (*OrderStore, error) {
	opts = opts.withDefaults()
	s := &OrderStore{
		opts: opts,
		snap: snapshot{repo: opts.Repo, key: state.KeyOrder, log: opts.Log},
	}
	if _, err := s.snap.restore(ctx, &s.orders); err != nil {
		return nil, err
	}
	return s, nil
}

// PlaceOrder records a pending order. Line subtotals are recomputed from
// price and quantity.
func (s *OrderStore) PlaceOrder(ctx context.Context, in NewOrder) (models.Order, error) {
	if len(in.Items) == 0 {
		return models.Order{}, domain.ErrEmptyOrder
	}
	if !in.PaymentMethod.Valid() {
		return models.Order{}, domain.ErrInvalidPayment
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return models.Order{}, ErrInvalidQuantity
		}
		it.ID = newID("item")
		it.Subtotal = it.Price * int64(it.Quantity)
		items = append(items, it)
	}

	now := s.opts.Clock.Now()
	o := models.Order{
		ID:              newID("order"),
		CustomerID:      in.CustomerID,
		Items:           items,
		TotalPrice:      domain.Total(items),
		Status:          string(domain.InitialStatus()),
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		ShippingAddress: in.ShippingAddress,
		Notes:           in.Notes,
		PaymentMethod:   in.PaymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.mu.Lock()
	s.orders = append(s.orders, o)
	s.snap.persist(ctx, s.orders)
	s.mu.Unlock()

	s.publish(ctx, "placed", o.ID, now, map[string]any{
		"total_price":    o.TotalPrice,
		"payment_method": string(o.PaymentMethod),
	})
	return o.Clone(), nil
}

// AttachPayment stores the gateway reference of a pending order.
func (s *OrderStore) AttachPayment(ctx context.Context, id, reference, url string) (models.Order, error) {
	return s.update(ctx, id, "payment_attached", nil, func(o *models.Order, now time.Time) error {
		if domain.Status(o.Status) != domain.StatusPending {
			return domain.ErrInvalidState
		}
		o.PaymentReference = reference
		o.PaymentURL = url
		o.UpdatedAt = now
		return nil
	})
}

func (s *OrderStore) ConfirmOrder(ctx context.Context, id string) (models.Order, error) {
	return s.update(ctx, id, "confirmed", nil, domain.Confirm)
}

func (s *OrderStore) StartProcessing(ctx context.Context, id string) (models.Order, error) {
	return s.update(ctx, id, "processing", nil, domain.StartProcessing)
}

// ShipOrder hands a processing order to the shipper and issues a tracking
// number.
func (s *OrderStore) ShipOrder(ctx context.Context, id, shipperID, shipperName string) (models.Order, error) {
	meta := map[string]any{"shipper_id": shipperID}
	return s.update(ctx, id, "shipped", meta, func(o *models.Order, now time.Time) error {
		return domain.Ship(o, shipperID, shipperName, trackingNumber(), now)
	})
}

func (s *OrderStore) DeliverOrder(ctx context.Context, id, shipperID, notes string) (models.Order, error) {
	meta := map[string]any{"shipper_id": shipperID}
	return s.update(ctx, id, "delivered", meta, func(o *models.Order, now time.Time) error {
		if err := domain.Deliver(o, shipperID, notes, now); err != nil {
			return err
		}
		meta["total_price"] = o.TotalPrice
		return nil
	})
}

// CancelOrder keeps the reason in the published event only.
func (s *OrderStore) CancelOrder(ctx context.Context, id, reason string) (models.Order, error) {
	meta := map[string]any{}
	if reason != "" {
		meta["reason"] = reason
	}
	return s.update(ctx, id, "cancelled", meta, domain.Cancel)
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (s *OrderStore) GetOrderByID(id string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Order{}, domain.ErrOrderNotFound
	}
	return s.orders[i].Clone(), nil
}

func (s *OrderStore) ListOrders() []models.Order {
	return s.filter(func(models.Order) bool { return true })
}

func (s *OrderStore) GetOrdersByCustomer(customerID string) []models.Order {
	return s.filter(func(o models.Order) bool { return o.CustomerID == customerID })
}

func (s *OrderStore) GetOrdersByStatus(status domain.Status) []models.Order {
	return s.filter(func(o models.Order) bool { return domain.Status(o.Status) == status })
}

func (s *OrderStore) GetOrdersByShipper(shipperID string) []models.Order {
	return s.filter(func(o models.Order) bool { return o.ShipperID == shipperID })
}

func (s *OrderStore) filter(keep func(models.Order) bool) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (s *OrderStore) update(
	ctx context.Context,
	id string,
	action string,
	meta map[string]any,
	fn func(o *models.Order, now time.Time) error,
) (models.Order, error) {

	now := s.opts.Clock.Now()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Order{}, domain.ErrOrderNotFound
	}
	o := s.orders[i].Clone()
	if err := fn(&o, now); err != nil {
		s.mu.Unlock()
		return models.Order{}, err
	}
	s.orders[i] = o
	s.snap.persist(ctx, s.orders)
	s.mu.Unlock()

	s.publish(ctx, action, id, now, meta)
	return o.Clone(), nil
}

func (s *OrderStore) publish(ctx context.Context, action, orderID string, at time.Time, meta map[string]any) {
	s.opts.Bus.Publish(events.Event{
		Store:    events.StoreOrder,
		Action:   action,
		EntityID: orderID,
		ActorID:  events.ActorFrom(ctx),
		Metadata: meta,
		At:       at,
	})
}

func (s *OrderStore) indexOf(id string) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func trackingNumber() string {
	return "TRK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
