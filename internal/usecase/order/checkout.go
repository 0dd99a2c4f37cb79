package order

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/plant-decor/internal/domain/order"
	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/payment"
	"github.com/BruksfildServices01/plant-decor/internal/store"
	"github.com/BruksfildServices01/plant-decor/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CheckoutInput struct {
	CustomerID      string `json:"-" validate:"required"`
	CustomerName    string `json:"name" validate:"required,max=100"`
	CustomerPhone   string `json:"phone" validate:"required,max=20"`
	ShippingAddress string `json:"address" validate:"required,max=255"`
	Notes           string `json:"notes" validate:"max=1000"`

	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required,payment_method"`
}

type CheckoutResult struct {
	Order   models.Order    `json:"order"`
	Payment payment.Receipt `json:"payment"`
}

// ======================================================
// PORTS
// ======================================================

type Cart interface {
	Items(customerID string) []models.CartItem
	Clear(ctx context.Context, customerID string)
}

type Catalog interface {
	GetPlantByID(id string) (models.Plant, error)
	SellVariants(ctx context.Context, refs []store.VariantRef) error
}

type Orders interface {
	PlaceOrder(ctx context.Context, in store.NewOrder) (models.Order, error)
	AttachPayment(ctx context.Context, id, reference, url string) (models.Order, error)
}

// ======================================================
// USE CASE
// ======================================================

type Checkout struct {
	carts   Cart
	catalog Catalog
	orders  Orders
	gateway payment.Gateway
	log     *zap.Logger
}

func NewCheckout(
	carts Cart,
	catalog Catalog,
	orders Orders,
	gateway payment.Gateway,
	log *zap.Logger,
) *Checkout {
	if gateway == nil {
		gateway = payment.Offline{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Checkout{
		carts:   carts,
		catalog: catalog,
		orders:  orders,
		gateway: gateway,
		log:     log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute turns the customer's cart into a pending order priced from the
// current catalog, sells the chosen specimens and empties the cart.
func (uc *Checkout) Execute(
	ctx context.Context,
	in CheckoutInput,
) (*CheckoutResult, error) {

	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	cart := uc.carts.Items(in.CustomerID)
	if len(cart) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	// --------------------------------------------------
	// Re-price from the catalog
	// --------------------------------------------------
	items := make([]models.OrderItem, 0, len(cart))
	var specimens []store.VariantRef
	for _, line := range cart {
		p, err := uc.catalog.GetPlantByID(line.PlantID)
		if err != nil {
			return nil, err
		}

		price := p.Price
		if line.VariantID != "" {
			v, ok := p.Variant(line.VariantID)
			if !ok {
				return nil, store.ErrVariantNotFound
			}
			if v.IsSold {
				return nil, store.ErrVariantSold
			}
			price = v.Price
			specimens = append(specimens, store.VariantRef{PlantID: p.ID, VariantID: v.ID})
		}

		items = append(items, models.OrderItem{
			PlantID:   p.ID,
			VariantID: line.VariantID,
			PlantName: p.Name,
			Quantity:  line.Quantity,
			Price:     price,
		})
	}

	// --------------------------------------------------
	// Reserve specimens, then place
	// --------------------------------------------------
	if err := uc.catalog.SellVariants(ctx, specimens); err != nil {
		return nil, err
	}

	o, err := uc.orders.PlaceOrder(ctx, store.NewOrder{
		CustomerID:      in.CustomerID,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		ShippingAddress: in.ShippingAddress,
		Notes:           in.Notes,
		PaymentMethod:   in.PaymentMethod,
		Items:           items,
	})
	if err != nil {
		return nil, err
	}
	uc.carts.Clear(ctx, in.CustomerID)

	// --------------------------------------------------
	// Payment
	// --------------------------------------------------
	receipt, err := uc.gateway.Start(ctx, o)
	if err != nil {
		// the order stands; staff can confirm it once paid another way
		uc.log.Warn("start payment", zap.String("order_id", o.ID), zap.Error(err))
		return &CheckoutResult{Order: o}, nil
	}
	if receipt.Reference != "" || receipt.URL != "" {
		o, err = uc.orders.AttachPayment(ctx, o.ID, receipt.Reference, receipt.URL)
		if err != nil {
			return nil, err
		}
	}
	return &CheckoutResult{Order: o, Payment: receipt}, nil
}
