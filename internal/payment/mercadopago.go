package payment

import (
	"context"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/plant-decor/internal/models"
)

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPago opens a checkout preference for card orders. Other methods
// stay offline.
type MercadoPago struct {
	prefs    preferenceCreator
	currency string
}

func NewMercadoPago(accessToken, currency string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{prefs: preference.NewClient(cfg), currency: currency}, nil
}

func (m *MercadoPago) Start(ctx context.Context, o models.Order) (Receipt, error) {
	if o.PaymentMethod != models.PaymentCreditCard {
		return Receipt{}, nil
	}

	items := make([]preference.ItemRequest, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, preference.ItemRequest{
			ID:         it.PlantID,
			Title:      it.PlantName,
			Quantity:   it.Quantity,
			UnitPrice:  float64(it.Price),
			CurrencyID: m.currency,
		})
	}

	res, err := m.prefs.Create(ctx, preference.Request{
		Items:             items,
		ExternalReference: o.ID,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("create preference for %s: %w", o.ID, err)
	}
	return Receipt{Reference: res.ID, URL: res.InitPoint}, nil
}
