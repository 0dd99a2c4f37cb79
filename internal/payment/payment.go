// Package payment starts the payment step of a placed order.
package payment

import (
	"context"

	"github.com/BruksfildServices01/plant-decor/internal/models"
)

// Receipt is what the customer needs to finish paying. Offline methods
// return an empty receipt.
type Receipt struct {
	Reference string `json:"reference,omitempty"`
	URL       string `json:"url,omitempty"`
}

type Gateway interface {
	Start(ctx context.Context, o models.Order) (Receipt, error)
}

// Offline settles on delivery or by transfer outside the shop.
type Offline struct{}

func (Offline) Start(context.Context, models.Order) (Receipt, error) {
	return Receipt{}, nil
}
