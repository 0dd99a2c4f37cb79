package models

import "time"

type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCOD          PaymentMethod = "cod"
	PaymentMomo         PaymentMethod = "momo"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentBankTransfer, PaymentCOD, PaymentMomo:
		return true
	}
	return false
}

type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Items      []OrderItem `json:"items"`
	TotalPrice int64       `json:"total_price"`
	Status     string      `json:"status"`

	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	ShippingAddress string `json:"shipping_address"`
	Notes           string `json:"notes,omitempty"`

	PaymentMethod    PaymentMethod `json:"payment_method"`
	PaymentReference string        `json:"payment_reference,omitempty"`
	PaymentURL       string        `json:"payment_url,omitempty"`

	ShipperID      string     `json:"shipper_id,omitempty"`
	ShipperName    string     `json:"shipper_name,omitempty"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	DeliveryNotes  string     `json:"delivery_notes,omitempty"`
	DeliveryDate   *time.Time `json:"delivery_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem freezes the price a line was bought at.
type OrderItem struct {
	ID        string `json:"id"`
	PlantID   string `json:"plant_id"`
	VariantID string `json:"variant_id,omitempty"`
	PlantName string `json:"plant_name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
	Subtotal  int64  `json:"subtotal"`
}

func (o Order) Clone() Order {
	out := o
	out.Items = append([]OrderItem{}, o.Items...)
	if o.DeliveryDate != nil {
		d := *o.DeliveryDate
		out.DeliveryDate = &d
	}
	return out
}
