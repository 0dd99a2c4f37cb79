package order

import "github.com/BruksfildServices01/plant-decor/internal/httperr"

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

var (
	ErrInvalidState   = httperr.ErrBusiness("invalid_state")
	ErrOrderNotFound  = httperr.ErrNotFound("order_not_found")
	ErrEmptyOrder     = httperr.ErrBusiness("empty_order")
	ErrNotShipper     = httperr.ErrForbidden("not_order_shipper")
	ErrInvalidPayment = httperr.ErrBusiness("invalid_payment_method")
)

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return ErrInvalidState
	}
	return nil
}

func CanProcess(current Status) error {
	if current != StatusConfirmed {
		return ErrInvalidState
	}
	return nil
}

func CanShip(current Status) error {
	if current != StatusProcessing {
		return ErrInvalidState
	}
	return nil
}

func CanDeliver(current Status) error {
	if current != StatusShipped {
		return ErrInvalidState
	}
	return nil
}

// CanCancel allows cancelling until the parcel leaves the shop.
func CanCancel(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed, StatusProcessing:
		return nil
	}
	return ErrInvalidState
}
