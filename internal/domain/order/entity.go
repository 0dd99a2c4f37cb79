package order

import (
	"time"

	"github.com/BruksfildServices01/plant-decor/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(o *models.Order, now time.Time) error {
	if err := CanConfirm(Status(o.Status)); err != nil {
		return err
	}
	o.Status = string(StatusConfirmed)
	o.UpdatedAt = now
	return nil
}

func StartProcessing(o *models.Order, now time.Time) error {
	if err := CanProcess(Status(o.Status)); err != nil {
		return err
	}
	o.Status = string(StatusProcessing)
	o.UpdatedAt = now
	return nil
}

// Ship hands the parcel to a shipper, who owns it until delivery.
func Ship(o *models.Order, shipperID, shipperName, trackingNumber string, now time.Time) error {
	if err := CanShip(Status(o.Status)); err != nil {
		return err
	}
	o.Status = string(StatusShipped)
	o.ShipperID = shipperID
	o.ShipperName = shipperName
	o.TrackingNumber = trackingNumber
	o.UpdatedAt = now
	return nil
}

func Deliver(o *models.Order, shipperID, notes string, now time.Time) error {
	if err := CanDeliver(Status(o.Status)); err != nil {
		return err
	}
	if o.ShipperID != shipperID {
		return ErrNotShipper
	}
	o.Status = string(StatusDelivered)
	o.DeliveryNotes = notes
	o.DeliveryDate = &now
	o.UpdatedAt = now
	return nil
}

func Cancel(o *models.Order, now time.Time) error {
	if err := CanCancel(Status(o.Status)); err != nil {
		return err
	}
	o.Status = string(StatusCancelled)
	o.UpdatedAt = now
	return nil
}

// Total sums line subtotals.
func Total(items []models.OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Subtotal
	}
	return total
}
