package careservice

import (
	"time"

	"github.com/BruksfildServices01/plant-decor/internal/models"
)

func SuggestAddOn(r *models.CareServiceRequest, addOn models.AddOnService, now time.Time) error {
	if err := CanWorkOn(Status(r.Status)); err != nil {
		return err
	}

	addOn.ServiceRequestID = r.ID
	addOn.Status = models.AddOnPending
	addOn.ApprovedAt = nil
	addOn.CreatedAt = now
	r.AddOnServices = append(r.AddOnServices, addOn)
	r.UpdatedAt = now
	return nil
}

// ApproveAddOn is idempotent: totals are recomputed from every approved
// add-on rather than incremented.
func ApproveAddOn(r *models.CareServiceRequest, addOnID string, now time.Time) error {
	if err := CanDecideAddOn(Status(r.Status)); err != nil {
		return err
	}

	a, err := findAddOn(r, addOnID)
	if err != nil {
		return err
	}
	switch a.Status {
	case models.AddOnApproved:
	case models.AddOnPending:
		a.Status = models.AddOnApproved
		a.ApprovedAt = &now
	default:
		return ErrInvalidState
	}

	RecalculateTotals(r)
	r.UpdatedAt = now
	return nil
}

func RejectAddOn(r *models.CareServiceRequest, addOnID string, now time.Time) error {
	if err := CanDecideAddOn(Status(r.Status)); err != nil {
		return err
	}

	a, err := findAddOn(r, addOnID)
	if err != nil {
		return err
	}
	switch a.Status {
	case models.AddOnRejected:
	case models.AddOnPending:
		a.Status = models.AddOnRejected
	default:
		return ErrInvalidState
	}

	RecalculateTotals(r)
	r.UpdatedAt = now
	return nil
}

func RecalculateTotals(r *models.CareServiceRequest) {
	var sum int64
	for _, a := range r.AddOnServices {
		if a.Status == models.AddOnApproved {
			sum += a.Price
		}
	}
	r.AddOnTotal = sum
	r.TotalPrice = r.BasePrice + sum
}

func findAddOn(r *models.CareServiceRequest, addOnID string) (*models.AddOnService, error) {
	for i := range r.AddOnServices {
		if r.AddOnServices[i].ID == addOnID {
			return &r.AddOnServices[i], nil
		}
	}
	return nil, ErrAddOnNotFound
}
