package dto

import (
	"time"

	"github.com/BruksfildServices01/plant-decor/internal/models"
)

type CareRequestListDTO struct {
	ID                   string             `json:"id"`
	Status               string             `json:"status"`
	CustomerName         string             `json:"customer_name"`
	CustomerPhone        string             `json:"customer_phone"`
	PackageName          string             `json:"package_name"`
	PackageType          models.PackageType `json:"package_type"`
	ScheduledDate        time.Time          `json:"scheduled_date"`
	MainCaretakerName    string             `json:"main_caretaker_name,omitempty"`
	CurrentCaretakerName string             `json:"current_caretaker_name,omitempty"`
	PendingAddOns        int                `json:"pending_add_ons"`
	TotalPrice           int64              `json:"total_price"`
}

func NewCareRequestList(rs []models.CareServiceRequest) []CareRequestListDTO {
	out := make([]CareRequestListDTO, 0, len(rs))
	for _, r := range rs {
		pending := 0
		for _, a := range r.AddOnServices {
			if a.Status == models.AddOnPending {
				pending++
			}
		}
		out = append(out, CareRequestListDTO{
			ID:                   r.ID,
			Status:               r.Status,
			CustomerName:         r.CustomerName,
			CustomerPhone:        r.CustomerPhone,
			PackageName:          r.PackageName,
			PackageType:          r.PackageType,
			ScheduledDate:        r.ScheduledDate,
			MainCaretakerName:    r.MainCaretakerName,
			CurrentCaretakerName: r.CurrentCaretakerName,
			PendingAddOns:        pending,
			TotalPrice:           r.TotalPrice,
		})
	}
	return out
}

type CartDTO struct {
	Items     []models.CartItem `json:"items"`
	Total     int64             `json:"total"`
	ItemCount int               `json:"item_count"`
}
