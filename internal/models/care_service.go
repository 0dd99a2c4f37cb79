package models

import "time"

type PackageType string

const (
	PackagePlantDoctor  PackageType = "plant_doctor"
	PackagePlantSpa     PackageType = "plant_spa"
	PackageConsultation PackageType = "consultation"
)

func (p PackageType) Valid() bool {
	switch p {
	case PackagePlantDoctor, PackagePlantSpa, PackageConsultation:
		return true
	}
	return false
}

type CareServiceRequest struct {
	ID string `json:"id"`

	CustomerID      string `json:"customer_id"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerEmail   string `json:"customer_email"`
	CustomerAddress string `json:"customer_address"`
	WorkAddress     string `json:"work_address,omitempty"`

	PackageID   string      `json:"package_id"`
	PackageName string      `json:"package_name"`
	PackageType PackageType `json:"package_type"`
	PlantIDs    []string    `json:"plant_ids"`
	PlantNames  []string    `json:"plant_names"`

	Status string `json:"status"`

	ScheduledDate           time.Time  `json:"scheduled_date"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date,omitempty"`
	ActualCompletionDate    *time.Time `json:"actual_completion_date,omitempty"`

	// Main caretaker is fixed at assignment; current may change through handover.
	MainCaretakerID      string `json:"main_caretaker_id,omitempty"`
	MainCaretakerName    string `json:"main_caretaker_name,omitempty"`
	CurrentCaretakerID   string `json:"current_caretaker_id,omitempty"`
	CurrentCaretakerName string `json:"current_caretaker_name,omitempty"`

	ConfirmedBy string     `json:"confirmed_by,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`

	CheckInTime   *time.Time           `json:"check_in_time,omitempty"`
	CheckOutTime  *time.Time           `json:"check_out_time,omitempty"`
	ProgressLogs  []ServiceProgressLog `json:"progress_logs"`
	AddOnServices []AddOnService       `json:"add_on_services"`

	BasePrice  int64 `json:"base_price"`
	AddOnTotal int64 `json:"add_on_total"`
	TotalPrice int64 `json:"total_price"`

	CustomerNotes string `json:"customer_notes,omitempty"`
	InternalNotes string `json:"internal_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceProgressLog struct {
	ID               string    `json:"id"`
	ServiceRequestID string    `json:"service_request_id"`
	CaretakerID      string    `json:"caretaker_id"`
	CaretakerName    string    `json:"caretaker_name"`
	Action           string    `json:"action"`
	Description      string    `json:"description"`
	Photos           []string  `json:"photos,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

type AddOnStatus string

const (
	AddOnPending  AddOnStatus = "pending"
	AddOnApproved AddOnStatus = "approved"
	AddOnRejected AddOnStatus = "rejected"
)

type AddOnService struct {
	ID               string      `json:"id"`
	ServiceRequestID string      `json:"service_request_id"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	Price            int64       `json:"price"`
	Status           AddOnStatus `json:"status"`
	SuggestedBy      string      `json:"suggested_by"`
	ApprovedAt       *time.Time  `json:"approved_at,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

// Clone returns a deep copy so callers never alias store-owned slices.
func (r CareServiceRequest) Clone() CareServiceRequest {
	out := r
	out.PlantIDs = append([]string(nil), r.PlantIDs...)
	out.PlantNames = append([]string(nil), r.PlantNames...)
	out.ProgressLogs = make([]ServiceProgressLog, len(r.ProgressLogs))
	for i, l := range r.ProgressLogs {
		l.Photos = append([]string(nil), l.Photos...)
		out.ProgressLogs[i] = l
	}
	out.AddOnServices = append([]AddOnService{}, r.AddOnServices...)
	return out
}

// CarePackage is an offered service bundle; a request copies its name, type
// and price at creation.
type CarePackage struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Type          PackageType `json:"type"`
	Description   string      `json:"description"`
	Price         int64       `json:"price"`
	DurationHours int         `json:"duration_hours"`
	Services      []string    `json:"services"`
}
