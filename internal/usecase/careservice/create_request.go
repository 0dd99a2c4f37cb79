package careservice

import (
	"context"
	"time"

	"github.com/BruksfildServices01/plant-decor/internal/clock"
	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/store"
	"github.com/BruksfildServices01/plant-decor/internal/validators"
)

const DefaultMinLeadTime = 48 * time.Hour

// ======================================================
// INPUT
// ======================================================

type CreateRequestInput struct {
	CustomerID      string `json:"customer_id" validate:"required"`
	CustomerName    string `json:"customer_name" validate:"required,max=100"`
	CustomerPhone   string `json:"customer_phone" validate:"required,max=20"`
	CustomerEmail   string `json:"customer_email" validate:"omitempty,email"`
	CustomerAddress string `json:"customer_address" validate:"required,max=255"`
	WorkAddress     string `json:"work_address" validate:"max=255"`

	PackageID string   `json:"package_id" validate:"required"`
	PlantIDs  []string `json:"plant_ids" validate:"dive,required"`

	ScheduledDate time.Time `json:"scheduled_date" validate:"required"`
	CustomerNotes string    `json:"customer_notes" validate:"max=1000"`
}

// ======================================================
// PORTS
// ======================================================

type RequestCreator interface {
	CreateRequest(ctx context.Context, in store.NewCareRequest) (models.CareServiceRequest, error)
}

type Catalog interface {
	GetCarePackage(id string) (models.CarePackage, error)
	GetPlantByID(id string) (models.Plant, error)
}

// ======================================================
// USE CASE
// ======================================================

type CreateRequest struct {
	requests RequestCreator
	catalog  Catalog
	clock    clock.Clock
	minLead  time.Duration
}

func NewCreateRequest(
	requests RequestCreator,
	catalog Catalog,
	c clock.Clock,
	minLead time.Duration,
) *CreateRequest {
	if minLead <= 0 {
		minLead = DefaultMinLeadTime
	}
	return &CreateRequest{
		requests: requests,
		catalog:  catalog,
		clock:    c,
		minLead:  minLead,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateRequest) Execute(
	ctx context.Context,
	in CreateRequestInput,
) (*models.CareServiceRequest, error) {

	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Lead time
	// --------------------------------------------------
	if in.ScheduledDate.Before(uc.clock.Now().Add(uc.minLead)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// Package
	// --------------------------------------------------
	pkg, err := uc.catalog.GetCarePackage(in.PackageID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Plants
	// --------------------------------------------------
	names := make([]string, 0, len(in.PlantIDs))
	for _, id := range in.PlantIDs {
		p, err := uc.catalog.GetPlantByID(id)
		if err != nil {
			return nil, err
		}
		names = append(names, p.Name)
	}

	r, err := uc.requests.CreateRequest(ctx, store.NewCareRequest{
		CustomerID:      in.CustomerID,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerEmail:   in.CustomerEmail,
		CustomerAddress: in.CustomerAddress,
		WorkAddress:     in.WorkAddress,
		PackageID:       pkg.ID,
		PackageName:     pkg.Name,
		PackageType:     pkg.Type,
		PlantIDs:        in.PlantIDs,
		PlantNames:      names,
		ScheduledDate:   in.ScheduledDate,
		BasePrice:       pkg.Price,
		CustomerNotes:   in.CustomerNotes,
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}
