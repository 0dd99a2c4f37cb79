package careservice

import (
	"context"

	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/store"
)

var (
	ErrCaretakerUnavailable = store.ErrCaretakerUnavailable
	ErrCaretakerLacksSkill  = httperr.ErrBusiness("caretaker_lacks_skill")
)

type AssignCaretakerInput struct {
	RequestID   string
	CaretakerID string `json:"caretaker_id" validate:"required"`
}

type CaretakerAssigner interface {
	GetRequestByID(id string) (models.CareServiceRequest, error)
	GetCaretaker(id string) (models.CaretakerInfo, error)
	AssignCaretaker(ctx context.Context, id, caretakerID, caretakerName string) (models.CareServiceRequest, error)
}

type AssignCaretaker struct {
	repo CaretakerAssigner
}

func NewAssignCaretaker(repo CaretakerAssigner) *AssignCaretaker {
	return &AssignCaretaker{repo: repo}
}

// Execute only assigns caretakers that are available and skilled for the
// request's package. The store checks availability again under its lock.
func (uc *AssignCaretaker) Execute(
	ctx context.Context,
	in AssignCaretakerInput,
) (*models.CareServiceRequest, error) {

	req, err := uc.repo.GetRequestByID(in.RequestID)
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.GetCaretaker(in.CaretakerID)
	if err != nil {
		return nil, err
	}
	if c.Status != models.CaretakerAvailable {
		return nil, ErrCaretakerUnavailable
	}
	if req.PackageType != "" && !c.HasSkill(req.PackageType) {
		return nil, ErrCaretakerLacksSkill
	}

	updated, err := uc.repo.AssignCaretaker(ctx, req.ID, c.UserID, c.Name)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
