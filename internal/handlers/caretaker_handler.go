package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/httpresp"
	"github.com/BruksfildServices01/plant-decor/internal/middleware"
	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/store"
	"github.com/BruksfildServices01/plant-decor/internal/validators"
)

type CaretakerHandler struct {
	caretakers *store.CareServiceStore
}

func NewCaretakerHandler(caretakers *store.CareServiceStore) *CaretakerHandler {
	return &CaretakerHandler{caretakers: caretakers}
}

type UpsertCaretakerRequest struct {
	UserID string               `json:"user_id" validate:"required"`
	Name   string               `json:"name" validate:"required,max=100"`
	Phone  string               `json:"phone" validate:"max=20"`
	Skills []models.PackageType `json:"skills" validate:"dive,package_type"`
}

// Caretakers may only toggle between working and leave; busy and buffer are
// driven by assignments.
type UpdateMyStatusRequest struct {
	Status models.CaretakerStatus `json:"status" binding:"required,oneof=available on_leave"`
}

// ======================================================
// SUPPORT / ADMIN
// ======================================================

func (h *CaretakerHandler) List(c *gin.Context) {
	httpresp.List(c, h.caretakers.ListCaretakers())
}

// ListAvailable narrows by ?package_type= when given.
func (h *CaretakerHandler) ListAvailable(c *gin.Context) {
	httpresp.List(c, h.caretakers.GetAvailableCaretakers(models.PackageType(c.Query("package_type"))))
}

func (h *CaretakerHandler) Upsert(c *gin.Context) {
	var req UpsertCaretakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid caretaker data.")
		return
	}
	if err := validators.Struct(req); err != nil {
		httperr.Respond(c, err)
		return
	}

	ct, err := h.caretakers.UpsertCaretaker(c.Request.Context(), models.CaretakerInfo{
		UserID: req.UserID,
		Name:   req.Name,
		Phone:  req.Phone,
		Skills: req.Skills,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ct)
}

func (h *CaretakerHandler) Release(c *gin.Context) {
	released, err := h.caretakers.ReleaseCaretaker(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"released": released})
}

// ======================================================
// CARETAKER
// ======================================================

func (h *CaretakerHandler) GetMe(c *gin.Context) {
	ct, err := h.caretakers.GetCaretaker(middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ct)
}

func (h *CaretakerHandler) UpdateMyStatus(c *gin.Context) {
	var req UpdateMyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_status", "status must be available or on_leave.")
		return
	}

	ct, err := h.caretakers.UpdateCaretakerStatus(c.Request.Context(), middleware.UserID(c), req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ct)
}
