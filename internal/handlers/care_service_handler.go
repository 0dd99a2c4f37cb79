package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/plant-decor/internal/domain/careservice"
	"github.com/BruksfildServices01/plant-decor/internal/dto"
	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/httpresp"
	"github.com/BruksfildServices01/plant-decor/internal/middleware"
	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/storage"
	"github.com/BruksfildServices01/plant-decor/internal/store"
	ucCare "github.com/BruksfildServices01/plant-decor/internal/usecase/careservice"
)

var ErrNotRequestOwner = httperr.ErrForbidden("not_request_owner")

// ======================================================
// HANDLER
// ======================================================

type CareServiceHandler struct {
	requests *store.CareServiceStore
	photos   storage.PhotoStore

	createUC *ucCare.CreateRequest
	assignUC *ucCare.AssignCaretaker
}

func NewCareServiceHandler(
	requests *store.CareServiceStore,
	photos storage.PhotoStore,
	createUC *ucCare.CreateRequest,
	assignUC *ucCare.AssignCaretaker,
) *CareServiceHandler {
	return &CareServiceHandler{
		requests: requests,
		photos:   photos,
		createUC: createUC,
		assignUC: assignUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCareRequestRequest struct {
	CustomerName    string    `json:"customer_name" binding:"required"`
	CustomerPhone   string    `json:"customer_phone" binding:"required"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerAddress string    `json:"customer_address" binding:"required"`
	WorkAddress     string    `json:"work_address"`
	PackageID       string    `json:"package_id" binding:"required"`
	PlantIDs        []string  `json:"plant_ids"`
	ScheduledDate   time.Time `json:"scheduled_date" binding:"required"`
	CustomerNotes   string    `json:"customer_notes"`
}

type AssignCaretakerRequest struct {
	CaretakerID string `json:"caretaker_id" binding:"required"`
}

type CancelCareRequestRequest struct {
	Reason string `json:"reason"`
}

type ProgressLogRequest struct {
	Action      string   `json:"action" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Photos      []string `json:"photos"`
}

type AddOnRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"gt=0"`
}

type HandoverRequest struct {
	CaretakerID   string `json:"caretaker_id" binding:"required"`
	CaretakerName string `json:"caretaker_name"`
}

type EstimatedCompletionRequest struct {
	EstimatedCompletionDate time.Time `json:"estimated_completion_date" binding:"required"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *CareServiceHandler) Create(c *gin.Context) {
	var req CreateCareRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid care request data.")
		return
	}

	r, err := h.createUC.Execute(c.Request.Context(), ucCare.CreateRequestInput{
		CustomerID:      middleware.UserID(c),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		WorkAddress:     req.WorkAddress,
		PackageID:       req.PackageID,
		PlantIDs:        req.PlantIDs,
		ScheduledDate:   req.ScheduledDate,
		CustomerNotes:   req.CustomerNotes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, r)
}

func (h *CareServiceHandler) ListMine(c *gin.Context) {
	httpresp.List(c, h.requests.GetRequestsByCustomer(middleware.UserID(c)))
}

func (h *CareServiceHandler) GetMine(c *gin.Context) {
	r, ok := h.owned(c)
	if !ok {
		return
	}
	httpresp.OK(c, r)
}

func (h *CareServiceHandler) ApproveAddOn(c *gin.Context) {
	if _, ok := h.owned(c); !ok {
		return
	}
	r, err := h.requests.ApproveAddOn(c.Request.Context(), c.Param("id"), c.Param("addOnId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *CareServiceHandler) RejectAddOn(c *gin.Context) {
	if _, ok := h.owned(c); !ok {
		return
	}
	r, err := h.requests.RejectAddOn(c.Request.Context(), c.Param("id"), c.Param("addOnId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

// ======================================================
// SUPPORT STAFF
// ======================================================

// List filters by ?status= when given.
func (h *CareServiceHandler) List(c *gin.Context) {
	var rs []models.CareServiceRequest
	if status := c.Query("status"); status != "" {
		rs = h.requests.GetRequestsByStatus(domain.Status(status))
	} else {
		rs = h.requests.ListRequests()
	}
	httpresp.List(c, dto.NewCareRequestList(rs))
}

func (h *CareServiceHandler) ListPending(c *gin.Context) {
	httpresp.List(c, dto.NewCareRequestList(h.requests.GetPendingRequests()))
}

func (h *CareServiceHandler) ListActive(c *gin.Context) {
	httpresp.List(c, dto.NewCareRequestList(h.requests.GetActiveRequests()))
}

func (h *CareServiceHandler) Get(c *gin.Context) {
	r, err := h.requests.GetRequestByID(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *CareServiceHandler) Confirm(c *gin.Context) {
	r, err := h.requests.ConfirmRequest(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *CareServiceHandler) Assign(c *gin.Context) {
	var req AssignCaretakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "caretaker_id is required.")
		return
	}

	r, err := h.assignUC.Execute(c.Request.Context(), ucCare.AssignCaretakerInput{
		RequestID:   c.Param("id"),
		CaretakerID: req.CaretakerID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *CareServiceHandler) Cancel(c *gin.Context) {
	var req CancelCareRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid cancel data.")
			return
		}
	}

	r, err := h.requests.CancelRequest(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

// ======================================================
// CARETAKER
// ======================================================

func (h *CareServiceHandler) ListAssigned(c *gin.Context) {
	httpresp.List(c, dto.NewCareRequestList(h.requests.GetRequestsByCaretaker(middleware.UserID(c))))
}

func (h *CareServiceHandler) CheckIn(c *gin.Context) {
	r, err := h.requests.CheckIn(c.Request.Context(), c.Param("id"), middleware.UserID(c), middleware.UserName(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *CareServiceHandler) AddLog(c *gin.Context) {
	var req ProgressLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid progress log.")
		return
	}
	if _, ok := h.handling(c); !ok {
		return
	}

	r, err := h.requests.AddProgressLog(c.Request.Context(), c.Param("id"), store.NewProgressLog{
		CaretakerID:   middleware.UserID(c),
		CaretakerName: middleware.UserName(c),
		Action:        req.Action,
		Description:   req.Description,
		Photos:        req.Photos,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, r)
}

// UploadPhoto stores a multipart "photo" and records it as a progress log.
func (h *CareServiceHandler) UploadPhoto(c *gin.Context) {
	if _, ok := h.handling(c); !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxPhotoBytes)
	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "A photo file under 10MB is required.")
		return
	}

	key, err := storage.PhotoKey(c.Param("id"), fh.Header.Get("Content-Type"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Could not read photo.")
		return
	}
	defer f.Close()

	url, err := h.photos.Put(c.Request.Context(), key, f, fh.Header.Get("Content-Type"))
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "photo_upload_failed", "Could not store photo.")
		return
	}

	description := c.PostForm("description")
	if description == "" {
		description = "Photo uploaded"
	}

	r, err := h.requests.AddProgressLog(c.Request.Context(), c.Param("id"), store.NewProgressLog{
		CaretakerID:   middleware.UserID(c),
		CaretakerName: middleware.UserName(c),
		Action:        "Photo",
		Description:   description,
		Photos:        []string{url},
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, r)
}

func (h *CareServiceHandler) SuggestAddOn(c *gin.Context) {
	var req AddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid add-on.")
		return
	}
	if _, ok := h.handling(c); !ok {
		return
	}

	r, err := h.requests.SuggestAddOn(c.Request.Context(), c.Param("id"), store.NewAddOn{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SuggestedBy: middleware.UserID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, r)
}

func (h *CareServiceHandler) UpdateEstimatedCompletion(c *gin.Context) {
	var req EstimatedCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "estimated_completion_date is required.")
		return
	}
	if _, ok := h.handling(c); !ok {
		return
	}

	r, err := h.requests.UpdateEstimatedCompletion(c.Request.Context(), c.Param("id"), req.EstimatedCompletionDate)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *CareServiceHandler) Handover(c *gin.Context) {
	var req HandoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "caretaker_id is required.")
		return
	}

	r, err := h.requests.HandoverToCaretaker(
		c.Request.Context(),
		c.Param("id"),
		middleware.UserID(c),
		req.CaretakerID,
		req.CaretakerName,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *CareServiceHandler) Reclaim(c *gin.Context) {
	r, err := h.requests.ReclaimTask(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *CareServiceHandler) Complete(c *gin.Context) {
	if _, ok := h.handling(c); !ok {
		return
	}
	r, err := h.requests.CompleteService(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

// --------------------------------------------------
// Access helpers
// --------------------------------------------------

func (h *CareServiceHandler) owned(c *gin.Context) (models.CareServiceRequest, bool) {
	r, err := h.requests.GetRequestByID(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return r, false
	}
	if r.CustomerID != middleware.UserID(c) {
		httperr.Respond(c, ErrNotRequestOwner)
		return r, false
	}
	return r, true
}

// handling admits only the caretaker currently holding the request.
func (h *CareServiceHandler) handling(c *gin.Context) (models.CareServiceRequest, bool) {
	r, err := h.requests.GetRequestByID(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return r, false
	}
	if r.CurrentCaretakerID != middleware.UserID(c) {
		httperr.Respond(c, domain.ErrNotCurrentCaretaker)
		return r, false
	}
	return r, true
}
