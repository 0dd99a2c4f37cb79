package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/plant-decor/internal/domain/order"
	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/httpresp"
	"github.com/BruksfildServices01/plant-decor/internal/middleware"
	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/store"
	ucOrder "github.com/BruksfildServices01/plant-decor/internal/usecase/order"
)

var ErrNotOrderOwner = httperr.ErrForbidden("not_order_owner")

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	orders     *store.OrderStore
	checkoutUC *ucOrder.Checkout
}

func NewOrderHandler(orders *store.OrderStore, checkoutUC *ucOrder.Checkout) *OrderHandler {
	return &OrderHandler{orders: orders, checkoutUC: checkoutUC}
}

// ======================================================
// REQUESTS
// ======================================================

type CheckoutRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Address       string `json:"address" binding:"required"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type DeliverOrderRequest struct {
	Notes string `json:"notes"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *OrderHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid shipping information.")
		return
	}

	res, err := h.checkoutUC.Execute(c.Request.Context(), ucOrder.CheckoutInput{
		CustomerID:      middleware.UserID(c),
		CustomerName:    req.Name,
		CustomerPhone:   req.Phone,
		ShippingAddress: req.Address,
		Notes:           req.Notes,
		PaymentMethod:   models.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, res)
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	httpresp.List(c, h.orders.GetOrdersByCustomer(middleware.UserID(c)))
}

func (h *OrderHandler) GetMine(c *gin.Context) {
	o, ok := h.owned(c)
	if !ok {
		return
	}
	httpresp.OK(c, o)
}

// CancelMine lets a customer withdraw an order staff has not confirmed yet.
func (h *OrderHandler) CancelMine(c *gin.Context) {
	o, ok := h.owned(c)
	if !ok {
		return
	}
	if domain.Status(o.Status) != domain.StatusPending {
		httperr.Respond(c, domain.ErrInvalidState)
		return
	}

	updated, err := h.orders.CancelOrder(c.Request.Context(), o.ID, "cancelled by customer")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, updated)
}

// ======================================================
// SUPPORT STAFF
// ======================================================

func (h *OrderHandler) List(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		if !domain.Status(status).Valid() {
			httperr.BadRequest(c, "invalid_status", "Unknown order status.")
			return
		}
		httpresp.List(c, h.orders.GetOrdersByStatus(domain.Status(status)))
		return
	}
	httpresp.List(c, h.orders.ListOrders())
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.orders.GetOrderByID(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, o)
}

func (h *OrderHandler) Confirm(c *gin.Context) {
	h.respond(c)(h.orders.ConfirmOrder(c.Request.Context(), c.Param("id")))
}

func (h *OrderHandler) Process(c *gin.Context) {
	h.respond(c)(h.orders.StartProcessing(c.Request.Context(), c.Param("id")))
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	var req CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid cancel data.")
			return
		}
	}
	h.respond(c)(h.orders.CancelOrder(c.Request.Context(), c.Param("id"), req.Reason))
}

// ======================================================
// SHIPPER
// ======================================================

// Available lists processing orders waiting for pickup.
func (h *OrderHandler) Available(c *gin.Context) {
	httpresp.List(c, h.orders.GetOrdersByStatus(domain.StatusProcessing))
}

func (h *OrderHandler) ListShipments(c *gin.Context) {
	httpresp.List(c, h.orders.GetOrdersByShipper(middleware.UserID(c)))
}

func (h *OrderHandler) Ship(c *gin.Context) {
	h.respond(c)(h.orders.ShipOrder(
		c.Request.Context(),
		c.Param("id"),
		middleware.UserID(c),
		middleware.UserName(c),
	))
}

func (h *OrderHandler) Deliver(c *gin.Context) {
	var req DeliverOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid delivery data.")
			return
		}
	}
	h.respond(c)(h.orders.DeliverOrder(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Notes))
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (h *OrderHandler) respond(c *gin.Context) func(models.Order, error) {
	return func(o models.Order, err error) {
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.OK(c, o)
	}
}

func (h *OrderHandler) owned(c *gin.Context) (models.Order, bool) {
	o, err := h.orders.GetOrderByID(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return models.Order{}, false
	}
	if o.CustomerID != middleware.UserID(c) {
		httperr.Respond(c, ErrNotOrderOwner)
		return models.Order{}, false
	}
	return o, true
}
