package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/plant-decor/internal/dto"
	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/httpresp"
	"github.com/BruksfildServices01/plant-decor/internal/middleware"
	"github.com/BruksfildServices01/plant-decor/internal/store"
)

type CartHandler struct {
	carts   *store.CartStore
	catalog *store.CatalogStore
}

func NewCartHandler(carts *store.CartStore, catalog *store.CatalogStore) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

type AddCartItemRequest struct {
	PlantID   string `json:"plant_id" binding:"required"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type UpdateCartItemRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) render(c *gin.Context, customerID string) {
	httpresp.OK(c, dto.CartDTO{
		Items:     h.carts.Items(customerID),
		Total:     h.carts.Total(customerID),
		ItemCount: h.carts.ItemCount(customerID),
	})
}

func (h *CartHandler) Get(c *gin.Context) {
	h.render(c, middleware.UserID(c))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid cart item.")
		return
	}

	plant, err := h.catalog.GetPlantByID(req.PlantID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	customerID := middleware.UserID(c)
	if _, err := h.carts.AddItem(c.Request.Context(), customerID, plant, req.Quantity, req.VariantID); err != nil {
		httperr.Respond(c, err)
		return
	}
	h.render(c, customerID)
}

// UpdateQuantity removes the line when quantity is zero or below.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid cart item.")
		return
	}

	customerID := middleware.UserID(c)
	if _, err := h.carts.UpdateQuantity(c.Request.Context(), customerID, c.Param("plantId"), req.VariantID, req.Quantity); err != nil {
		httperr.Respond(c, err)
		return
	}
	h.render(c, customerID)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID := middleware.UserID(c)
	if _, err := h.carts.RemoveItem(c.Request.Context(), customerID, c.Param("plantId"), c.Query("variant_id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	h.render(c, customerID)
}

func (h *CartHandler) Clear(c *gin.Context) {
	h.carts.Clear(c.Request.Context(), middleware.UserID(c))
	httpresp.NoContent(c)
}
