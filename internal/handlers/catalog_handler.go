package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/httpresp"
	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/store"
)

// ======================================================
// HANDLER
// ======================================================

type CatalogHandler struct {
	catalog *store.CatalogStore
}

func NewCatalogHandler(catalog *store.CatalogStore) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ======================================================
// REQUESTS
// ======================================================

type PlantRequest struct {
	Name             string                 `json:"name" binding:"required,max=120"`
	ScientificName   string                 `json:"scientific_name"`
	CategoryID       string                 `json:"category_id" binding:"required"`
	Description      string                 `json:"description"`
	Price            int64                  `json:"price" binding:"gte=0"`
	Image            string                 `json:"image"`
	Images           []string               `json:"images"`
	Stock            int                    `json:"stock" binding:"gte=0"`
	Difficulty       string                 `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	CareInstructions models.CareInstruction `json:"care_instructions"`

	WateringFrequency   string `json:"watering_frequency"`
	SunlightRequirement string `json:"sunlight_requirement"`
	Humidity            string `json:"humidity"`
	Temperature         string `json:"temperature"`
}

func (r PlantRequest) input() store.PlantInput {
	return store.PlantInput{
		Name:                r.Name,
		ScientificName:      r.ScientificName,
		CategoryID:          r.CategoryID,
		Description:         r.Description,
		Price:               r.Price,
		Image:               r.Image,
		Images:              r.Images,
		Stock:               r.Stock,
		Difficulty:          r.Difficulty,
		CareInstructions:    r.CareInstructions,
		WateringFrequency:   r.WateringFrequency,
		SunlightRequirement: r.SunlightRequirement,
		Humidity:            r.Humidity,
		Temperature:         r.Temperature,
	}
}

type VariantRequest struct {
	Image string `json:"image" binding:"required"`
	Price int64  `json:"price" binding:"gt=0"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *CatalogHandler) ListPlants(c *gin.Context) {
	httpresp.List(c, h.catalog.Filter(store.CatalogFilter{
		CategoryID: c.Query("category"),
		Query:      c.Query("q"),
	}))
}

func (h *CatalogHandler) GetPlant(c *gin.Context) {
	p, err := h.catalog.GetPlantByID(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	httpresp.List(c, h.catalog.ListCategories())
}

func (h *CatalogHandler) ListCarePackages(c *gin.Context) {
	httpresp.List(c, h.catalog.ListCarePackages())
}

// ======================================================
// ADMIN
// ======================================================

func (h *CatalogHandler) CreatePlant(c *gin.Context) {
	var req PlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid plant data.")
		return
	}

	p, err := h.catalog.CreatePlant(c.Request.Context(), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, p)
}

func (h *CatalogHandler) UpdatePlant(c *gin.Context) {
	var req PlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid plant data.")
		return
	}

	p, err := h.catalog.UpdatePlant(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *CatalogHandler) DeletePlant(c *gin.Context) {
	if err := h.catalog.DeletePlant(c.Request.Context(), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *CatalogHandler) AddVariant(c *gin.Context) {
	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid variant data.")
		return
	}

	p, err := h.catalog.AddVariant(c.Request.Context(), c.Param("id"), store.VariantInput{
		Image: req.Image,
		Price: req.Price,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, p)
}

func (h *CatalogHandler) DeleteVariant(c *gin.Context) {
	p, err := h.catalog.DeleteVariant(c.Request.Context(), c.Param("id"), c.Param("variantId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *CatalogHandler) MarkVariantSold(c *gin.Context) {
	p, err := h.catalog.MarkVariantSold(c.Request.Context(), c.Param("id"), c.Param("variantId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}
