package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/storage"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PhotoHandler serves photos kept by the in-process store.
type PhotoHandler struct {
	photos *storage.MemoryPhotoStore
}

func NewPhotoHandler(photos *storage.MemoryPhotoStore) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

func (h *PhotoHandler) Get(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	data, contentType, ok := h.photos.Get(key)
	if !ok {
		httperr.NotFound(c, "photo_not_found", "Photo not found.")
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
