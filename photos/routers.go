package photos

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killianmoore/web/common"
	"go.uber.org/zap"
)

// Handler serves the gallery endpoints
type Handler struct {
	Gallery *Gallery
	Log     *zap.Logger
}

// RegisterRoutes mounts the gallery endpoints
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.ListPhotos)
	group.GET("/series", h.ListSeries)
	group.GET("/series/:slug", h.GetSeries)
}

// ListPhotos godoc
// @Summary All gallery photos
// @Description Curated photos first, then landscape, portrait and unknown orientation
// @Tags photos
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/photos [get]
func (h *Handler) ListPhotos(c *gin.Context) {
	photos, err := h.Gallery.AllPhotos(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Set(common.RowsProcessedKey, len(photos))
	c.JSON(http.StatusOK, gin.H{"photos": photos, "total": len(photos)})
}

// ListSeries godoc
// @Summary Photo series
// @Tags photos
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/photos/series [get]
func (h *Handler) ListSeries(c *gin.Context) {
	series, err := h.Gallery.LoadSeries()
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": series})
}

// GetSeries godoc
// @Summary Photo series by slug
// @Tags photos
// @Produce json
// @Param slug path string true "Series slug"
// @Success 200 {object} Series
// @Failure 404 {object} map[string]string "Series not found"
// @Router /api/photos/series/{slug} [get]
func (h *Handler) GetSeries(c *gin.Context) {
	series, err := h.Gallery.SeriesBySlug(c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if series == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "series not found"})
		return
	}

	c.JSON(http.StatusOK, series)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if h.Log != nil {
		h.Log.Error("load photos", zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load photos"})
}
