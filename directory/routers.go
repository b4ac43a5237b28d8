package directory

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killianmoore/web/common"
	"github.com/killianmoore/web/members"
	"github.com/killianmoore/web/vendors"
	"go.uber.org/zap"
)

// Handler serves the directory lab endpoints
type Handler struct {
	Source *Source
	Log    *zap.Logger
}

// MembersResponse is the body of GET /members
type MembersResponse struct {
	Members []members.Member `json:"members"`
	Total   int              `json:"total"`
	Origin  Origin           `json:"origin"`
}

// VendorsResponse is the body of GET /vendors
type VendorsResponse struct {
	Vendors    []vendors.Vendor `json:"vendors"`
	Featured   *vendors.Vendor  `json:"featured"`
	Categories []CategoryCount  `json:"categories"`
	Category   string           `json:"category"`
	Total      int              `json:"total"`
	Origin     Origin           `json:"origin"`
}

// ReportResponse is the body of GET /report
type ReportResponse struct {
	SourceLastUpdatedAt *string `json:"source_last_updated_at"`
	Report
}

// RegisterRoutes mounts the directory endpoints on a (gated) group
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/members", h.ListMembers)
	group.GET("/vendors", h.ListVendors)
	group.GET("/report", h.GetReport)
}

// ListMembers godoc
// @Summary List directory members
// @Description Returns members matching the optional search query
// @Tags directory
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} MembersResponse
// @Failure 500 {object} map[string]string "Source could not be read"
// @Router /api/pd/members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	list, origin, err := h.Source.MembersOrFallback()
	if err != nil {
		h.fail(c, err)
		return
	}

	filtered := FilterMembers(list, c.Query("q"))
	c.Set(common.RowsProcessedKey, len(list))
	c.JSON(http.StatusOK, MembersResponse{
		Members: filtered,
		Total:   len(filtered),
		Origin:  origin,
	})
}

// ListVendors godoc
// @Summary List directory vendors
// @Description Returns vendors matching the optional query and category (name or slug)
// @Tags directory
// @Produce json
// @Param q query string false "Search text"
// @Param category query string false "Category name or slug"
// @Success 200 {object} VendorsResponse
// @Failure 500 {object} map[string]string "Source could not be read"
// @Router /api/pd/vendors [get]
func (h *Handler) ListVendors(c *gin.Context) {
	list, origin, err := h.Source.VendorsOrFallback()
	if err != nil {
		h.fail(c, err)
		return
	}

	filtered := FilterVendors(list, c.Query("q"), c.Query("category"))
	c.Set(common.RowsProcessedKey, len(list))
	c.JSON(http.StatusOK, VendorsResponse{
		Vendors:    filtered,
		Featured:   FeaturedVendor(filtered),
		Categories: VendorCategories(list),
		Category:   ResolveCategory(list, c.Query("category")),
		Total:      len(filtered),
		Origin:     origin,
	})
}

// GetReport godoc
// @Summary Data quality report
// @Description Lists members and vendors with missing phone, email or category
// @Tags directory
// @Produce json
// @Success 200 {object} ReportResponse
// @Failure 500 {object} map[string]string "Source could not be read"
// @Router /api/pd/report [get]
func (h *Handler) GetReport(c *gin.Context) {
	data, err := h.Source.Load()
	if err != nil {
		h.fail(c, err)
		return
	}

	var lastUpdated *string
	if data.LastUpdatedAt != nil {
		formatted := FormatTimestamp(*data.LastUpdatedAt)
		lastUpdated = &formatted
	}

	c.Set(common.RowsProcessedKey, len(data.Members)+len(data.Vendors))
	c.JSON(http.StatusOK, ReportResponse{
		SourceLastUpdatedAt: lastUpdated,
		Report:              data.Report,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if h.Log != nil {
		h.Log.Error("load directory", zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load directory"})
}
