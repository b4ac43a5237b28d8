package exports

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/killianmoore/web/common"
	"github.com/killianmoore/web/directory"
	"github.com/killianmoore/web/frontpages"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler serves the export endpoints. DB may be nil, in which case bundles
// are not audited.
type Handler struct {
	Source *directory.Source
	Pages  frontpages.Pages
	DB     *gorm.DB
	Log    *zap.Logger
	Now    func() time.Time
}

// RegisterRoutes mounts the export endpoints on a (gated) group
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/export", h.Export)
	group.GET("/exports/:job_id", h.GetExport)
}

// Export godoc
// @Summary Export the directory
// @Description Renders members, vendors, front pages and the quality report as downloadable files
// @Tags exports
// @Produce json
// @Param k query string false "Lab key"
// @Param scope query string false "quality, anything else exports everything"
// @Success 200 {object} Bundle
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/pd/export [get]
func (h *Handler) Export(c *gin.Context) {
	scope := NormalizeScope(c.Query("scope"))

	now := h.now()
	job := &common.ExportJob{
		ID:        uuid.New().String(),
		Scope:     scope,
		Status:    common.JobStatusProcessing,
		ClientIP:  c.ClientIP(),
		CreatedAt: now,
	}
	h.saveJob(job)

	data, err := h.Source.Load()
	if err != nil {
		h.failJob(job, err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load directory"})
		return
	}

	bundle, err := BuildBundle(data, h.Pages, scope, now)
	if err != nil {
		h.failJob(job, err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render export"})
		return
	}

	// Record totals on the audit row
	completedAt := h.now()
	job.Status = common.JobStatusCompleted
	job.Files = strings.Join(bundle.Names(), ",")
	job.MembersTotal = data.Report.MembersTotal
	job.VendorsTotal = data.Report.VendorsTotal
	job.IssuesTotal = data.Report.IssuesTotal
	job.SourceLastUpdatedAt = data.LastUpdatedAt
	job.CompletedAt = &completedAt
	h.saveJob(job)

	c.Header("X-Export-Job-ID", job.ID)
	c.Header("Cache-Control", "no-store")
	c.Set(common.RowsProcessedKey, len(data.Members)+len(data.Vendors))
	c.PureJSON(http.StatusOK, bundle)
}

// GetExport godoc
// @Summary Get export audit record
// @Description Returns the audit row written for an export bundle
// @Tags exports
// @Produce json
// @Param job_id path string true "Export job ID"
// @Success 200 {object} common.ExportJob
// @Failure 404 {object} map[string]string "Job not found"
// @Failure 503 {object} map[string]string "Audit database disabled"
// @Router /api/pd/exports/{job_id} [get]
func (h *Handler) GetExport(c *gin.Context) {
	if h.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export audit is disabled"})
		return
	}

	var job common.ExportJob
	if err := h.DB.Where("id = ?", c.Param("job_id")).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "export job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load export job"})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *Handler) saveJob(job *common.ExportJob) {
	if h.DB == nil {
		return
	}
	if err := h.DB.Save(job).Error; err != nil {
		h.logger().Warn("save export job", zap.String("job_id", job.ID), zap.Error(err))
	}
}

func (h *Handler) failJob(job *common.ExportJob, cause error) {
	completedAt := h.now()
	job.Status = common.JobStatusFailed
	job.CompletedAt = &completedAt
	h.saveJob(job)
	h.logger().Error("export failed", zap.String("job_id", job.ID), zap.Error(cause))
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}
