package imports

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/killianmoore/web/common"
	"github.com/killianmoore/web/directory"
	"github.com/killianmoore/web/members"
	"github.com/killianmoore/web/parsers"
	"github.com/killianmoore/web/vendors"
)

// MaxUploadBytes caps a previewed file
const MaxUploadBytes = 5 << 20

// Resource types accepted by the preview
const (
	ResourceMembers = "members"
	ResourceVendors = "vendors"
)

// PreviewResponse describes what the directory would show for an uploaded
// file. Nothing is stored.
type PreviewResponse struct {
	ResourceType string                  `json:"resource_type"`
	DataRows     int                     `json:"data_rows"`
	Records      int                     `json:"records"`
	Dropped      int                     `json:"dropped"`
	HeaderError  *common.ValidationError `json:"header_error,omitempty"`
	Members      []members.Member        `json:"members,omitempty"`
	Vendors      []vendors.Vendor        `json:"vendors,omitempty"`
	Report       directory.Report        `json:"report"`
}

// RegisterRoutes mounts the preview endpoint on a (gated) group
func RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/imports/preview", PreviewImport)
}

// PreviewImport godoc
// @Summary Preview a directory CSV
// @Description Parses an uploaded members or vendors CSV and returns the mapped records with their quality report
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param resource_type formData string true "members or vendors"
// @Success 200 {object} PreviewResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 413 {object} map[string]string "File too large"
// @Router /api/pd/imports/preview [post]
func PreviewImport(c *gin.Context) {
	resourceType := c.PostForm("resource_type")
	if verr := common.ValidateEnum("resource_type", resourceType, []string{ResourceMembers, ResourceVendors}); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be .csv"})
		return
	}
	if header.Size > MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("File exceeds %d bytes", MaxUploadBytes)})
		return
	}

	rows, err := parsers.ReadCSV(io.LimitReader(file, MaxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	resp := Preview(resourceType, rows)
	c.Set(common.RowsProcessedKey, resp.DataRows)
	c.JSON(http.StatusOK, resp)
}

// Preview maps rows without the sample fallback, so an unusable file shows
// up as zero records
func Preview(resourceType string, rows []parsers.Row) PreviewResponse {
	resp := PreviewResponse{ResourceType: resourceType}
	if len(rows) > 0 {
		resp.DataRows = len(rows) - 1
	}

	minColumns := members.MinColumns
	if resourceType == ResourceVendors {
		minColumns = vendors.MinColumns
	}
	if len(rows) > 0 {
		resp.HeaderError = common.ValidateMinColumns(resourceType, rows[0], minColumns)
	}

	switch resourceType {
	case ResourceVendors:
		resp.Vendors = vendors.MapVendors(rows)
		resp.Records = len(resp.Vendors)
		resp.Report = directory.BuildReport(nil, resp.Vendors)
	default:
		resp.Members = members.MapMembers(rows)
		resp.Records = len(resp.Members)
		resp.Report = directory.BuildReport(resp.Members, nil)
	}

	resp.Dropped = resp.DataRows - resp.Records
	return resp
}
