package frontpages

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPages godoc
// @Summary Front pages of the directory book
// @Tags directory
// @Produce json
// @Success 200 {object} Pages
// @Router /api/pd/front-pages [get]
func ListPages(pages Pages) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.PureJSON(http.StatusOK, pages)
	}
}
