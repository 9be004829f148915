// internal/api/handlers/object_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/radityabagas/bucketadmin/internal/service"
)

type ObjectHandler struct {
	listings *service.ListingService
}

func NewObjectHandler(listings *service.ListingService) *ObjectHandler {
	return &ObjectHandler{listings: listings}
}

// List returns one listing page under the prefix query parameter. The caller
// follows the returned cursor while the page is truncated.
func (h *ObjectHandler) List(c *gin.Context) {
	bucket := c.Param("bucket")
	prefix := c.Query("prefix")
	cursor := c.Query("cursor")

	page, err := h.listings.ListObjects(c.Request.Context(), bucket, prefix, cursor)
	if err != nil {
		log.Error().Err(err).Str("bucket", bucket).Str("prefix", prefix).Msg("failed to list objects")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to list objects"})
		return
	}

	c.JSON(http.StatusOK, page)
}
