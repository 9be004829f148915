// internal/api/handlers/folder_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/radityabagas/bucketadmin/internal/domain"
	"github.com/radityabagas/bucketadmin/internal/service"
	"github.com/radityabagas/bucketadmin/internal/transfer"
)

type FolderHandler struct {
	folders *service.FolderService
}

func NewFolderHandler(folders *service.FolderService) *FolderHandler {
	return &FolderHandler{folders: folders}
}

// Execute runs a folder operation against the bucket in the path. The
// operation selector and path fields come from the JSON body.
func (h *FolderHandler) Execute(c *gin.Context) {
	bucket := c.Param("bucket")

	var req domain.FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := c.GetHeader("X-Actor")

	result, err := h.folders.Execute(c.Request.Context(), bucket, actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFolderPath),
			errors.Is(err, domain.ErrMissingDestination),
			errors.Is(err, domain.ErrSameSourceAndDestination),
			errors.Is(err, domain.ErrUnknownOperation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, transfer.ErrFirstPageListing):
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to enumerate folder"})
		default:
			log.Error().Err(err).Str("bucket", bucket).Str("operation", string(req.Operation)).
				Msg("folder operation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "folder operation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Audit returns the newest audit entries, optionally filtered by bucket.
func (h *FolderHandler) Audit(c *gin.Context) {
	bucket := c.Query("bucket")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.folders.RecentAudit(c.Request.Context(), bucket, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch audit entries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch audit entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
