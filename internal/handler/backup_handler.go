package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"billbook/internal/service"
)

// BackupHandler handles backup export and restore endpoints.
type BackupHandler struct {
	backupService service.BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Export handles GET /api/v1/backup/export
//
// Returns the full business snapshot as a JSON document.
func (h *BackupHandler) Export(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	doc, err := h.backupService.Export(c.Request.Context(), businessID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Store handles POST /api/v1/backup/store
//
// Snapshots the business and uploads it to object storage.
func (h *BackupHandler) Store(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	receipt, err := h.backupService.Store(c.Request.Context(), businessID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, receipt)
}

// Download handles GET /api/v1/backup/download?key=
//
// Streams a previously stored backup back to the client.
func (h *BackupHandler) Download(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}

	key := c.Query("key")
	if key == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "key query parameter is required")
		return
	}

	body, err := h.backupService.Fetch(c.Request.Context(), key)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Type", "application/json")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		log.Error().Err(err).Str("key", key).Msg("backup download failed mid-stream")
	}
}
