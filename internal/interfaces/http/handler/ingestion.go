package handler

import (
	"github.com/gin-gonic/gin"
	syncapp "github.com/shopsync/backend/internal/application/sync"
	"go.uber.org/zap"
)

// IngestionHandler triggers bulk imports for a tenant
type IngestionHandler struct {
	BaseHandler
	importService *syncapp.ImportService
	logger        *zap.Logger
}

// NewIngestionHandler creates a new IngestionHandler
func NewIngestionHandler(importService *syncapp.ImportService, logger *zap.Logger) *IngestionHandler {
	return &IngestionHandler{
		importService: importService,
		logger:        logger.Named("ingestion_handler"),
	}
}

// RegisterRoutes registers the import trigger endpoint
func (h *IngestionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/api/sync/import", h.StartImport)
}

// StartImportResponse carries the job id to poll for completion
type StartImportResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// StartImport handles POST /api/sync/import. The import runs in the
// background; the response returns a job id immediately.
func (h *IngestionHandler) StartImport(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	jobID, err := h.importService.StartFullImport(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Accepted(c, StartImportResponse{
		JobID:  jobID.String(),
		Status: "running",
	})
}
