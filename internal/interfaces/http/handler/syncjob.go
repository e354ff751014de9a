package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
)

// SyncJobHandler exposes import job status for polling
type SyncJobHandler struct {
	BaseHandler
	jobRepo sync.JobRepository
}

// NewSyncJobHandler creates a new SyncJobHandler
func NewSyncJobHandler(jobRepo sync.JobRepository) *SyncJobHandler {
	return &SyncJobHandler{jobRepo: jobRepo}
}

// RegisterRoutes registers the sync job status endpoints
func (h *SyncJobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/api/sync/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/:id", h.GetJob)
	}
}

// SyncJobResponse is one import job row
type SyncJobResponse struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	Type       string     `json:"type"`
	Status     string     `json:"status"`
	ErrorMsg   string     `json:"error_msg,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func syncJobResponseFrom(j *sync.Job) SyncJobResponse {
	return SyncJobResponse{
		ID:         j.ID.String(),
		TenantID:   j.TenantID.String(),
		Type:       string(j.Type),
		Status:     string(j.Status),
		ErrorMsg:   j.ErrorMsg,
		StartedAt:  j.StartedAt,
		FinishedAt: j.FinishedAt,
	}
}

// ListJobs handles GET /api/sync/jobs
func (h *SyncJobHandler) ListJobs(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid list parameters")
		return
	}

	jobs, err := h.jobRepo.FindByTenant(c.Request.Context(), tenantID, req.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]SyncJobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, syncJobResponseFrom(&jobs[i]))
	}
	h.Success(c, responses)
}

// GetJob handles GET /api/sync/jobs/:id
func (h *SyncJobHandler) GetJob(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}
	jobID, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.jobRepo.FindByID(c.Request.Context(), jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, syncJobResponseFrom(job))
}
