package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobType identifies what a sync job run covers
type JobType string

const (
	// JobTypeFull is a full paginated import of products and orders
	JobTypeFull JobType = "full"
)

// JobStatus is the lifecycle status of a sync job
type JobStatus string

const (
	// JobStatusRunning indicates the import is in progress
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the import finished successfully
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the import aborted with an error
	JobStatusFailed JobStatus = "failed"
)

// IsTerminal returns true for completed or failed
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job tracks one import orchestrator run. Imports are fire-and-forget from
// the triggering request; callers poll the job row for completion.
type Job struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Type       JobType
	Status     JobStatus
	ErrorMsg   string
	StartedAt  time.Time
	FinishedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewJob creates a running job for a tenant
func NewJob(tenantID uuid.UUID, jobType JobType) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Type:      jobType,
		Status:    JobStatusRunning,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Complete marks the job as successfully finished
func (j *Job) Complete() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.FinishedAt = &now
	j.UpdatedAt = now
}

// Fail marks the job as failed with the captured error message
func (j *Job) Fail(errMsg string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.ErrorMsg = errMsg
	j.FinishedAt = &now
	j.UpdatedAt = now
}

// JobRepository defines the persistence port for sync jobs
type JobRepository interface {
	// Save creates or updates a job
	Save(ctx context.Context, j *Job) error

	// FindByID finds a job by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)

	// FindByTenant lists jobs for a tenant, newest first
	FindByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]Job, error)
}
