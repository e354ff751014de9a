package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/sync"
)

// SyncJobModel is the persistence model for the sync Job domain entity.
type SyncJobModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type       sync.JobType   `gorm:"type:varchar(20);not null"`
	Status     sync.JobStatus `gorm:"type:varchar(20);not null"`
	ErrorMsg   string         `gorm:"type:text"`
	StartedAt  time.Time      `gorm:"not null"`
	FinishedAt *time.Time
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SyncJobModel) TableName() string {
	return "sync_jobs"
}

// ToDomain converts the persistence model to a domain Job entity.
func (m *SyncJobModel) ToDomain() *sync.Job {
	return &sync.Job{
		ID:         m.ID,
		TenantID:   m.TenantID,
		Type:       m.Type,
		Status:     m.Status,
		ErrorMsg:   m.ErrorMsg,
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Job entity.
func (m *SyncJobModel) FromDomain(j *sync.Job) {
	m.ID = j.ID
	m.TenantID = j.TenantID
	m.Type = j.Type
	m.Status = j.Status
	m.ErrorMsg = j.ErrorMsg
	m.StartedAt = j.StartedAt
	m.FinishedAt = j.FinishedAt
	m.CreatedAt = j.CreatedAt
	m.UpdatedAt = j.UpdatedAt
}

// SyncJobModelFromDomain creates a new persistence model from a domain Job entity.
func SyncJobModelFromDomain(j *sync.Job) *SyncJobModel {
	m := &SyncJobModel{}
	m.FromDomain(j)
	return m
}

// WebhookEventModel is the persistence model for the sync Event domain entity.
// The unique index on (tenant_id, webhook_id) is what makes duplicate
// deliveries collapse into a single row under concurrency.
type WebhookEventModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key"`
	TenantID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_event_tenant_webhook,priority:1"`
	WebhookID   string           `gorm:"type:varchar(255);not null;uniqueIndex:idx_event_tenant_webhook,priority:2"`
	Topic       string           `gorm:"type:varchar(100);not null"`
	EntityType  string           `gorm:"type:varchar(50);not null;index"`
	EntityID    string           `gorm:"type:varchar(100)"`
	StoreDomain string           `gorm:"type:varchar(255)"`
	Payload     []byte
	Status      sync.EventStatus `gorm:"type:varchar(20);not null;index"`
	ErrorMsg    string           `gorm:"type:text"`
	ProcessedAt *time.Time
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WebhookEventModel) TableName() string {
	return "webhook_events"
}

// ToDomain converts the persistence model to a domain Event entity.
func (m *WebhookEventModel) ToDomain() *sync.Event {
	return &sync.Event{
		ID:          m.ID,
		TenantID:    m.TenantID,
		WebhookID:   m.WebhookID,
		Topic:       m.Topic,
		EntityType:  m.EntityType,
		EntityID:    m.EntityID,
		StoreDomain: m.StoreDomain,
		Payload:     m.Payload,
		Status:      m.Status,
		ErrorMsg:    m.ErrorMsg,
		ProcessedAt: m.ProcessedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Event entity.
func (m *WebhookEventModel) FromDomain(e *sync.Event) {
	m.ID = e.ID
	m.TenantID = e.TenantID
	m.WebhookID = e.WebhookID
	m.Topic = e.Topic
	m.EntityType = e.EntityType
	m.EntityID = e.EntityID
	m.StoreDomain = e.StoreDomain
	m.Payload = e.Payload
	m.Status = e.Status
	m.ErrorMsg = e.ErrorMsg
	m.ProcessedAt = e.ProcessedAt
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// WebhookEventModelFromDomain creates a new persistence model from a domain Event entity.
func WebhookEventModelFromDomain(e *sync.Event) *WebhookEventModel {
	m := &WebhookEventModel{}
	m.FromDomain(e)
	return m
}
