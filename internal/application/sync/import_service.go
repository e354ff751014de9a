package syncapp

import (
	"context"
	"errors"
	gosync "sync"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

// EntityFetcher is the paginated bulk fetch port. The platform client
// implements it; tests substitute a stub.
type EntityFetcher interface {
	FetchProducts(ctx context.Context, tenantID uuid.UUID, shop, accessToken string) (int, error)
	FetchOrders(ctx context.Context, tenantID uuid.UUID, shop, accessToken string) (int, error)
}

// importTask is one queued import run. The job row already exists in status
// running when the task is enqueued.
type importTask struct {
	job        *sync.Job
	tenant     *tenant.Tenant
	credential *tenant.Credential
}

// ImportService orchestrates full imports. Triggering is fire-and-forget:
// StartFullImport validates, records a running SyncJob and hands the work to
// a background worker over a buffered channel; callers poll the job row.
type ImportService struct {
	tenantRepo     tenant.Repository
	credentialRepo tenant.CredentialRepository
	jobRepo        sync.JobRepository
	fetcher        EntityFetcher
	logger         *zap.Logger

	queue chan importTask
	wg    gosync.WaitGroup
}

// NewImportService creates a new ImportService with the given queue capacity
func NewImportService(
	tenantRepo tenant.Repository,
	credentialRepo tenant.CredentialRepository,
	jobRepo sync.JobRepository,
	fetcher EntityFetcher,
	queueSize int,
	logger *zap.Logger,
) *ImportService {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &ImportService{
		tenantRepo:     tenantRepo,
		credentialRepo: credentialRepo,
		jobRepo:        jobRepo,
		fetcher:        fetcher,
		logger:         logger.Named("import"),
		queue:          make(chan importTask, queueSize),
	}
}

// Start launches the background import worker
func (s *ImportService) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for task := range s.queue {
			s.execute(context.Background(), task)
		}
	}()
}

// Stop closes the queue and waits for the in-flight import to finish
func (s *ImportService) Stop() {
	close(s.queue)
	s.wg.Wait()
}

// StartFullImport validates the tenant, records a running job and enqueues
// the import. It returns the job id immediately; completion is observed via
// the job row. A saturated queue fails the job with sync.ErrQueueFull.
func (s *ImportService) StartFullImport(ctx context.Context, tenantID uuid.UUID) (uuid.UUID, error) {
	task, err := s.prepare(ctx, tenantID)
	if err != nil {
		return uuid.Nil, err
	}

	select {
	case s.queue <- task:
		return task.job.ID, nil
	default:
		task.job.Fail("import queue is full")
		if saveErr := s.jobRepo.Save(ctx, task.job); saveErr != nil {
			s.logger.Error("Failed to record queue-full job failure",
				zap.String("job_id", task.job.ID.String()),
				zap.Error(saveErr),
			)
		}
		return uuid.Nil, sync.ErrQueueFull
	}
}

// RunFullImport performs a full import synchronously and returns the
// finished job. The job row reflects completed or failed either way; a
// failed run also returns the causing error.
func (s *ImportService) RunFullImport(ctx context.Context, tenantID uuid.UUID) (*sync.Job, error) {
	task, err := s.prepare(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.execute(ctx, task); err != nil {
		return task.job, err
	}
	return task.job, nil
}

// prepare validates tenant and credential and records a running job
func (s *ImportService) prepare(ctx context.Context, tenantID uuid.UUID) (importTask, error) {
	t, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return importTask{}, err
	}

	credential, err := s.credentialRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return importTask{}, sync.ErrMissingCredential
		}
		return importTask{}, err
	}

	job := sync.NewJob(tenantID, sync.JobTypeFull)
	if err := s.jobRepo.Save(ctx, job); err != nil {
		return importTask{}, err
	}

	return importTask{job: job, tenant: t, credential: credential}, nil
}

// execute runs the import for a prepared task: products first, then orders.
// Failures keep already-upserted rows; a rerun converges on the same state.
func (s *ImportService) execute(ctx context.Context, task importTask) error {
	log := s.logger.With(
		zap.String("tenant_id", task.tenant.ID.String()),
		zap.String("job_id", task.job.ID.String()),
		zap.String("shop", task.tenant.StoreDomain),
	)
	log.Info("Starting full import")

	products, orders, err := s.runFetches(ctx, task)
	if err != nil {
		task.job.Fail(err.Error())
		if saveErr := s.jobRepo.Save(ctx, task.job); saveErr != nil {
			log.Error("Failed to record job failure", zap.Error(saveErr))
		}
		log.Error("Full import failed", zap.Error(err))
		return err
	}

	task.job.Complete()
	if err := s.jobRepo.Save(ctx, task.job); err != nil {
		log.Error("Failed to record job completion", zap.Error(err))
		return err
	}
	log.Info("Full import completed",
		zap.Int("products", products),
		zap.Int("orders", orders),
	)
	return nil
}

func (s *ImportService) runFetches(ctx context.Context, task importTask) (products, orders int, err error) {
	shop := task.tenant.StoreDomain
	token := task.credential.AccessToken

	products, err = s.fetcher.FetchProducts(ctx, task.tenant.ID, shop, token)
	if err != nil {
		return products, 0, err
	}
	orders, err = s.fetcher.FetchOrders(ctx, task.tenant.ID, shop, token)
	return products, orders, err
}
