package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/centinela-seguridad/cpq-api/internal/service"
)

// CatalogSyncJobName is the name of the catalog price sync job
const CatalogSyncJobName = "catalog_sync"

// CatalogSyncService defines the interface for refreshing catalog
// prices from the ERP warehouse. It allows the job to call the service
// without importing its concrete wiring.
type CatalogSyncService interface {
	SyncPrices(ctx context.Context) (*service.CatalogSyncResult, error)
}

// CatalogSyncJob refreshes catalog reference prices from the ERP.
type CatalogSyncJob struct {
	catalogService CatalogSyncService
	logger         *zap.Logger
	timeout        time.Duration
}

// NewCatalogSyncJob creates a new catalog price sync job.
// The timeout controls how long the sync operation is allowed to run.
func NewCatalogSyncJob(catalogService CatalogSyncService, logger *zap.Logger, timeout time.Duration) *CatalogSyncJob {
	return &CatalogSyncJob{
		catalogService: catalogService,
		logger:         logger,
		timeout:        timeout,
	}
}

// Run executes the catalog price sync.
// This is called by the scheduler according to the cron expression.
func (j *CatalogSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting catalog price sync job")

	result, err := j.catalogService.SyncPrices(ctx)
	if err != nil {
		j.logger.Error("catalog price sync failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("catalog price sync job completed",
		zap.Int("fetched", result.Fetched),
		zap.Int("updated", result.Updated),
		zap.Int("unmatched", result.Unmatched),
		zap.Duration("duration", time.Since(start)))
}

// RegisterCatalogSyncJob registers the catalog price sync job with the
// scheduler. The cronExpr should be a valid cron expression, e.g.
// "30 3 * * *" for a nightly refresh.
func RegisterCatalogSyncJob(scheduler *Scheduler, catalogService CatalogSyncService, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewCatalogSyncJob(catalogService, logger, timeout)
	return scheduler.AddJob(CatalogSyncJobName, cronExpr, job.Run)
}
