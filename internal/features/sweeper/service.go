package sweeper

import (
	"context"
	"time"

	"go-vault/internal/config"
	"go-vault/internal/features/file"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweeperService is the retention sweep: every interval it purges all files
// marked for deletion, removing blob and metadata. It is a trusted internal
// actor and performs no per-file authorization.
type SweeperService interface {
	// Sweep is idempotent; failed items stay PendingDeletion and are
	// retried on the next run (at-least-once purge).
	Sweep(ctx context.Context) (purged, failed int)
	InitializeScheduler(ctx context.Context) error
	StopScheduler() error
}

type SweeperServiceImpl struct {
	FileRepo    file.FileRepository
	FileService file.FileService
	Logger      *zap.Logger

	interval  time.Duration
	scheduler *cron.Cron
}

func NewSweeperService(fileRepo file.FileRepository, fileService file.FileService, cfg *config.Config, logger *zap.Logger) SweeperService {
	return &SweeperServiceImpl{
		FileRepo:    fileRepo,
		FileService: fileService,
		Logger:      logger,
		interval:    cfg.SweepInterval,
	}
}

func (s *SweeperServiceImpl) Sweep(ctx context.Context) (purged, failed int) {
	pending, err := s.FileRepo.FindAllPending(ctx)
	if err != nil {
		s.Logger.Error("sweep scan failed", zap.Error(err))
		return 0, 0
	}

	// The scan is the snapshot: a restore landing after this point can
	// lose the race with the purge below.
	for _, f := range pending {
		if err := s.FileService.PurgeFile(ctx, f); err != nil {
			// Per-item isolation: the batch continues and this file
			// stays pending for the next run.
			s.Logger.Warn("purge failed, deferring to next run",
				zap.String("file_id", f.ID.Hex()),
				zap.Error(err))
			failed++
			continue
		}
		purged++
	}

	if purged > 0 || failed > 0 {
		s.Logger.Info("retention sweep finished",
			zap.Int("purged", purged),
			zap.Int("failed", failed))
	}
	return purged, failed
}

// sweepRunTimeout caps a single scheduled run so a hung blob store cannot
// stall the scheduler past the next interval.
const sweepRunTimeout = 10 * time.Minute

func (s *SweeperServiceImpl) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepRunTimeout)
	defer cancel()
	s.Sweep(ctx)
}

func (s *SweeperServiceImpl) InitializeScheduler(ctx context.Context) error {
	s.scheduler = cron.New()
	s.scheduler.Schedule(cron.Every(s.interval), cron.FuncJob(s.runScheduled))
	s.scheduler.Start()

	s.Logger.Info("retention sweeper scheduled",
		zap.Duration("interval", s.interval))
	return nil
}

func (s *SweeperServiceImpl) StopScheduler() error {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	return nil
}
