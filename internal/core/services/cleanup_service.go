package services

import (
	"context"
	"time"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CleanupService runs scheduled maintenance jobs. Currently a single
// nightly job purging expired refresh tokens.
type CleanupService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
	log              *zap.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(refreshTokenRepo repositories.RefreshTokenRepository, log *zap.Logger) *CleanupService {
	return &CleanupService{
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
		log:              log,
	}
}

// Start schedules the jobs and launches the scheduler
func (s *CleanupService) Start() error {
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("cleanup scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("cleanup scheduler stopped")
}

func (s *CleanupService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		s.log.Error("expired token purge failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.log.Info("expired tokens purged", zap.Int64("removed", removed))
	}
}
