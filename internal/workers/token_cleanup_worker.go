package workers

import (
	"context"
	"time"

	"collabra_backend/internal/logger"
	"collabra_backend/internal/repositories"

	"gorm.io/gorm"
)

// TokenCleanupWorker periodically deletes expired verification and refresh
// tokens. Expired rows are already harmless (verification checks expiry); the
// worker only keeps the tables from growing without bound.
type TokenCleanupWorker struct {
	db               *gorm.DB
	tokenRepo        repositories.VerificationTokenRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	interval         time.Duration
}

func NewTokenCleanupWorker(
	db *gorm.DB,
	tokenRepo repositories.VerificationTokenRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *TokenCleanupWorker {
	return &TokenCleanupWorker{
		db:               db,
		tokenRepo:        tokenRepo,
		refreshTokenRepo: refreshTokenRepo,
		interval:         6 * time.Hour,
	}
}

func (w *TokenCleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *TokenCleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("token cleanup worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *TokenCleanupWorker) sweep() {
	// Keep expired verification tokens for a day past expiry so that a late
	// verify attempt still gets the expired answer instead of unknown-token.
	cutoff := time.Now().Add(-24 * time.Hour)

	deleted, err := w.tokenRepo.DeleteExpired(w.db, cutoff)
	logger.WorkerLog("token_cleanup", "delete expired verification tokens", err)
	if err == nil && deleted > 0 {
		logger.Info("expired verification tokens purged", "count", deleted)
	}

	err = w.refreshTokenRepo.CleanExpired(w.db)
	logger.WorkerLog("token_cleanup", "delete expired refresh tokens", err)
}
