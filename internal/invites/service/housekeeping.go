package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dwellhq/dwell/internal/invites/store"
)

// HousekeepingService periodically hard-deletes soft-deleted invites and
// invites expired past the retention window. Purely hygienic: expiry and
// exhaustion are enforced at redemption time, never by this worker.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. Interval defaults
// to 1 hour, retention to 30 days.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"retention", s.Retention,
	)
}

// Stop shuts the worker down, blocking until any in-progress cleanup
// finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	cutoff := time.Now().Add(-s.Retention)

	if err := s.Store.Invites().PurgeExpiredInvites(ctx, cutoff); err != nil {
		s.Logger.Error("failed to purge expired invites", "error", err)
		return
	}
	s.Logger.Debug("purged expired invites", "cutoff", cutoff)
}
