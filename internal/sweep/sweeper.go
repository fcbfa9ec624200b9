package sweep

import (
	"context"
	"log"
	"time"
)

// The sweeper owns the three periodic maintenance jobs: archiving stale listings,
// expiring abandoned carts, and flagging verifications stuck in moderation.

type ArtworkArchiver interface {
	ArchiveStale(ctx context.Context, olderThanDays int) (int64, error)
}

type CartExpirer interface {
	ExpireStale(ctx context.Context, olderThanDays int) (int64, error)
}

type VerificationNotifier interface {
	NotifyAging(ctx context.Context, olderThanDays int) (int, error)
}

type Config struct {
	Interval         time.Duration
	ArchiveAfterDays int
	CartExpiryDays   int
	AgingNoticeDays  int
}

type Sweeper struct {
	artworks      ArtworkArchiver
	carts         CartExpirer
	verifications VerificationNotifier
	cfg           Config
}

func New(artworks ArtworkArchiver, carts CartExpirer, verifications VerificationNotifier, cfg Config) *Sweeper {
	return &Sweeper{artworks: artworks, carts: carts, verifications: verifications, cfg: cfg}
}

// Run sweeps once immediately, then on every tick until the context is done.
func (s *Sweeper) Run(ctx context.Context) {
	s.RunOnce(ctx)
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes all jobs; one failing job does not stop the others.
func (s *Sweeper) RunOnce(ctx context.Context) {
	if n, err := s.artworks.ArchiveStale(ctx, s.cfg.ArchiveAfterDays); err != nil {
		log.Printf("sweep: archive stale artworks: %v", err)
	} else if n > 0 {
		log.Printf("sweep: archived %d stale artworks", n)
	}
	if n, err := s.carts.ExpireStale(ctx, s.cfg.CartExpiryDays); err != nil {
		log.Printf("sweep: expire stale carts: %v", err)
	} else if n > 0 {
		log.Printf("sweep: expired %d stale cart lines", n)
	}
	if n, err := s.verifications.NotifyAging(ctx, s.cfg.AgingNoticeDays); err != nil {
		log.Printf("sweep: notify aging verifications: %v", err)
	} else if n > 0 {
		log.Printf("sweep: %d verifications pending over %dd", n, s.cfg.AgingNoticeDays)
	}
}
