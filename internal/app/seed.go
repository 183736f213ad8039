package app

import (
	"context"
	"fmt"

	"villastay/internal/domain"
)

// SeedService loads demo villas and calendar windows into the store. Used by
// cmd/seeder only; the API itself is read-only.
type SeedService struct {
	repo    domain.VillaRepository
	cache   domain.Cache
	gstRate float64
}

func NewSeedService(r domain.VillaRepository, cache domain.Cache, gstRate float64) *SeedService {
	return &SeedService{repo: r, cache: cache, gstRate: gstRate}
}

// SeedVilla upserts the villa and its calendar rows, then evicts the cache
// entries most likely to hold a stale snapshot of it.
func (s *SeedService) SeedVilla(ctx context.Context, v domain.Villa, recs []domain.NightlyRecord) error {
	if err := s.repo.UpsertVilla(ctx, v); err != nil {
		return fmt.Errorf("upsert villa %d: %w", v.ID, err)
	}
	for _, rec := range recs {
		if err := s.repo.UpsertCalendarDay(ctx, v.ID, rec); err != nil {
			return fmt.Errorf("upsert calendar %d/%s: %w", v.ID, rec.Date.Format(domain.DateFormat), err)
		}
	}
	if s.cache != nil {
		s.invalidateVilla(ctx, v.ID, recs)
	}
	return nil
}

// invalidateVilla clears the quote keys covered by the seeded rows. Listing
// keys are window-shaped and left to TTL expiry.
func (s *SeedService) invalidateVilla(ctx context.Context, id int64, recs []domain.NightlyRecord) {
	for _, rec := range recs {
		in := rec.Date.Format(domain.DateFormat)
		out := rec.Date.AddDate(0, 0, 1).Format(domain.DateFormat)
		_ = s.cache.Del(ctx, quoteCacheKey(id, in, out, s.gstRate))
	}
	if n := len(recs); n > 0 {
		in := recs[0].Date.Format(domain.DateFormat)
		out := recs[n-1].Date.AddDate(0, 0, 1).Format(domain.DateFormat)
		_ = s.cache.Del(ctx, quoteCacheKey(id, in, out, s.gstRate))
	}
}
