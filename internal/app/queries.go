package app

import (
	"context"
	"fmt"
	"time"

	"villastay/internal/domain"
)

type QueryService struct {
	repo     domain.VillaRepository
	cache    domain.Cache
	cacheTTL time.Duration
	gstRate  float64
}

func NewQueryService(r domain.VillaRepository, c domain.Cache, ttl time.Duration, gstRate float64) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl, gstRate: gstRate}
}

// AvailabilityRequest carries pre-validated listing inputs. Dates are raw
// strings (format-checked upstream, re-parsed strictly here); page/limit may
// be non-positive and will be clamped, never rejected.
type AvailabilityRequest struct {
	CheckIn  string
	CheckOut string
	Sort     string
	Order    string
	Page     int
	Limit    int
}

func (s *QueryService) ListAvailability(ctx context.Context, req AvailabilityRequest) (domain.AvailabilityPage, error) {
	w, err := domain.ParseStayWindow(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.AvailabilityPage{}, err
	}
	pg := domain.NewPageParams(req.Page, req.Limit)

	key := fmt.Sprintf("avail:%s:%s:%s:%s:%d:%d",
		w.CheckInString(), w.CheckOutString(), req.Sort, req.Order, pg.Page, pg.Limit)
	var page domain.AvailabilityPage
	if ok, _ := s.cache.Get(ctx, key, &page); ok {
		return page, nil
	}

	rows, err := s.repo.ListCalendarRows(ctx, w.QueryStart(), w.QueryEnd())
	if err != nil {
		return domain.AvailabilityPage{}, fmt.Errorf("list calendar rows: %w", err)
	}

	page = aggregateAvailability(rows, w, req.Sort, req.Order, pg)
	_ = s.cache.Set(ctx, key, page, int(s.cacheTTL.Seconds()))
	return page, nil
}

// GetQuote builds the full nightly breakdown and GST total for one villa.
// The window is validated before the villa lookup: a bad date range is
// always an invalid-input error, even for unknown villas.
func (s *QueryService) GetQuote(ctx context.Context, villaID int64, checkIn, checkOut string) (domain.Quote, error) {
	w, err := domain.ParseStayWindow(checkIn, checkOut)
	if err != nil {
		return domain.Quote{}, err
	}

	villa, err := s.repo.GetVilla(ctx, villaID)
	if err != nil {
		return domain.Quote{}, err
	}

	key := quoteCacheKey(villaID, w.CheckInString(), w.CheckOutString(), s.gstRate)
	var q domain.Quote
	if ok, _ := s.cache.Get(ctx, key, &q); ok {
		return q, nil
	}

	rows, err := s.repo.GetCalendarForVilla(ctx, villaID, w)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("calendar for villa %d: %w", villaID, err)
	}

	q, err = buildQuote(villa, w, rows, s.gstRate)
	if err != nil {
		return domain.Quote{}, err
	}
	_ = s.cache.Set(ctx, key, q, int(s.cacheTTL.Seconds()))
	return q, nil
}

// quoteCacheKey carries the GST rate so a rate change never serves quotes
// computed at the old rate.
func quoteCacheKey(villaID int64, checkIn, checkOut string, gstRate float64) string {
	return fmt.Sprintf("quote:%d:%s:%s:%g", villaID, checkIn, checkOut, gstRate)
}
