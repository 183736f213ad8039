package domain

import (
	"context"
	"time"
)

type VillaRepository interface {
	// Read paths
	// ListCalendarRows returns all villas' calendar rows inside the
	// inclusive date range [start, end], joined with villa metadata.
	ListCalendarRows(ctx context.Context, start, end time.Time) ([]CalendarRow, error)
	GetVilla(ctx context.Context, id int64) (Villa, error)
	// GetCalendarForVilla returns one villa's rows for the half-open stay
	// window [CheckIn, CheckOut), ordered ascending by date.
	GetCalendarForVilla(ctx context.Context, id int64, w StayWindow) ([]NightlyRecord, error)

	// Write paths (seeder only; the API itself never mutates)
	UpsertVilla(ctx context.Context, v Villa) error
	UpsertCalendarDay(ctx context.Context, villaID int64, rec NightlyRecord) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
