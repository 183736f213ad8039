package domain

import "time"

type Villa struct {
	ID       int64
	Name     string
	Location string
}

// NightlyRecord is one villa's calendar state for one date.
// Rate is in minor currency units and non-negative by schema.
type NightlyRecord struct {
	Date        time.Time
	IsAvailable bool
	Rate        int64
}

// CalendarRow is a NightlyRecord joined with its villa, as returned by the
// inclusive-range calendar query used for the availability listing.
type CalendarRow struct {
	VillaID     int64
	Name        string
	Location    string
	Date        time.Time
	IsAvailable bool
	Rate        int64
}

// VillaSummary is one row of the availability listing. AvgPricePerNight is
// derived from the integral Subtotal/Nights pair at serialization time so the
// identity avg * nights == subtotal holds exactly.
type VillaSummary struct {
	ID       int64
	Name     string
	Location string
	Nights   int
	Subtotal int64
}

func (s VillaSummary) AvgPricePerNight() float64 {
	if s.Nights == 0 {
		return 0
	}
	return float64(s.Subtotal) / float64(s.Nights)
}

type AvailabilityPage struct {
	Page  int
	Limit int
	Total int
	Items []VillaSummary
}
