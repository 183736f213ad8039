package domain

import (
	"time"
)

// DateFormat is the only accepted calendar-date layout.
const DateFormat = "2006-01-02"

// StayWindow is a validated half-open stay interval [CheckIn, CheckOut).
// The checkout date is never billed or checked for availability.
// Immutable once parsed.
type StayWindow struct {
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
}

// ParseStayWindow parses two strict YYYY-MM-DD strings into a StayWindow.
// Any format deviation (wrong length, non-numeric, impossible calendar date)
// or a window with nights <= 0 yields ErrInvalidDateRange.
func ParseStayWindow(checkIn, checkOut string) (StayWindow, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return StayWindow{}, ErrInvalidDateRange
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return StayWindow{}, ErrInvalidDateRange
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights <= 0 {
		return StayWindow{}, ErrInvalidDateRange
	}
	return StayWindow{CheckIn: in, CheckOut: out, Nights: nights}, nil
}

// ParseDate parses a single strict YYYY-MM-DD date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateFormat) {
		return time.Time{}, ErrInvalidDateRange
	}
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDateRange
	}
	return t, nil
}

// QueryStart and QueryEnd bound the inclusive range [CheckIn, CheckOut-1d]
// for range-inclusive storage queries (SQL BETWEEN is inclusive on both
// sides). Never use CheckOut directly in an inclusive query: that would pull
// in the checkout date.
func (w StayWindow) QueryStart() time.Time { return w.CheckIn }
func (w StayWindow) QueryEnd() time.Time   { return w.CheckOut.AddDate(0, 0, -1) }

// Dates enumerates the billed nights [CheckIn, CheckOut) in ascending order.
func (w StayWindow) Dates() []time.Time {
	out := make([]time.Time, 0, w.Nights)
	for d := w.CheckIn; d.Before(w.CheckOut); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

func (w StayWindow) CheckInString() string  { return w.CheckIn.Format(DateFormat) }
func (w StayWindow) CheckOutString() string { return w.CheckOut.Format(DateFormat) }
