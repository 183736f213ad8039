package app

import (
	"math"

	"villastay/internal/domain"
)

// buildQuote assembles the cost breakdown for one villa and window from its
// nightly rows (date-ascending, half-open window). A missing row is treated
// as unavailability, not an error: the quote is still fully computed over the
// rows that do exist. Negative rates are a data-integrity fault.
func buildQuote(villa domain.Villa, w domain.StayWindow, rows []domain.NightlyRecord, gstRate float64) (domain.Quote, error) {
	available := len(rows) == w.Nights

	breakdown := make([]domain.QuoteNight, 0, len(rows))
	var subtotal int64
	for _, r := range rows {
		if r.Rate < 0 {
			return domain.Quote{}, domain.ErrCorruptCalendar
		}
		if !r.IsAvailable {
			available = false
		}
		breakdown = append(breakdown, domain.QuoteNight{
			Date:        r.Date.Format(domain.DateFormat),
			Rate:        r.Rate,
			IsAvailable: r.IsAvailable,
		})
		subtotal += r.Rate
	}

	gst := roundHalfAwayFromZero(float64(subtotal) * gstRate)

	return domain.Quote{
		Villa:            villa,
		CheckIn:          w.CheckInString(),
		CheckOut:         w.CheckOutString(),
		Nights:           w.Nights,
		IsAvailable:      available,
		NightlyBreakdown: breakdown,
		Subtotal:         subtotal,
		GSTRate:          gstRate,
		GST:              gst,
		Total:            subtotal + gst,
	}, nil
}

// roundHalfAwayFromZero rounds to the nearest currency unit, halves away
// from zero (math.Round semantics).
func roundHalfAwayFromZero(x float64) int64 {
	return int64(math.Round(x))
}
