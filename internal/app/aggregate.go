package app

import (
	"sort"
	"time"

	"villastay/internal/domain"
)

// Sortable fields for the availability listing.
const (
	SortAvgPrice = "avg_price_per_night"
	OrderAsc     = "asc"
	OrderDesc    = "desc"
)

// villaAccumulator folds one villa's in-window calendar rows. Mirrors the
// SQL shape GROUP BY villa HAVING COUNT(DISTINCT date) = nights AND
// every night available, computed in-process.
type villaAccumulator struct {
	villa        domain.Villa
	dates        map[time.Time]struct{}
	subtotal     int64
	allAvailable bool
	corrupt      bool
}

// aggregateAvailability reduces joined calendar rows into the set of villas
// that are fully available for every night of the window, sorted and
// paginated. Total always reflects the filtered count before pagination.
func aggregateAvailability(rows []domain.CalendarRow, w domain.StayWindow, sortBy, order string, pg domain.PageParams) domain.AvailabilityPage {
	accs := map[int64]*villaAccumulator{}
	for _, row := range rows {
		acc, ok := accs[row.VillaID]
		if !ok {
			acc = &villaAccumulator{
				villa:        domain.Villa{ID: row.VillaID, Name: row.Name, Location: row.Location},
				dates:        map[time.Time]struct{}{},
				allAvailable: true,
			}
			accs[row.VillaID] = acc
		}
		if _, seen := acc.dates[row.Date]; seen {
			continue // distinct-date count: duplicates never double-bill
		}
		acc.dates[row.Date] = struct{}{}
		acc.subtotal += row.Rate
		if !row.IsAvailable {
			acc.allAvailable = false
		}
		if row.Rate < 0 {
			acc.corrupt = true
		}
	}

	var items []domain.VillaSummary
	for _, acc := range accs {
		// A missing date or a single unavailable night excludes the
		// villa entirely; there is no partial-availability listing.
		if len(acc.dates) != w.Nights || !acc.allAvailable || acc.corrupt {
			continue
		}
		items = append(items, domain.VillaSummary{
			ID:       acc.villa.ID,
			Name:     acc.villa.Name,
			Location: acc.villa.Location,
			Nights:   w.Nights,
			Subtotal: acc.subtotal,
		})
	}

	sortSummaries(items, sortBy, order)

	total := len(items)
	return domain.AvailabilityPage{
		Page:  pg.Page,
		Limit: pg.Limit,
		Total: total,
		Items: pageSlice(items, pg),
	}
}

// sortSummaries orders deterministically: by avg price when requested (nights
// is constant across the result set, so comparing subtotals is exact and
// avoids float comparison), otherwise by id; ties always break by id asc.
func sortSummaries(items []domain.VillaSummary, sortBy, order string) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if sortBy == SortAvgPrice && a.Subtotal != b.Subtotal {
			if order == OrderDesc {
				return a.Subtotal > b.Subtotal
			}
			return a.Subtotal < b.Subtotal
		}
		return a.ID < b.ID
	})
}

func pageSlice(items []domain.VillaSummary, pg domain.PageParams) []domain.VillaSummary {
	start := pg.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + pg.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
