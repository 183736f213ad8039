package mysql

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Calendar rows for every villa inside an inclusive date range, joined with
// villa metadata. The caller passes [check_in, check_out - 1 day]: BETWEEN is
// inclusive on both sides, so passing check_out itself would wrongly include
// the checkout date.
const listCalendarRowsSQL = `
SELECT
  v.id,
  v.name,
  v.location,
  vc.date,
  vc.is_available,
  vc.rate
FROM villas v
JOIN villa_calendar vc ON vc.villa_id = v.id
WHERE vc.date BETWEEN ? AND ?
ORDER BY v.id, vc.date
`

const getVillaSQL = `
SELECT id, name, location
FROM villas
WHERE id = ?
`

// Half-open window [check_in, check_out): strict < on the upper bound.
const calendarForVillaSQL = `
SELECT date, is_available, rate
FROM villa_calendar
WHERE villa_id = ?
  AND date >= ?
  AND date < ?
ORDER BY date ASC
`

// -----------------------------------------------------------------------------
// WRITE QUERIES (seeder)
// -----------------------------------------------------------------------------

const upsertVillaSQL = `
INSERT INTO villas (id, name, location)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  name       = VALUES(name),
  location   = VALUES(location),
  updated_at = CURRENT_TIMESTAMP
`

const upsertCalendarDaySQL = `
INSERT INTO villa_calendar (villa_id, date, is_available, rate)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  is_available = VALUES(is_available),
  rate         = VALUES(rate),
  updated_at   = CURRENT_TIMESTAMP
`
