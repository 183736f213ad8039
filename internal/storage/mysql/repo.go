package mysql

import (
	"context"
	"database/sql"
	"time"

	"villastay/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) ListCalendarRows(ctx context.Context, start, end time.Time) ([]domain.CalendarRow, error) {
	rows, err := r.db.QueryContext(ctx, listCalendarRowsSQL,
		start.Format(domain.DateFormat), end.Format(domain.DateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CalendarRow
	for rows.Next() {
		var cr domain.CalendarRow
		var date time.Time
		var rate sql.NullInt64
		if err := rows.Scan(&cr.VillaID, &cr.Name, &cr.Location, &date, &cr.IsAvailable, &rate); err != nil {
			return nil, err
		}
		cr.Date = normalizeDate(date)
		if rate.Valid {
			cr.Rate = rate.Int64
		}
		out = append(out, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetVilla(ctx context.Context, id int64) (domain.Villa, error) {
	var v domain.Villa
	err := r.db.QueryRowContext(ctx, getVillaSQL, id).Scan(&v.ID, &v.Name, &v.Location)
	if err == sql.ErrNoRows {
		return domain.Villa{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Villa{}, err
	}
	return v, nil
}

func (r *Repo) GetCalendarForVilla(ctx context.Context, id int64, w domain.StayWindow) ([]domain.NightlyRecord, error) {
	rows, err := r.db.QueryContext(ctx, calendarForVillaSQL,
		id, w.CheckInString(), w.CheckOutString())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.NightlyRecord
	for rows.Next() {
		var rec domain.NightlyRecord
		var date time.Time
		var rate sql.NullInt64
		if err := rows.Scan(&date, &rec.IsAvailable, &rate); err != nil {
			return nil, err
		}
		rec.Date = normalizeDate(date)
		// NULL rate coerces to zero; the quote path must not fail on it.
		if rate.Valid {
			rec.Rate = rate.Int64
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) UpsertVilla(ctx context.Context, v domain.Villa) error {
	_, err := r.db.ExecContext(ctx, upsertVillaSQL, v.ID, v.Name, v.Location)
	return err
}

func (r *Repo) UpsertCalendarDay(ctx context.Context, villaID int64, rec domain.NightlyRecord) error {
	_, err := r.db.ExecContext(ctx, upsertCalendarDaySQL,
		villaID, rec.Date.Format(domain.DateFormat), rec.IsAvailable, rec.Rate)
	return err
}

// normalizeDate pins a scanned DATE column to UTC midnight so date equality
// works regardless of the connection's time handling.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
