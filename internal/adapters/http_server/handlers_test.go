package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "villastay/internal/adapters/http_server"
	"villastay/internal/app"
	"villastay/internal/domain"
)

// ---- fakes ----

type stubRepo struct {
	villas  map[int64]domain.Villa
	calRows []domain.CalendarRow
	nightly map[int64][]domain.NightlyRecord
}

func (s *stubRepo) ListCalendarRows(ctx context.Context, start, end time.Time) ([]domain.CalendarRow, error) {
	return s.calRows, nil
}
func (s *stubRepo) GetVilla(ctx context.Context, id int64) (domain.Villa, error) {
	v, ok := s.villas[id]
	if !ok {
		return domain.Villa{}, domain.ErrNotFound
	}
	return v, nil
}
func (s *stubRepo) GetCalendarForVilla(ctx context.Context, id int64, w domain.StayWindow) ([]domain.NightlyRecord, error) {
	return s.nightly[id], nil
}
func (s *stubRepo) UpsertVilla(ctx context.Context, v domain.Villa) error { return nil }
func (s *stubRepo) UpsertCalendarDay(ctx context.Context, villaID int64, rec domain.NightlyRecord) error {
	return nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (noopCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
func (noopCache) Del(ctx context.Context, key string) error { return nil }

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func newTestServer(t *testing.T, repo *stubRepo) *httptest.Server {
	t.Helper()
	q := app.NewQueryService(repo, noopCache{}, time.Minute, 0.18)
	srv := httpserver.New(0)
	srv.MountHandlers(&httpserver.Handlers{Q: q})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

// ---- tests ----

func TestListAvailability_OK(t *testing.T) {
	repo := &stubRepo{
		calRows: []domain.CalendarRow{
			{VillaID: 1, Name: "Villa Goa Sunset", Location: "Goa", Date: mustDay(t, "2025-01-10"), IsAvailable: true, Rate: 30000},
			{VillaID: 1, Name: "Villa Goa Sunset", Location: "Goa", Date: mustDay(t, "2025-01-11"), IsAvailable: true, Rate: 31000},
			{VillaID: 1, Name: "Villa Goa Sunset", Location: "Goa", Date: mustDay(t, "2025-01-12"), IsAvailable: true, Rate: 32000},
		},
	}
	ts := newTestServer(t, repo)

	res, err := http.Get(ts.URL + "/v1/villas/availability?check_in=2025-01-10&check_out=2025-01-13")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body struct {
		Meta struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Total int `json:"total"`
		} `json:"meta"`
		Data []struct {
			ID               int64   `json:"id"`
			Nights           int     `json:"nights"`
			Subtotal         int64   `json:"subtotal"`
			AvgPricePerNight float64 `json:"avg_price_per_night"`
		} `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Meta.Page != 1 || body.Meta.Limit != 10 || body.Meta.Total != 1 {
		t.Fatalf("meta: %+v", body.Meta)
	}
	if len(body.Data) != 1 || body.Data[0].Subtotal != 93000 || body.Data[0].Nights != 3 {
		t.Fatalf("data: %+v", body.Data)
	}
	if body.Data[0].AvgPricePerNight != 31000 {
		t.Fatalf("avg: %v", body.Data[0].AvgPricePerNight)
	}
}

func TestListAvailability_BadDates(t *testing.T) {
	ts := newTestServer(t, &stubRepo{})

	cases := []string{
		"/v1/villas/availability?check_in=2025-1-1&check_out=2025-01-13",
		"/v1/villas/availability?check_in=2025-01-10&check_out=13-01-2025",
		"/v1/villas/availability?check_in=2025-01-10&check_out=2025-01-10", // equal: passes regex, core rejects
		"/v1/villas/availability?check_in=2025-02-30&check_out=2025-03-02", // impossible date
		"/v1/villas/availability",
	}
	for _, path := range cases {
		res, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", path, res.StatusCode)
		}
	}
}

func TestListAvailability_BadSortOrder(t *testing.T) {
	ts := newTestServer(t, &stubRepo{})

	for _, path := range []string{
		"/v1/villas/availability?check_in=2025-01-10&check_out=2025-01-13&sort=name",
		"/v1/villas/availability?check_in=2025-01-10&check_out=2025-01-13&order=sideways",
	} {
		res, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", path, res.StatusCode)
		}
	}
}

func TestListAvailability_LenientPagination(t *testing.T) {
	ts := newTestServer(t, &stubRepo{})

	// Non-numeric page/limit must clamp to defaults, never 400.
	res, err := http.Get(ts.URL + "/v1/villas/availability?check_in=2025-01-10&check_out=2025-01-13&page=abc&limit=-5")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", res.StatusCode)
	}
	var body struct {
		Meta struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Meta.Page != 1 || body.Meta.Limit != 10 {
		t.Fatalf("meta: %+v", body.Meta)
	}
}

func TestGetQuote_OK(t *testing.T) {
	repo := &stubRepo{
		villas: map[int64]domain.Villa{1: {ID: 1, Name: "Villa Goa Sunset", Location: "Goa"}},
		nightly: map[int64][]domain.NightlyRecord{1: {
			{Date: mustDay(t, "2025-01-10"), IsAvailable: true, Rate: 30000},
			{Date: mustDay(t, "2025-01-11"), IsAvailable: true, Rate: 31000},
			{Date: mustDay(t, "2025-01-12"), IsAvailable: true, Rate: 32000},
		}},
	}
	ts := newTestServer(t, repo)

	res, err := http.Get(ts.URL + "/v1/villas/1/quote?check_in=2025-01-10&check_out=2025-01-13")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var q struct {
		Villa struct {
			ID int64 `json:"id"`
		} `json:"villa"`
		IsAvailable      bool  `json:"is_available"`
		Subtotal         int64 `json:"subtotal"`
		GST              int64 `json:"gst"`
		Total            int64 `json:"total"`
		NightlyBreakdown []struct {
			Date string `json:"date"`
		} `json:"nightly_breakdown"`
	}
	if err := json.NewDecoder(res.Body).Decode(&q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !q.IsAvailable || q.Subtotal != 93000 || q.GST != 16740 || q.Total != 109740 {
		t.Fatalf("quote: %+v", q)
	}
	if len(q.NightlyBreakdown) != 3 || q.NightlyBreakdown[0].Date != "2025-01-10" {
		t.Fatalf("breakdown: %+v", q.NightlyBreakdown)
	}
}

func TestGetQuote_MissingNight(t *testing.T) {
	repo := &stubRepo{
		villas: map[int64]domain.Villa{3: {ID: 3, Name: "Villa Alibaug Breeze", Location: "Alibaug"}},
		nightly: map[int64][]domain.NightlyRecord{3: {
			{Date: mustDay(t, "2025-01-10"), IsAvailable: true, Rate: 20000},
			{Date: mustDay(t, "2025-01-12"), IsAvailable: true, Rate: 22000},
		}},
	}
	ts := newTestServer(t, repo)

	res, err := http.Get(ts.URL + "/v1/villas/3/quote?check_in=2025-01-10&check_out=2025-01-13")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var q struct {
		IsAvailable      bool            `json:"is_available"`
		Subtotal         int64           `json:"subtotal"`
		NightlyBreakdown json.RawMessage `json:"nightly_breakdown"`
	}
	if err := json.NewDecoder(res.Body).Decode(&q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.IsAvailable {
		t.Fatalf("expected unavailable quote")
	}
	if q.Subtotal != 42000 {
		t.Fatalf("subtotal: %d", q.Subtotal)
	}
}

func TestGetQuote_NotFoundAndBadID(t *testing.T) {
	ts := newTestServer(t, &stubRepo{villas: map[int64]domain.Villa{}})

	res, err := http.Get(ts.URL + "/v1/villas/999/quote?check_in=2025-01-10&check_out=2025-01-13")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown villa: status %d, want 404", res.StatusCode)
	}

	res, err = http.Get(ts.URL + "/v1/villas/abc/quote?check_in=2025-01-10&check_out=2025-01-13")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad id: status %d, want 400", res.StatusCode)
	}
}

func TestGetQuote_BadWindowOnUnknownVilla(t *testing.T) {
	ts := newTestServer(t, &stubRepo{villas: map[int64]domain.Villa{}})

	// An inverted window is a 400 even when the villa does not exist.
	res, err := http.Get(ts.URL + "/v1/villas/999/quote?check_in=2025-01-13&check_out=2025-01-10")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", res.StatusCode)
	}
}

func TestETag_NotModified(t *testing.T) {
	repo := &stubRepo{
		calRows: []domain.CalendarRow{
			{VillaID: 1, Name: "V", Location: "Goa", Date: mustDay(t, "2025-01-10"), IsAvailable: true, Rate: 1000},
		},
	}
	ts := newTestServer(t, repo)
	url := ts.URL + "/v1/villas/availability?check_in=2025-01-10&check_out=2025-01-11"

	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}

	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("status %d, want 304", res2.StatusCode)
	}
}
