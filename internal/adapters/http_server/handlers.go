package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"villastay/internal/adapters/observability"
	"villastay/internal/app"
	"villastay/internal/domain"
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Wire shapes. Field names follow the public API contract (snake_case).

type villaSummaryJSON struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Location         string  `json:"location"`
	Nights           int     `json:"nights"`
	Subtotal         int64   `json:"subtotal"`
	AvgPricePerNight float64 `json:"avg_price_per_night"`
}

type availabilityJSON struct {
	Meta struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	} `json:"meta"`
	Data []villaSummaryJSON `json:"data"`
}

type quoteNightJSON struct {
	Date        string `json:"date"`
	Rate        int64  `json:"rate"`
	IsAvailable bool   `json:"is_available"`
}

type quoteJSON struct {
	Villa struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Location string `json:"location"`
	} `json:"villa"`
	CheckIn          string           `json:"check_in"`
	CheckOut         string           `json:"check_out"`
	Nights           int              `json:"nights"`
	IsAvailable      bool             `json:"is_available"`
	NightlyBreakdown []quoteNightJSON `json:"nightly_breakdown"`
	Subtotal         int64            `json:"subtotal"`
	GSTRate          float64          `json:"gst_rate"`
	GST              int64            `json:"gst"`
	Total            int64            `json:"total"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/villas/availability", h.listAvailability)
	s.mux.Get("/v1/villas/{villa_id}/quote", h.getQuote)
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// checkDates enforces the strict wire format before anything reaches the
// core; the core re-validates the calendar semantics itself.
func checkDates(w http.ResponseWriter, checkIn, checkOut string) bool {
	if !dateRe.MatchString(checkIn) {
		writeProblem(w, http.StatusBadRequest, "Validation error", "check_in must be in YYYY-MM-DD format")
		return false
	}
	if !dateRe.MatchString(checkOut) {
		writeProblem(w, http.StatusBadRequest, "Validation error", "check_out must be in YYYY-MM-DD format")
		return false
	}
	return true
}

// leniently parsed: non-numeric page/limit clamp to defaults downstream.
func atoiLenient(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func (h *Handlers) listAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	checkIn, checkOut := q.Get("check_in"), q.Get("check_out")
	if !checkDates(w, checkIn, checkOut) {
		return
	}

	sortBy := q.Get("sort")
	if sortBy != "" && sortBy != app.SortAvgPrice {
		writeProblem(w, http.StatusBadRequest, "Validation error", "sort must be avg_price_per_night")
		return
	}
	order := q.Get("order")
	if order != "" && order != app.OrderAsc && order != app.OrderDesc {
		writeProblem(w, http.StatusBadRequest, "Validation error", "order must be either asc or desc")
		return
	}

	page, err := h.Q.ListAvailability(r.Context(), app.AvailabilityRequest{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Sort:     sortBy,
		Order:    order,
		Page:     atoiLenient(q.Get("page")),
		Limit:    atoiLenient(q.Get("limit")),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := availabilityJSON{Data: make([]villaSummaryJSON, 0, len(page.Items))}
	resp.Meta.Page = page.Page
	resp.Meta.Limit = page.Limit
	resp.Meta.Total = page.Total
	for _, it := range page.Items {
		resp.Data = append(resp.Data, villaSummaryJSON{
			ID:               it.ID,
			Name:             it.Name,
			Location:         it.Location,
			Nights:           it.Nights,
			Subtotal:         it.Subtotal,
			AvgPricePerNight: it.AvgPricePerNight(),
		})
	}
	writeJSON(w, r, resp)
}

func (h *Handlers) getQuote(w http.ResponseWriter, r *http.Request) {
	villaID, err := strconv.ParseInt(chi.URLParam(r, "villa_id"), 10, 64)
	if err != nil || villaID <= 0 {
		writeProblem(w, http.StatusBadRequest, "Validation error", "villa_id must be a positive integer")
		return
	}

	q := r.URL.Query()
	checkIn, checkOut := q.Get("check_in"), q.Get("check_out")
	if !checkDates(w, checkIn, checkOut) {
		return
	}

	quote, err := h.Q.GetQuote(r.Context(), villaID, checkIn, checkOut)
	if err != nil {
		writeError(w, err)
		return
	}
	observability.ObserveQuote(quote.IsAvailable)

	var resp quoteJSON
	resp.Villa.ID = quote.Villa.ID
	resp.Villa.Name = quote.Villa.Name
	resp.Villa.Location = quote.Villa.Location
	resp.CheckIn = quote.CheckIn
	resp.CheckOut = quote.CheckOut
	resp.Nights = quote.Nights
	resp.IsAvailable = quote.IsAvailable
	resp.NightlyBreakdown = make([]quoteNightJSON, 0, len(quote.NightlyBreakdown))
	for _, n := range quote.NightlyBreakdown {
		resp.NightlyBreakdown = append(resp.NightlyBreakdown, quoteNightJSON{
			Date: n.Date, Rate: n.Rate, IsAvailable: n.IsAvailable,
		})
	}
	resp.Subtotal = quote.Subtotal
	resp.GSTRate = quote.GSTRate
	resp.GST = quote.GST
	resp.Total = quote.Total
	writeJSON(w, r, resp)
}

// writeError maps domain errors to transport codes: bad window 400, unknown
// villa 404, everything else (store failures included) 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange):
		writeProblem(w, http.StatusBadRequest, "Invalid date range", "check_out must be after check_in and both must be valid YYYY-MM-DD dates")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "villa not found")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "something went wrong while processing your request")
	}
}
