package domain

// QuoteNight is one line of a quote's nightly breakdown. Dates are formatted
// at the wire edge; the flag is the row's original availability so mixed
// availability stays visible even when the aggregate is false.
type QuoteNight struct {
	Date        string
	Rate        int64
	IsAvailable bool
}

// Quote is the full cost breakdown for one villa and stay window. A quote
// with IsAvailable=false is a valid, fully-computed result, not an error:
// subtotal, GST, and total are always present so callers can show why.
type Quote struct {
	Villa            Villa
	CheckIn          string
	CheckOut         string
	Nights           int
	IsAvailable      bool
	NightlyBreakdown []QuoteNight
	Subtotal         int64
	GSTRate          float64
	GST              int64
	Total            int64
}
