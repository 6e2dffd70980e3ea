package booking

import "math"

// PriceQuote is the priced outcome of a multi-date request. Each date
// becomes its own booking row, so the total is split evenly into PerDate.
type PriceQuote struct {
	Total   float64
	PerDate float64
}

// Quote prices a whole multi-date request:
//
//	total = rate*hours*dates + surcharge*max(0, headcount-1)*hours*dates
//
// The surcharge applies per hour to every dependent beyond the first.
// PerDate is total/dates rounded half-away-from-zero to cents, so
// PerDate*dates reconciles with Total within one cent. A request with no
// dates prices to zero.
func Quote(rate, surcharge float64, hours, dateCount, headcount int) PriceQuote {
	if dateCount < 1 {
		return PriceQuote{}
	}
	extras := headcount - 1
	if extras < 0 {
		extras = 0
	}
	perDate := rate*float64(hours) + surcharge*float64(extras)*float64(hours)
	total := perDate * float64(dateCount)
	return PriceQuote{
		Total:   roundCents(total),
		PerDate: roundCents(total / float64(dateCount)),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
