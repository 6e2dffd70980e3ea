package booking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote_SingleDateWithOneExtraDependent(t *testing.T) {
	// 3 hours at 50/h plus 20/h surcharge for the one dependent beyond the
	// first: 50*3 + 20*1*3 = 210.
	q := Quote(50, 20, 3, 1, 2)

	assert.Equal(t, 210.0, q.Total)
	assert.Equal(t, 210.0, q.PerDate)
}

func TestQuote_SurchargeOnlyBeyondFirstDependent(t *testing.T) {
	base := Quote(50, 20, 3, 1, 1)
	assert.Equal(t, 150.0, base.Total, "a single dependent pays no surcharge")

	zero := Quote(50, 20, 3, 1, 0)
	assert.Equal(t, 150.0, zero.Total, "headcount below one never goes negative")
}

func TestQuote_NoDatesPricesToZero(t *testing.T) {
	q := Quote(50, 20, 3, 0, 2)

	assert.Equal(t, 0.0, q.Total)
	assert.Equal(t, 0.0, q.PerDate)
}

func TestQuote_MultiDateTotal(t *testing.T) {
	q := Quote(50, 20, 3, 4, 2)

	assert.Equal(t, 840.0, q.Total)
	assert.Equal(t, 210.0, q.PerDate)
}

func TestQuote_PerDateReconcilesWithTotal(t *testing.T) {
	cases := []struct {
		rate, surcharge float64
		hours, dates    int
		headcount       int
	}{
		{33.33, 0, 1, 3, 1},
		{16.67, 5.55, 3, 7, 4},
		{49.99, 12.01, 2, 3, 2},
		{10, 0.01, 5, 6, 3},
	}
	for _, tc := range cases {
		q := Quote(tc.rate, tc.surcharge, tc.hours, tc.dates, tc.headcount)

		diff := math.Abs(q.PerDate*float64(tc.dates) - q.Total)
		assert.LessOrEqual(t, diff, 0.01,
			"per-date share times date count must reconcile with the total within one cent")
	}
}
