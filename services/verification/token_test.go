package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeParse_RoundTrip(t *testing.T) {
	payload := Encode("B1", "P1", "R1")
	assert.Equal(t, "CAREBOOK:B1:P1:R1", payload)

	tok, err := Parse(payload)
	assert.NoError(t, err)
	assert.Equal(t, TokenFormatFull, tok.Format)
	assert.Equal(t, "B1", tok.BookingID)
	assert.Equal(t, "P1", tok.ProviderID)
	assert.Equal(t, "R1", tok.RequesterID)
}

func TestParse_LegacyFormat(t *testing.T) {
	tok, err := Parse("BOOKING:B7")
	assert.NoError(t, err)
	assert.Equal(t, TokenFormatLegacy, tok.Format)
	assert.Equal(t, "B7", tok.BookingID)
	assert.Empty(t, tok.ProviderID)
	assert.Empty(t, tok.RequesterID)
}

func TestParse_TrimsSurroundingWhitespace(t *testing.T) {
	tok, err := Parse("  CAREBOOK:B1:P1:R1\n")
	assert.NoError(t, err)
	assert.Equal(t, "B1", tok.BookingID)
}

func TestParse_RejectsMalformedPayloads(t *testing.T) {
	cases := []string{
		"",
		"hello world",
		"CAREBOOK:B1:P1",            // missing requester segment
		"CAREBOOK:B1:P1:R1:extra",   // too many segments
		"CAREBOOK:B1::R1",           // empty identity field
		"CAREBOOK::P1:R1",           // empty booking id
		"BOOKING:",                  // legacy with empty id
		"TICKET:B1:P1:R1",           // unknown marker
	}
	for _, payload := range cases {
		_, err := Parse(payload)
		assert.ErrorIs(t, err, ErrMalformedToken, "payload %q", payload)
	}
}
