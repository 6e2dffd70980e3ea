// Package verification implements the on-site identity handshake that gates
// a booking's transition into an active session: the provider displays a
// token binding booking, provider and requester; the requester scans it; a
// three-way match starts the timed session and a mismatch raises a security
// alert. Rendering the token as a scannable image and decoding the scan are
// both external; this package only sees text.
package verification

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// tokenMarker tags the full three-identity wire format:
	//   CAREBOOK:<booking>:<provider>:<requester>
	tokenMarker = "CAREBOOK"

	// legacyPrefix tags the old bare-booking-id format:
	//   BOOKING:<booking>
	// It authenticates on booking id alone, with no second or third factor.
	legacyPrefix = "BOOKING"

	sep = ":"
)

// ErrMalformedToken rejects a payload in neither wire format.
var ErrMalformedToken = errors.New("scan payload is not a recognized token")

// TokenFormat discriminates the two accepted wire formats.
type TokenFormat int

const (
	// TokenFormatFull binds all three identities.
	TokenFormatFull TokenFormat = iota
	// TokenFormatLegacy is the weaker bare-id path, kept only for
	// transition compatibility. Do not extend it.
	TokenFormatLegacy
)

// Token is a parsed scan payload. ProviderID and RequesterID are empty for
// the legacy format.
type Token struct {
	Format      TokenFormat
	BookingID   string
	ProviderID  string
	RequesterID string
}

// Encode renders the full three-identity token text. It is pure; the caller
// renders it as a QR code or whatever the scanning surface needs.
func Encode(bookingID, providerID, requesterID string) string {
	return strings.Join([]string{tokenMarker, bookingID, providerID, requesterID}, sep)
}

// Parse classifies and decodes a scanned payload.
func Parse(payload string) (*Token, error) {
	parts := strings.Split(strings.TrimSpace(payload), sep)
	switch {
	case len(parts) == 4 && parts[0] == tokenMarker:
		t := &Token{
			Format:      TokenFormatFull,
			BookingID:   parts[1],
			ProviderID:  parts[2],
			RequesterID: parts[3],
		}
		if t.BookingID == "" || t.ProviderID == "" || t.RequesterID == "" {
			return nil, fmt.Errorf("%w: empty identity field", ErrMalformedToken)
		}
		return t, nil
	case len(parts) == 2 && parts[0] == legacyPrefix:
		if parts[1] == "" {
			return nil, fmt.Errorf("%w: empty booking id", ErrMalformedToken)
		}
		return &Token{Format: TokenFormatLegacy, BookingID: parts[1]}, nil
	default:
		return nil, ErrMalformedToken
	}
}
