package entity

import (
	"strings"

	"github.com/paulmach/orb"
)

// Address is a shipping destination or origin. Location is nil until geocoded.
type Address struct {
	Street     string
	Locality   string
	Region     string
	PostalCode string
	Country    string
	Location   *orb.Point
}

// SingleLine assembles the address the way geocoders expect it:
// "street, postalCode locality, region, country" with empty parts skipped.
func (a Address) SingleLine() string {
	cityLine := strings.TrimSpace(strings.TrimSpace(a.PostalCode) + " " + strings.TrimSpace(a.Locality))

	parts := make([]string, 0, 4)
	for _, part := range []string{a.Street, cityLine, a.Region, a.Country} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	return strings.Join(parts, ", ")
}

// WithLocation returns a copy of the address carrying the given coordinates.
func (a Address) WithLocation(point orb.Point) Address {
	a.Location = &point

	return a
}

// Contact identifies the recipient or sender of a shipment.
type Contact struct {
	Name    string
	Company string
	Email   string
	Phone   string
}
