package domain

import "strings"

// Property is one rental listed on the site. Records are built once at
// startup and never mutated.
type Property struct {
	ID         int64
	Name       string
	Location   string
	Tagline    string
	Price      int64 // rupees per night
	Guests     int
	Bedrooms   int
	Bathrooms  int
	CoverImage string
	Images     []string // cover + gallery, display order
	// Description holds paragraphs separated by a blank line.
	Description string
	Amenities   []string
	HouseRules  []string
	WhatsApp    string  // digits only, international format
	Phone       string  // display formatted, e.g. "+91 97392 83637"
	BookingURL  *string // optional; nil when the listing has no external booking page
}

// HasBooking reports whether the property links to an external booking site.
func (p Property) HasBooking() bool {
	return p.BookingURL != nil && strings.TrimSpace(*p.BookingURL) != ""
}
