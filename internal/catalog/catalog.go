// Package catalog holds the static property listing rendered by the site.
package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"hima_estates/internal/domain"
)

// Catalog is an ordered, validated, read-only list of properties.
type Catalog struct {
	items []domain.Property
	byID  map[int64]int
}

// New validates props and returns a catalog over a private copy of them.
func New(props []domain.Property) (*Catalog, error) {
	if len(props) == 0 {
		return nil, fmt.Errorf("%w: no properties", domain.ErrInvalidCatalog)
	}
	c := &Catalog{items: make([]domain.Property, 0, len(props)), byID: make(map[int64]int, len(props))}
	for _, p := range props {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("%w: property %d: %v", domain.ErrInvalidCatalog, p.ID, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate property id %d", domain.ErrInvalidCatalog, p.ID)
		}
		c.byID[p.ID] = len(c.items)
		c.items = append(c.items, clone(p))
	}
	return c, nil
}

func validate(p domain.Property) error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("id must be positive")
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("name is empty")
	case len(p.Images) == 0:
		return fmt.Errorf("gallery has no images")
	case p.CoverImage == "":
		return fmt.Errorf("cover image is empty")
	case p.WhatsApp == "":
		return fmt.Errorf("whatsapp id is empty")
	case p.Price < 0:
		return fmt.Errorf("negative price %d", p.Price)
	}
	for i, img := range p.Images {
		if strings.TrimSpace(img) == "" {
			return fmt.Errorf("image %d is empty", i)
		}
	}
	for _, r := range p.WhatsApp {
		if r < '0' || r > '9' {
			return fmt.Errorf("whatsapp id %q must be digits only", p.WhatsApp)
		}
	}
	if p.HasBooking() {
		u, err := url.Parse(strings.TrimSpace(*p.BookingURL))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("booking url %q is not an absolute http(s) url", *p.BookingURL)
		}
	}
	return nil
}

func clone(p domain.Property) domain.Property {
	p.Images = append([]string(nil), p.Images...)
	p.Amenities = append([]string(nil), p.Amenities...)
	p.HouseRules = append([]string(nil), p.HouseRules...)
	if p.BookingURL != nil {
		u := *p.BookingURL
		p.BookingURL = &u
	}
	return p
}

// All returns the properties in display order.
func (c *Catalog) All() []domain.Property {
	out := make([]domain.Property, len(c.items))
	for i, p := range c.items {
		out[i] = clone(p)
	}
	return out
}

func (c *Catalog) Get(id int64) (domain.Property, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Property{}, fmt.Errorf("property %d: %w", id, domain.ErrNotFound)
	}
	return clone(c.items[i]), nil
}

func (c *Catalog) Len() int { return len(c.items) }

// Primary is the first listed property; its contact details are used for the
// site-wide call and message buttons.
func (c *Catalog) Primary() domain.Property { return clone(c.items[0]) }
