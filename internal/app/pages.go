package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hima_estates/internal/domain"
	"hima_estates/internal/gallery"
	"hima_estates/internal/present"
)

// Site carries the page assets that do not belong to any one property.
type Site struct {
	HeroImages []string
	AboutImage string
}

type PageService struct {
	catalog  domain.Catalog
	cache    domain.Cache
	cacheTTL time.Duration
	site     Site
}

// NewPageService wires the page builders. A nil cache disables caching.
func NewPageService(cat domain.Catalog, c domain.Cache, ttl time.Duration, site Site) *PageService {
	if c == nil {
		c = NopCache{}
	}
	return &PageService{catalog: cat, cache: c, cacheTTL: ttl, site: site}
}

func (s *PageService) HeroImages() []string { return append([]string(nil), s.site.HeroImages...) }

func (s *PageService) Catalog() domain.Catalog { return s.catalog }

// Home builds the landing page: hero, features, cards and contact blocks.
func (s *PageService) Home(ctx context.Context) (HomePage, error) {
	const key = "page:home"
	var hp HomePage
	if ok, err := s.cache.Get(ctx, key, &hp); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("page cache get failed")
	} else if ok {
		return hp, nil
	}

	props := s.catalog.All()
	primary := s.catalog.Primary()
	hp = HomePage{
		HeroImages: s.HeroImages(),
		AboutImage: s.site.AboutImage,
		Features: []Feature{
			{Icon: "shield", Text: "Verified Hosts"},
			{Icon: "star", Text: "5-Star Properties"},
			{Icon: "home", Text: present.LocationsLabel(len(props))},
			{Icon: "award", Text: "Professional Service"},
		},
		Subtitle:   present.PropertiesSubtitle(len(props)),
		ComingSoon: len(props) == 1,
		Contact:    contactFor(primary),
		Location:   primary.Location,
		Cards:      make([]Card, 0, len(props)),
	}
	for _, p := range props {
		hp.Cards = append(hp.Cards, Card{
			ID:         p.ID,
			Name:       p.Name,
			Location:   p.Location,
			CoverImage: p.CoverImage,
			Price:      present.Price(p.Price),
			Summary:    fmt.Sprintf("%s · %s", present.Count(p.Bedrooms, "bed", "beds"), present.Count(p.Bathrooms, "bath", "baths")),
		})
	}

	if err := s.cache.Set(ctx, key, hp, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("page cache set failed")
	}
	return hp, nil
}

// Detail builds the detail view of property id positioned at g's index.
// g must be the gallery built over that property's images.
func (s *PageService) Detail(ctx context.Context, id int64, g *gallery.Controller) (DetailView, error) {
	key := fmt.Sprintf("page:detail:%d", id)
	var dv DetailView
	ok, err := s.cache.Get(ctx, key, &dv)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("page cache get failed")
	}
	if !ok {
		p, err := s.catalog.Get(id)
		if err != nil {
			return DetailView{}, err
		}
		dv = detailFor(p)
		if err := s.cache.Set(ctx, key, dv, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("page cache set failed")
		}
	}
	if g != nil {
		dv.Gallery = positionOf(g)
	}
	return dv, nil
}

// Gallery resolves a lightbox move for property id: select index, then step.
func (s *PageService) Gallery(ctx context.Context, id int64, index, step int) (GalleryPosition, error) {
	p, err := s.catalog.Get(id)
	if err != nil {
		return GalleryPosition{}, err
	}
	g, err := gallery.New(p.Images)
	if err != nil {
		return GalleryPosition{}, fmt.Errorf("property %d: %w", id, err)
	}
	defer g.Close()
	if _, err := g.Select(index); err != nil {
		return GalleryPosition{}, err
	}
	if step != 0 {
		if _, err := g.Step(step); err != nil {
			return GalleryPosition{}, err
		}
	}
	return positionOf(g), nil
}

func positionOf(g *gallery.Controller) GalleryPosition {
	i, n := g.Index(), g.Len()
	return GalleryPosition{
		Index:   i,
		Count:   n,
		Prev:    ((i-1)%n + n) % n,
		Next:    (i + 1) % n,
		Current: g.Current(),
		Images:  g.Images(),
	}
}

func contactFor(p domain.Property) Contact {
	return Contact{
		TelURI:       present.TelURI(p.Phone),
		WhatsAppURI:  present.WhatsAppURI(p.WhatsApp),
		Phone:        p.Phone,
		PhoneDisplay: present.DisplayLocalPhone(p.Phone),
	}
}

func detailFor(p domain.Property) DetailView {
	booking, hasBooking := present.BookingLink(p.BookingURL)
	return DetailView{
		ID:         p.ID,
		Name:       p.Name,
		Location:   p.Location,
		Tagline:    p.Tagline,
		Price:      present.Price(p.Price),
		Guests:     present.Count(p.Guests, "guest", "guests"),
		Bedrooms:   present.Count(p.Bedrooms, "bedroom", "bedrooms"),
		Bathrooms:  present.Count(p.Bathrooms, "bathroom", "bathrooms"),
		Paragraphs: present.Paragraphs(p.Description),
		Amenities:  p.Amenities,
		HouseRules: p.HouseRules,
		Contact:    contactFor(p),
		BookingURL: booking,
		HasBooking: hasBooking,
	}
}
