package app

import (
	"context"
	"time"
)

// Page view models. Fields are display-ready strings; templates do no
// formatting of their own.

type HomePage struct {
	HeroImages []string
	AboutImage string
	Features   []Feature
	Subtitle   string
	Cards      []Card
	ComingSoon bool // only one property listed so far
	Contact    Contact
	Location   string
}

type Feature struct {
	Icon string
	Text string
}

type Card struct {
	ID         int64
	Name       string
	Location   string
	CoverImage string
	Price      string
	Summary    string // "6 beds · 7 baths"
}

type Contact struct {
	TelURI       string
	WhatsAppURI  string
	Phone        string
	PhoneDisplay string
}

type DetailView struct {
	ID         int64
	Name       string
	Location   string
	Tagline    string
	Price      string
	Guests     string
	Bedrooms   string
	Bathrooms  string
	Paragraphs []string
	Amenities  []string
	HouseRules []string
	Contact    Contact
	BookingURL string
	HasBooking bool
	Gallery    GalleryPosition
}

type GalleryPosition struct {
	Index   int      `json:"index"`
	Count   int      `json:"count"`
	Prev    int      `json:"prev"`
	Next    int      `json:"next"`
	Current string   `json:"current"`
	Images  []string `json:"images,omitempty"`
}

// NopCache never stores anything; used when no redis is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error)         { return false, nil }
func (NopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (NopCache) Del(context.Context, string) error                      { return nil }
