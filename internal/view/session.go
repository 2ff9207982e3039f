package view

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"hima_estates/internal/domain"
	"hima_estates/internal/gallery"
)

var ErrSessionClosed = errors.New("view: session closed")

type Config struct {
	HeroImages []string
	// HeroInterval starts hero autoplay when positive.
	HeroInterval time.Duration
	// GalleryOptions apply to every controller the session creates.
	GalleryOptions []gallery.Option
}

// Session is the composition root for one rendered page: it owns the view
// state, the hero gallery, the gallery of the open property and the scroll
// lock taken while that property is open.
type Session struct {
	mu      sync.Mutex
	catalog domain.Catalog
	lock    *ScrollLock
	opts    []gallery.Option

	state   State
	hero    *gallery.Controller
	detail  *gallery.Controller
	release func()
	closed  bool
}

// NewSession builds a session over cat. A nil lock gets a private one.
func NewSession(cat domain.Catalog, lock *ScrollLock, cfg Config) (*Session, error) {
	if lock == nil {
		lock = &ScrollLock{}
	}
	s := &Session{catalog: cat, lock: lock, opts: cfg.GalleryOptions}
	if len(cfg.HeroImages) > 0 {
		hero, err := gallery.New(cfg.HeroImages, cfg.GalleryOptions...)
		if err != nil {
			return nil, fmt.Errorf("hero gallery: %w", err)
		}
		if cfg.HeroInterval > 0 {
			if err := hero.StartAutoplay(cfg.HeroInterval); err != nil {
				return nil, fmt.Errorf("hero autoplay: %w", err)
			}
		}
		s.hero = hero
	}
	return s, nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Hero() *gallery.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hero
}

// Detail is the gallery of the open property, nil when none is open.
func (s *Session) Detail() *gallery.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail
}

func (s *Session) ScrollLocked() bool { return s.lock.Locked() }

func (s *Session) ToggleMenu() {
	s.mu.Lock()
	s.state = ToggleMenu(s.state)
	s.mu.Unlock()
}

// NavigateAnchor follows an in-page link, which always closes the mobile menu.
func (s *Session) NavigateAnchor(Anchor) {
	s.mu.Lock()
	s.state = CloseMenu(s.state)
	s.mu.Unlock()
}

func (s *Session) Scroll(y int) {
	s.mu.Lock()
	s.state = Scroll(s.state, y)
	s.mu.Unlock()
}

// OpenProperty shows the detail view for id with a fresh gallery at index 0.
// Any previously open property is torn down first.
func (s *Session) OpenProperty(id int64) error {
	p, err := s.catalog.Get(id)
	if err != nil {
		return err
	}
	g, err := gallery.New(p.Images, s.opts...)
	if err != nil {
		return fmt.Errorf("property %d gallery: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		g.Close()
		return ErrSessionClosed
	}
	s.closeDetailLocked()
	s.detail = g
	s.release = s.lock.Acquire()
	s.state = OpenProperty(s.state, id)
	return nil
}

// CloseProperty leaves the detail view. Safe to call when nothing is open.
func (s *Session) CloseProperty() {
	s.mu.Lock()
	s.closeDetailLocked()
	s.mu.Unlock()
}

func (s *Session) closeDetailLocked() {
	if s.detail != nil {
		s.detail.Close()
		s.detail = nil
	}
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.state = CloseProperty(s.state)
}

// OpenLightbox reports whether the lightbox opened; it needs an open property.
func (s *Session) OpenLightbox() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = OpenLightbox(s.state)
	return s.state.Lightbox
}

func (s *Session) CloseLightbox() {
	s.mu.Lock()
	s.state = CloseLightbox(s.state)
	s.mu.Unlock()
}

// Close tears the session down: hero autoplay stops, the detail view closes
// and the scroll lock is released. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.hero != nil {
		s.hero.Close()
	}
	s.closeDetailLocked()
}
