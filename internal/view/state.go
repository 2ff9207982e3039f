// Package view holds the page-level UI state and the session that ties it to
// gallery controllers and the scroll lock.
package view

import "strings"

// ScrollThreshold is the vertical offset past which the header turns solid.
const ScrollThreshold = 50

// Anchor is an in-page navigation target.
type Anchor string

const (
	AnchorHome       Anchor = "home"
	AnchorProperties Anchor = "properties"
	AnchorContact    Anchor = "contact"
)

func (a Anchor) Href() string { return "#" + string(a) }

// Label is the navigation text, "Home" for AnchorHome.
func (a Anchor) Label() string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:])
}

// Anchors lists the navigation targets in header order.
func Anchors() []Anchor { return []Anchor{AnchorHome, AnchorProperties, AnchorContact} }

// State is the top-level view state. The zero value is the initial page.
//
// Selected == 0 means no property is open; catalog ids start at 1.
type State struct {
	MenuOpen     bool
	Scrolled     bool
	Selected     int64
	Lightbox     bool
	ScrollLocked bool
}

func (s State) HasSelection() bool { return s.Selected != 0 }

func ToggleMenu(s State) State {
	s.MenuOpen = !s.MenuOpen
	return s
}

func CloseMenu(s State) State {
	s.MenuOpen = false
	return s
}

// Scroll records the viewport offset reported by the browser.
func Scroll(s State, y int) State {
	s.Scrolled = y > ScrollThreshold
	return s
}

// OpenProperty replaces any open detail view with id. The lightbox of the
// previous property never carries over.
func OpenProperty(s State, id int64) State {
	if id == 0 {
		return CloseProperty(s)
	}
	s.Selected = id
	s.Lightbox = false
	s.ScrollLocked = true
	return s
}

func CloseProperty(s State) State {
	s.Selected = 0
	s.Lightbox = false
	s.ScrollLocked = false
	return s
}

// OpenLightbox is a no-op unless a property is open.
func OpenLightbox(s State) State {
	if !s.HasSelection() {
		return s
	}
	s.Lightbox = true
	return s
}

func CloseLightbox(s State) State {
	s.Lightbox = false
	return s
}

// Valid reports whether s satisfies the pairing invariants: the scroll lock
// is held exactly while a property is open, and the lightbox only layers
// over an open property.
func (s State) Valid() bool {
	if s.ScrollLocked != s.HasSelection() {
		return false
	}
	return !s.Lightbox || s.HasSelection()
}
