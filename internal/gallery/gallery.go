// Package gallery implements navigation over an ordered set of images, shared
// by the hero rotator and the property lightbox.
package gallery

import (
	"errors"
	"sync"
	"time"

	"hima_estates/internal/domain"
)

var (
	ErrInvalidInterval = errors.New("gallery: autoplay interval must be positive")
	ErrClosed          = errors.New("gallery: controller closed")
)

// Controller owns the current index into a fixed, non-empty image sequence.
// The index is always a valid offset; every transition wraps modulo n.
//
// A zero Controller has no images and fails every transition with
// domain.ErrInvalidState.
type Controller struct {
	mu       sync.Mutex
	images   []string
	index    int
	clock    Clock
	onChange func(index int)

	// autoplay; gen is bumped on every start/stop so a tick from a
	// superseded timer never touches the index.
	gen    uint64
	ticker Ticker
	quit   chan struct{}
	closed bool
}

type Option func(*Controller)

// WithClock replaces the ticker source used by autoplay.
func WithClock(c Clock) Option {
	return func(g *Controller) { g.clock = c }
}

// WithOnChange registers fn to run after every index change, user driven or
// autoplay. fn is called without the controller lock held.
func WithOnChange(fn func(index int)) Option {
	return func(g *Controller) { g.onChange = fn }
}

func New(images []string, opts ...Option) (*Controller, error) {
	if len(images) == 0 {
		return nil, domain.ErrInvalidState
	}
	c := &Controller{images: append([]string(nil), images...), clock: systemClock{}}
	for _, o := range opts {
		o(c)
	}
	if c.clock == nil {
		c.clock = systemClock{}
	}
	return c, nil
}

// Select moves to i mod n, using a non-negative modulo so that -1 is the
// last image.
func (c *Controller) Select(i int) (int, error) {
	c.mu.Lock()
	idx, err := c.selectLocked(i)
	fn := c.onChange
	c.mu.Unlock()
	if err != nil {
		return 0, err
	}
	if fn != nil {
		fn(idx)
	}
	return idx, nil
}

// Step is Select(current + delta) for any delta, including math.MinInt and
// math.MaxInt.
func (c *Controller) Step(delta int) (int, error) {
	c.mu.Lock()
	idx, err := c.stepLocked(delta)
	fn := c.onChange
	c.mu.Unlock()
	if err != nil {
		return 0, err
	}
	if fn != nil {
		fn(idx)
	}
	return idx, nil
}

func (c *Controller) selectLocked(i int) (int, error) {
	n := len(c.images)
	if n == 0 {
		return 0, domain.ErrInvalidState
	}
	c.index = ((i % n) + n) % n
	return c.index, nil
}

// stepLocked reduces delta mod n first so current+delta cannot overflow.
func (c *Controller) stepLocked(delta int) (int, error) {
	n := len(c.images)
	if n == 0 {
		return 0, domain.ErrInvalidState
	}
	return c.selectLocked(c.index + delta%n)
}

// Current returns the image at the current index, or "" for a zero Controller.
func (c *Controller) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.images) == 0 {
		return ""
	}
	return c.images[c.index]
}

func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}

// Images returns a copy of the sequence.
func (c *Controller) Images() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.images...)
}

// StartAutoplay advances the index by one every interval. A running timer is
// cancelled first, so at most one timer is ever active.
func (c *Controller) StartAutoplay(interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if len(c.images) == 0 {
		return domain.ErrInvalidState
	}
	c.stopLocked()

	c.gen++
	gen := c.gen
	c.ticker = c.clock.NewTicker(interval)
	c.quit = make(chan struct{})
	go c.run(gen, c.ticker.C(), c.quit)
	return nil
}

// StopAutoplay cancels the active timer. Calling it with no timer running is
// a no-op.
func (c *Controller) StopAutoplay() {
	c.mu.Lock()
	c.stopLocked()
	c.mu.Unlock()
}

func (c *Controller) Autoplaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticker != nil
}

// Close stops autoplay and rejects any later StartAutoplay. Index navigation
// keeps working so a closing view can still render its last frame.
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopLocked()
	c.closed = true
	c.mu.Unlock()
}

func (c *Controller) stopLocked() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	close(c.quit)
	c.ticker, c.quit = nil, nil
	c.gen++
}

func (c *Controller) run(gen uint64, ticks <-chan time.Time, quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			return
		case <-ticks:
			if !c.tick(gen) {
				return
			}
		}
	}
}

func (c *Controller) tick(gen uint64) bool {
	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return false
	}
	idx, _ := c.stepLocked(1)
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(idx)
	}
	return true
}
