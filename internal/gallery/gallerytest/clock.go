// Package gallerytest provides a manual clock for driving autoplay in tests.
package gallerytest

import (
	"sync"
	"time"

	"hima_estates/internal/gallery"
)

// Clock hands out tickers that only fire when Tick is called.
type Clock struct {
	mu      sync.Mutex
	tickers []*Ticker
}

func NewClock() *Clock { return &Clock{} }

func (c *Clock) NewTicker(d time.Duration) gallery.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &Ticker{Interval: d, c: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

// Active counts tickers created and not yet stopped.
func (c *Clock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if !t.Stopped() {
			n++
		}
	}
	return n
}

// Created counts every ticker handed out.
func (c *Clock) Created() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

// Tick fires every active ticker once and returns how many deliveries were
// accepted within a second.
func (c *Clock) Tick() int {
	c.mu.Lock()
	var live []*Ticker
	for _, t := range c.tickers {
		if !t.Stopped() {
			live = append(live, t)
		}
	}
	c.mu.Unlock()

	n := 0
	for _, t := range live {
		select {
		case t.c <- time.Now():
			n++
		case <-time.After(time.Second):
		}
	}
	return n
}

type Ticker struct {
	Interval time.Duration

	mu      sync.Mutex
	c       chan time.Time
	stopped bool
}

func (t *Ticker) C() <-chan time.Time { return t.c }

func (t *Ticker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *Ticker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
