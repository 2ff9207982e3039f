package view

import "sync"

// ScrollLock models the page-wide "body does not scroll" flag. Every
// Acquire returns a release func; the page is locked while any acquisition
// is outstanding.
type ScrollLock struct {
	mu   sync.Mutex
	held int
}

func (l *ScrollLock) Acquire() (release func()) {
	l.mu.Lock()
	l.held++
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.held--
			l.mu.Unlock()
		})
	}
}

func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held > 0
}
