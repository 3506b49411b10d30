package services

import (
	"sync"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
)

type viewportSubscriber struct {
	id uint64
	fn func(domain.Viewport)
}

// ViewportSignal broadcasts viewport changes to subscribers in subscription
// order.
type ViewportSignal struct {
	mu      sync.Mutex
	current domain.Viewport
	subs    []viewportSubscriber
	nextID  uint64
}

// NewViewportSignal creates a signal with a zero viewport.
func NewViewportSignal() *ViewportSignal {
	return &ViewportSignal{}
}

// Current returns the last published viewport.
func (s *ViewportSignal) Current() domain.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Publish records vp and notifies every subscriber. Subscribers are called
// outside the lock.
func (s *ViewportSignal) Publish(vp domain.Viewport) {
	s.mu.Lock()
	s.current = vp
	subs := make([]viewportSubscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(vp)
	}
}

// Subscribe registers fn and returns a function that removes it.
func (s *ViewportSignal) Subscribe(fn func(domain.Viewport)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, viewportSubscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the number of registered subscribers.
func (s *ViewportSignal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
