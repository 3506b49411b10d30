package services

import (
	"sync"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	apperrors "github.com/pixwingai/pixwing-site/internal/core/errors"
	"github.com/pixwingai/pixwing-site/internal/core/ports"
)

// ChartSlot holds at most one live chart for a render target. The chart is
// keyed by the version of the series it was built from. Every construction
// gets a new generation number, so clients can tell a rebuilt chart from the
// one they already drew.
type ChartSlot struct {
	factory ports.ChartFactory

	mu         sync.Mutex
	current    ports.ChartInstance
	version    uint64
	generation uint64
}

// NewChartSlot creates an empty slot.
func NewChartSlot(factory ports.ChartFactory) *ChartSlot {
	return &ChartSlot{factory: factory}
}

// Ensure returns the live chart for version, constructing it with build when
// the slot is empty or holds a chart for another version. A replaced chart
// is disposed before the new one is constructed. An empty box fails with
// ErrRenderTargetMissing and leaves the slot untouched.
func (s *ChartSlot) Ensure(version uint64, box domain.Box, build func(domain.Box) domain.ChartSpec) (ports.ChartInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.version == version {
		return s.current, nil
	}

	if box.Empty() {
		return nil, apperrors.ErrRenderTargetMissing
	}

	if s.current != nil {
		s.current.Dispose()
		s.current = nil
	}

	chart, err := s.factory.NewChart(build(box))
	if err != nil {
		return nil, err
	}

	s.current = chart
	s.version = version
	s.generation++
	return chart, nil
}

// Generation identifies the live chart. It is zero when the slot is empty.
func (s *ChartSlot) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return 0
	}
	return s.generation
}

// Current returns the live chart, or nil.
func (s *ChartSlot) Current() ports.ChartInstance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Release disposes the live chart, if any.
func (s *ChartSlot) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Dispose()
		s.current = nil
	}
}
