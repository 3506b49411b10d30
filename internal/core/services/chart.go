package services

import (
	"sync"
	"time"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	"github.com/pixwingai/pixwing-site/internal/core/ports"
	"github.com/pixwingai/pixwing-site/internal/infrastructure/metrics"
)

// AnimationContext identifies the element being animated.
type AnimationContext struct {
	Type         string
	Mode         string
	DataIndex    int
	DatasetIndex int
}

// AnimationLatch gates the entrance stagger. It starts open and closes once
// the first animation pass completes; it never reopens.
type AnimationLatch struct {
	mu      sync.Mutex
	delayed bool
}

// Delay returns the entrance delay for an element. Elements outside the
// configured context, or any element after the latch closed, get zero.
func (l *AnimationLatch) Delay(ctx AnimationContext, stagger domain.Stagger) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.delayed || ctx.Type != stagger.ContextType || ctx.Mode != stagger.ContextMode {
		return 0
	}

	ms := ctx.DataIndex*stagger.PointDelayMs + ctx.DatasetIndex*stagger.DatasetDelayMs
	return time.Duration(ms) * time.Millisecond
}

// Complete closes the latch.
func (l *AnimationLatch) Complete() {
	l.mu.Lock()
	l.delayed = true
	l.mu.Unlock()
}

// Delayed reports whether the first pass has completed.
func (l *AnimationLatch) Delayed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delayed
}

// Chart is a constructed chart instance. It owns its animation latch and is
// disposed at most once.
type Chart struct {
	spec     domain.ChartSpec
	latch    AnimationLatch
	once     sync.Once
	mu       sync.Mutex
	disposed bool
}

var _ ports.ChartInstance = (*Chart)(nil)

// NewChart constructs a chart from a spec.
func NewChart(spec domain.ChartSpec) *Chart {
	metrics.ChartsLive.Inc()
	return &Chart{spec: spec}
}

// Spec returns the chart's configuration with the stagger reflecting the
// current latch state.
func (c *Chart) Spec() domain.ChartSpec {
	spec := c.spec
	spec.Options.Animation.Stagger = c.Stagger()
	return spec
}

// Stagger returns the stagger options, disabled once the latch closed.
func (c *Chart) Stagger() domain.Stagger {
	s := c.spec.Options.Animation.Stagger
	if c.latch.Delayed() {
		s.Enabled = false
	}
	return s
}

// AnimationDelay returns the entrance delay for an animated element.
func (c *Chart) AnimationDelay(ctx AnimationContext) time.Duration {
	return c.latch.Delay(ctx, c.spec.Options.Animation.Stagger)
}

// CompleteAnimation marks the first animation pass as finished.
func (c *Chart) CompleteAnimation() {
	c.latch.Complete()
}

// Dispose releases the chart. Later calls are no-ops.
func (c *Chart) Dispose() {
	c.once.Do(func() {
		c.mu.Lock()
		c.disposed = true
		c.mu.Unlock()
		metrics.ChartsLive.Dec()
	})
}

// Disposed reports whether Dispose has run.
func (c *Chart) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// DefaultChartFactory builds in-memory chart instances.
type DefaultChartFactory struct{}

var _ ports.ChartFactory = DefaultChartFactory{}

// NewChart implements ports.ChartFactory.
func (DefaultChartFactory) NewChart(spec domain.ChartSpec) (ports.ChartInstance, error) {
	return NewChart(spec), nil
}
