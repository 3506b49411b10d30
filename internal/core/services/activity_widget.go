package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	apperrors "github.com/pixwingai/pixwing-site/internal/core/errors"
	"github.com/pixwingai/pixwing-site/internal/core/ports"
)

// WidgetState is the lifecycle state of an activity widget.
type WidgetState string

const (
	StateLoading  WidgetState = "loading"
	StateReady    WidgetState = "ready"
	StateError    WidgetState = "error"
	StateRendered WidgetState = "rendered"
)

// WidgetRender is the outcome of one render pass.
type WidgetRender struct {
	State   WidgetState           `json:"state"`
	Loading bool                  `json:"loading"`
	Branch  domain.RenderBranch   `json:"branch"`
	Chart   *domain.ChartSpec     `json:"chart,omitempty"`
	ChartID uint64                `json:"chartId,omitempty"`
	Summary *domain.TextSummary   `json:"summary,omitempty"`
	Metrics domain.DerivedMetrics `json:"metrics"`
}

// ActivityWidget loads an activity series once and renders it as a chart or,
// below the breakpoint, as a text summary. Each widget owns its own fetch and
// its own chart slot.
type ActivityWidget struct {
	source     ports.ActivitySource
	slot       *ChartSlot
	breakpoint int
	logger     *slog.Logger

	mu          sync.Mutex
	state       WidgetState
	loading     bool
	series      domain.ActivitySeries
	version     uint64
	box         domain.Box
	viewport    domain.Viewport
	lastBranch  domain.RenderBranch
	cancel      context.CancelFunc
	loadSeq     uint64
	logCtx      context.Context
	unmounted   bool
	sink        func(WidgetRender)
	unsubscribe func()
}

// NewActivityWidget creates a widget in the loading state.
func NewActivityWidget(
	source ports.ActivitySource,
	factory ports.ChartFactory,
	breakpoint int,
	logger *slog.Logger,
) *ActivityWidget {
	if breakpoint <= 0 {
		breakpoint = domain.Breakpoint
	}
	return &ActivityWidget{
		source:     source,
		slot:       NewChartSlot(factory),
		breakpoint: breakpoint,
		logger:     logger,
		state:      StateLoading,
		loading:    true,
		logCtx:     context.Background(),
	}
}

// State returns the widget's lifecycle state.
func (w *ActivityWidget) State() WidgetState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Series returns the loaded series, or nil when it was never loaded.
func (w *ActivityWidget) Series() domain.ActivitySeries {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.series
}

// Load fetches the series. On failure the error is logged, the loading flag
// is cleared and the series stays unset. A result arriving after Unmount is
// discarded. Starting a Load cancels any Load still in flight; the superseded
// call returns context.Canceled without touching the widget. Log records
// emitted by later render passes carry the values of ctx.
func (w *ActivityWidget) Load(ctx context.Context) error {
	w.mu.Lock()
	if w.unmounted {
		w.mu.Unlock()
		return context.Canceled
	}
	if w.cancel != nil {
		w.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.loadSeq++
	seq := w.loadSeq
	w.logCtx = ctx
	w.loading = true
	w.mu.Unlock()

	series, err := w.source.FetchActivity(fetchCtx)
	cancel()

	w.mu.Lock()
	if w.unmounted || seq != w.loadSeq {
		w.mu.Unlock()
		return context.Canceled
	}
	w.cancel = nil
	w.loading = false

	if err != nil {
		if w.series == nil {
			w.state = StateError
		}
		w.mu.Unlock()
		w.logger.WarnContext(ctx, "failed to load activity series", slog.String("error", err.Error()))
		w.push()
		return err
	}

	if series == nil {
		series = domain.ActivitySeries{}
	}
	w.series = series
	w.version++
	w.state = StateReady
	w.mu.Unlock()

	w.push()
	return nil
}

// Unmount cancels an in-flight fetch, releases the chart and stops observing
// the viewport. It is safe to call more than once.
func (w *ActivityWidget) Unmount() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.unmounted {
		return
	}
	w.unmounted = true

	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
	w.sink = nil
	w.slot.Release()
}

// Render runs one render pass for the given viewport and container box.
func (w *ActivityWidget) Render(vp domain.Viewport, box domain.Box) WidgetRender {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.viewport = vp
	w.box = box
	return w.renderLocked()
}

// SetBox records the measured size of the chart container for later passes.
func (w *ActivityWidget) SetBox(box domain.Box) {
	w.mu.Lock()
	w.box = box
	w.mu.Unlock()
}

// ObserveViewport subscribes the widget to signal. Sink receives a render
// whenever the breakpoint branch changes, on the first observation, when a
// pending chart can finally be drawn, and after every Load.
func (w *ActivityWidget) ObserveViewport(signal *ViewportSignal, sink func(WidgetRender)) {
	w.mu.Lock()
	if w.unmounted {
		w.mu.Unlock()
		return
	}
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
	w.sink = sink
	w.mu.Unlock()

	unsubscribe := signal.Subscribe(w.onViewport)

	w.mu.Lock()
	if w.unmounted {
		w.mu.Unlock()
		unsubscribe()
		return
	}
	w.unsubscribe = unsubscribe
	w.mu.Unlock()
}

func (w *ActivityWidget) onViewport(vp domain.Viewport) {
	w.mu.Lock()
	if w.unmounted || w.sink == nil {
		w.mu.Unlock()
		return
	}

	branch := domain.BranchFor(vp.Width, w.breakpoint)
	pending := branch == domain.BranchChart && w.series != nil && !w.box.Empty() && w.slot.Current() == nil
	if w.lastBranch != "" && branch == w.lastBranch && !pending {
		w.viewport = vp
		w.mu.Unlock()
		return
	}

	w.viewport = vp
	out := w.renderLocked()
	sink := w.sink
	w.mu.Unlock()

	sink(out)
}

// CompleteAnimation closes the animation latch of the live chart.
func (w *ActivityWidget) CompleteAnimation() {
	if chart := w.slot.Current(); chart != nil {
		chart.CompleteAnimation()
	}
}

func (w *ActivityWidget) push() {
	w.mu.Lock()
	if w.unmounted || w.sink == nil {
		w.mu.Unlock()
		return
	}
	out := w.renderLocked()
	sink := w.sink
	w.mu.Unlock()

	sink(out)
}

func (w *ActivityWidget) renderLocked() WidgetRender {
	metrics := domain.DeriveMetrics(w.series)
	branch := domain.BranchFor(w.viewport.Width, w.breakpoint)
	w.lastBranch = branch

	out := WidgetRender{
		State:   w.state,
		Loading: w.loading,
		Branch:  domain.BranchNone,
		Metrics: metrics,
	}

	switch branch {
	case domain.BranchSummary:
		w.slot.Release()
		summary := domain.NewTextSummary(w.series, metrics)
		out.Summary = &summary
		out.Branch = domain.BranchSummary

	case domain.BranchChart:
		if w.series == nil {
			return out
		}
		series := w.series
		chart, err := w.slot.Ensure(w.version, w.box, func(box domain.Box) domain.ChartSpec {
			return BuildChartSpec(series, box.Width, box.Height)
		})
		if err != nil {
			if !errors.Is(err, apperrors.ErrRenderTargetMissing) {
				w.logger.WarnContext(w.logCtx, "failed to construct chart", slog.String("error", err.Error()))
			}
			return out
		}
		spec := chart.Spec()
		out.Chart = &spec
		out.ChartID = w.slot.Generation()
		out.Branch = domain.BranchChart
	}

	if w.series != nil {
		w.state = StateRendered
		out.State = StateRendered
	}
	return out
}
