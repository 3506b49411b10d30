// Package chartrender draws activity chart specs as static images for
// clients that cannot run the interactive chart.
package chartrender

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	apperrors "github.com/pixwingai/pixwing-site/internal/core/errors"
	"github.com/pixwingai/pixwing-site/internal/core/ports"
)

const (
	defaultWidth  = 1024
	defaultHeight = 400
	yTickCount    = 5
)

// PNGRenderer renders chart specs with go-chart.
type PNGRenderer struct{}

var _ ports.ChartRenderer = PNGRenderer{}

// NewPNGRenderer creates a renderer.
func NewPNGRenderer() PNGRenderer {
	return PNGRenderer{}
}

// RenderPNG draws the first dataset of spec onto w. Gradients collapse to
// their first stop for the fill and their last stop for the stroke. A
// dataset with fewer than two points fails with ErrNotEnoughPoints.
func (PNGRenderer) RenderPNG(w io.Writer, spec domain.ChartSpec) error {
	if len(spec.Data.Datasets) == 0 || len(spec.Data.Datasets[0].Data) < 2 {
		return apperrors.ErrNotEnoughPoints
	}
	ds := spec.Data.Datasets[0]

	xs := make([]float64, len(ds.Data))
	ys := make([]float64, len(ds.Data))
	maxY := 0.0
	for i, v := range ds.Data {
		xs[i] = float64(i)
		ys[i] = float64(v)
		maxY = math.Max(maxY, ys[i])
	}

	fill := gradientColor(ds.BackgroundColor, false)
	stroke := gradientColor(ds.BorderColor, true)
	dot := drawing.ParseColor(ds.PointBackgroundColor)
	tickColor := drawing.ParseColor(spec.Options.Scales.XAxes.Ticks.Color)
	gridColor := drawing.ParseColor(spec.Options.Scales.XAxes.Grid.Color)

	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	fontSize := float64(spec.Defaults.FontSize)
	axisStyle := chart.Style{
		FontColor:   tickColor,
		FontSize:    fontSize,
		StrokeColor: gridColor,
	}
	gridStyle := chart.Style{
		StrokeColor: gridColor,
		StrokeWidth: 1,
	}

	xTicks := make([]chart.Tick, len(spec.Data.Labels))
	xGrid := make([]chart.GridLine, len(spec.Data.Labels))
	for i, label := range spec.Data.Labels {
		xTicks[i] = chart.Tick{Value: float64(i), Label: label}
		xGrid[i] = chart.GridLine{Value: float64(i)}
	}

	yMax, yTicks := integerTicks(maxY)
	yGrid := make([]chart.GridLine, len(yTicks))
	for i, t := range yTicks {
		yGrid[i] = chart.GridLine{Value: t.Value}
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: drawing.ColorTransparent,
			Padding:   chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: drawing.ColorTransparent,
		},
		XAxis: chart.XAxis{
			Style:          axisStyle,
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(len(xs) - 1)},
			Ticks:          xTicks,
			GridLines:      xGrid,
			GridMajorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Style:          axisStyle,
			Range:          &chart.ContinuousRange{Min: 0, Max: yMax},
			Ticks:          yTicks,
			GridLines:      yGrid,
			GridMajorStyle: gridStyle,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    ds.Label,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: stroke,
					StrokeWidth: 3,
					FillColor:   fill,
					DotColor:    dot,
					DotWidth:    float64(spec.Options.Radius),
				},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// integerTicks returns an axis maximum and evenly spaced whole-number ticks
// from zero up to it.
func integerTicks(maxY float64) (float64, []chart.Tick) {
	step := math.Max(1, math.Ceil(maxY/yTickCount))
	top := step * math.Max(1, math.Ceil(maxY/step))

	ticks := make([]chart.Tick, 0, int(top/step)+1)
	for v := 0.0; v <= top; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: strconv.Itoa(int(v))})
	}
	return top, ticks
}

func gradientColor(g domain.LinearGradient, last bool) drawing.Color {
	if len(g.Stops) == 0 {
		return drawing.ColorTransparent
	}
	stop := g.Stops[0]
	if last {
		stop = g.Stops[len(g.Stops)-1]
	}
	return drawing.ParseColor(stop.Color)
}
