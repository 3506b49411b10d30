package services

import (
	"github.com/pixwingai/pixwing-site/internal/core/domain"
)

// Styling literals for the activity chart.
var (
	gradientStart = domain.RGBA{R: 170, G: 140, B: 254}
	gradientEnd   = domain.RGBA{R: 30, G: 203, B: 137}
	pointColor    = domain.RGBA{R: 189, G: 195, B: 199, A: 0.8}
	gridColor     = domain.RGBA{R: 255, G: 255, B: 255, A: 0.1}
)

const (
	fillAlpha      = 0.7
	borderAlpha    = 0.8
	lineTension    = 0.4
	tickColor      = "#ffffff"
	fontSize       = 16
	datasetLabel   = "Github Events"
	pointDelayMs   = 150
	datasetDelayMs = 100
)

// BuildChartSpec maps a series onto a line chart pinned to a width x height
// canvas. The stagger is enabled; the owning chart instance closes it after
// the first animation pass.
func BuildChartSpec(series domain.ActivitySeries, width, height int) domain.ChartSpec {
	integerOnly := 0

	return domain.ChartSpec{
		Type:   "line",
		Width:  width,
		Height: height,
		Defaults: domain.ChartDefaults{
			FontSize:      fontSize,
			LegendDisplay: false,
		},
		Data: domain.ChartData{
			Labels: series.Labels(),
			Datasets: []domain.Dataset{
				{
					Label:                datasetLabel,
					Data:                 series.Values(),
					Fill:                 true,
					BackgroundColor:      horizontalGradient(width, fillAlpha),
					BorderColor:          horizontalGradient(width, borderAlpha),
					PointBackgroundColor: pointColor.String(),
					Tension:              lineTension,
				},
			},
		},
		Options: domain.ChartOptions{
			Responsive:          true,
			MaintainAspectRatio: false,
			Radius:              5,
			HitRadius:           100,
			HoverRadius:         10,
			Scales: domain.Scales{
				YAxes: domain.Axis{
					Ticks:     domain.AxisTicks{Color: tickColor, Precision: &integerOnly},
					Grid:      domain.AxisGrid{Color: gridColor.String()},
					Precision: &integerOnly,
				},
				XAxes: domain.Axis{
					Ticks: domain.AxisTicks{Color: tickColor},
					Grid:  domain.AxisGrid{Color: gridColor.String()},
				},
			},
			Plugins: domain.Plugins{Legend: domain.Legend{Display: false}},
			Animation: domain.Animation{
				Stagger: domain.Stagger{
					Enabled:        true,
					PointDelayMs:   pointDelayMs,
					DatasetDelayMs: datasetDelayMs,
					ContextType:    "data",
					ContextMode:    "default",
				},
			},
		},
	}
}

func horizontalGradient(width int, alpha float64) domain.LinearGradient {
	return domain.LinearGradient{
		Kind: "linear",
		X0:   0,
		Y0:   0,
		X1:   float64(width),
		Y1:   0,
		Stops: []domain.ColorStop{
			{Offset: 0, Color: gradientStart.WithAlpha(alpha).String()},
			{Offset: 1, Color: gradientEnd.WithAlpha(alpha).String()},
		},
	}
}
