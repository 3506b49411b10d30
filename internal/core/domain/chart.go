package domain

import (
	"strconv"
)

// RGBA is a CSS rgba() color.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// WithAlpha returns the color with a different alpha.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// String renders the color as a CSS rgba() literal.
func (c RGBA) String() string {
	return "rgba(" +
		strconv.Itoa(int(c.R)) + ", " +
		strconv.Itoa(int(c.G)) + ", " +
		strconv.Itoa(int(c.B)) + ", " +
		strconv.FormatFloat(c.A, 'f', -1, 64) + ")"
}

// ColorStop is one stop of a gradient.
type ColorStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// LinearGradient describes a canvas linear gradient between two points.
type LinearGradient struct {
	Kind  string      `json:"kind"`
	X0    float64     `json:"x0"`
	Y0    float64     `json:"y0"`
	X1    float64     `json:"x1"`
	Y1    float64     `json:"y1"`
	Stops []ColorStop `json:"stops"`
}

// Dataset is a single line-chart dataset.
type Dataset struct {
	Label                string         `json:"label"`
	Data                 []int          `json:"data"`
	Fill                 bool           `json:"fill"`
	BackgroundColor      LinearGradient `json:"backgroundColor"`
	BorderColor          LinearGradient `json:"borderColor"`
	PointBackgroundColor string         `json:"pointBackgroundColor"`
	Tension              float64        `json:"tension"`
}

// ChartData holds the category labels and datasets.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// AxisTicks styles the tick labels of an axis.
type AxisTicks struct {
	Color     string `json:"color"`
	Precision *int   `json:"precision,omitempty"`
}

// AxisGrid styles the gridlines of an axis.
type AxisGrid struct {
	Color string `json:"color"`
}

// Axis is a single chart axis.
type Axis struct {
	Ticks     AxisTicks `json:"ticks"`
	Grid      AxisGrid  `json:"grid"`
	Precision *int      `json:"precision,omitempty"`
}

// Scales holds both axes.
type Scales struct {
	YAxes Axis `json:"yAxes"`
	XAxes Axis `json:"xAxes"`
}

// Legend toggles the chart legend.
type Legend struct {
	Display bool `json:"display"`
}

// Plugins holds plugin options.
type Plugins struct {
	Legend Legend `json:"legend"`
}

// Stagger describes the per-point entrance delay of the first animation pass.
// Delay for a point is DataIndex*PointDelayMs + DatasetIndex*DatasetDelayMs.
// Enabled is false once the owning chart's first pass has completed.
type Stagger struct {
	Enabled        bool   `json:"enabled"`
	PointDelayMs   int    `json:"pointDelayMs"`
	DatasetDelayMs int    `json:"datasetDelayMs"`
	ContextType    string `json:"contextType"`
	ContextMode    string `json:"contextMode"`
}

// Animation holds the chart's animation options.
type Animation struct {
	Stagger Stagger `json:"stagger"`
}

// ChartOptions is the options block of the chart configuration.
type ChartOptions struct {
	Responsive          bool      `json:"responsive"`
	MaintainAspectRatio bool      `json:"maintainAspectRatio"`
	Radius              int       `json:"radius"`
	HitRadius           int       `json:"hitRadius"`
	HoverRadius         int       `json:"hoverRadius"`
	Scales              Scales    `json:"scales"`
	Plugins             Plugins   `json:"plugins"`
	Animation           Animation `json:"animation"`
}

// ChartDefaults are global chart-library defaults applied before construction.
type ChartDefaults struct {
	FontSize      int  `json:"fontSize"`
	LegendDisplay bool `json:"legendDisplay"`
}

// ChartSpec is a complete line chart configuration, pinned to the canvas
// size measured at construction time.
type ChartSpec struct {
	Type     string        `json:"type"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Defaults ChartDefaults `json:"defaults"`
	Data     ChartData     `json:"data"`
	Options  ChartOptions  `json:"options"`
}

// TextSummary is the compact small-viewport rendering of a series.
type TextSummary struct {
	WindowDays    int `json:"windowDays"`
	TotalEvents   int `json:"totalEvents"`
	LongestStreak int `json:"longestStreak"`
}

// NewTextSummary builds a summary from a series and its metrics.
func NewTextSummary(series ActivitySeries, m DerivedMetrics) TextSummary {
	return TextSummary{
		WindowDays:    len(series),
		TotalEvents:   m.TotalEvents,
		LongestStreak: m.LongestStreak,
	}
}
