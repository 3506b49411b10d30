package services_test

import (
	"testing"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	"github.com/pixwingai/pixwing-site/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChartSpec(t *testing.T) {
	series := domain.ActivitySeries{
		{Date: "2023-05-01", NumEvents: 2},
		{Date: "2023-05-02", NumEvents: 0},
		{Date: "2023-05-03", NumEvents: 7},
	}

	spec := services.BuildChartSpec(series, 800, 400)

	assert.Equal(t, "line", spec.Type)
	assert.Equal(t, 800, spec.Width)
	assert.Equal(t, 400, spec.Height)
	assert.Equal(t, 16, spec.Defaults.FontSize)
	assert.False(t, spec.Defaults.LegendDisplay)

	assert.Equal(t, []string{"May 1, 2023", "May 2, 2023", "May 3, 2023"}, spec.Data.Labels)
	require.Len(t, spec.Data.Datasets, 1)

	ds := spec.Data.Datasets[0]
	assert.Equal(t, "Github Events", ds.Label)
	assert.Equal(t, []int{2, 0, 7}, ds.Data)
	assert.True(t, ds.Fill)
	assert.Equal(t, 0.4, ds.Tension)
	assert.Equal(t, "rgba(189, 195, 199, 0.8)", ds.PointBackgroundColor)

	t.Run("gradients span the canvas width", func(t *testing.T) {
		assert.Equal(t, 800.0, ds.BackgroundColor.X1)
		assert.Zero(t, ds.BackgroundColor.Y1)
		require.Len(t, ds.BackgroundColor.Stops, 2)
		assert.Equal(t, "rgba(170, 140, 254, 0.7)", ds.BackgroundColor.Stops[0].Color)
		assert.Equal(t, "rgba(30, 203, 137, 0.7)", ds.BackgroundColor.Stops[1].Color)
		assert.Equal(t, "rgba(170, 140, 254, 0.8)", ds.BorderColor.Stops[0].Color)
		assert.Equal(t, "rgba(30, 203, 137, 0.8)", ds.BorderColor.Stops[1].Color)
	})

	t.Run("options", func(t *testing.T) {
		opts := spec.Options
		assert.True(t, opts.Responsive)
		assert.False(t, opts.MaintainAspectRatio)
		assert.Equal(t, 5, opts.Radius)
		assert.Equal(t, 100, opts.HitRadius)
		assert.Equal(t, 10, opts.HoverRadius)
		assert.False(t, opts.Plugins.Legend.Display)

		require.NotNil(t, opts.Scales.YAxes.Precision)
		assert.Equal(t, 0, *opts.Scales.YAxes.Precision)
		assert.Equal(t, "#ffffff", opts.Scales.YAxes.Ticks.Color)
		assert.Equal(t, "#ffffff", opts.Scales.XAxes.Ticks.Color)
		assert.Equal(t, "rgba(255, 255, 255, 0.1)", opts.Scales.XAxes.Grid.Color)
		assert.Equal(t, "rgba(255, 255, 255, 0.1)", opts.Scales.YAxes.Grid.Color)
	})

	t.Run("stagger starts enabled", func(t *testing.T) {
		assert.Equal(t, domain.Stagger{
			Enabled:        true,
			PointDelayMs:   150,
			DatasetDelayMs: 100,
			ContextType:    "data",
			ContextMode:    "default",
		}, spec.Options.Animation.Stagger)
	})
}

func TestBuildChartSpec_EmptySeries(t *testing.T) {
	spec := services.BuildChartSpec(domain.ActivitySeries{}, 320, 200)

	assert.Empty(t, spec.Data.Labels)
	require.Len(t, spec.Data.Datasets, 1)
	assert.Empty(t, spec.Data.Datasets[0].Data)
}
