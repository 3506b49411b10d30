package chartrender_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/pixwingai/pixwing-site/internal/adapters/secondary/chartrender"
	"github.com/pixwingai/pixwing-site/internal/core/domain"
	apperrors "github.com/pixwingai/pixwing-site/internal/core/errors"
	"github.com/pixwingai/pixwing-site/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGRenderer_RenderPNG(t *testing.T) {
	series := domain.ActivitySeries{
		{Date: "2023-05-01", NumEvents: 2},
		{Date: "2023-05-02", NumEvents: 0},
		{Date: "2023-05-03", NumEvents: 7},
	}
	spec := services.BuildChartSpec(series, 640, 320)

	var buf bytes.Buffer
	require.NoError(t, chartrender.NewPNGRenderer().RenderPNG(&buf, spec))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 320, img.Bounds().Dy())
}

func TestPNGRenderer_NotEnoughPoints(t *testing.T) {
	r := chartrender.NewPNGRenderer()

	for _, n := range []int{0, 1} {
		series := make(domain.ActivitySeries, n)
		for i := range series {
			series[i] = domain.ActivityPoint{Date: "2023-05-01", NumEvents: 1}
		}

		var buf bytes.Buffer
		err := r.RenderPNG(&buf, services.BuildChartSpec(series, 640, 320))
		assert.ErrorIs(t, err, apperrors.ErrNotEnoughPoints)
		assert.Zero(t, buf.Len())
	}
}
