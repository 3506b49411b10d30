package ports

import (
	"context"
	"io"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
)

// ContentService defines the port for hydrating the landing page.
type ContentService interface {
	GetLandingPage(ctx context.Context) (*domain.LandingPage, error)
}

// ContributionService defines the port behind the github status endpoint.
type ContributionService interface {
	GetRecentActivity(ctx context.Context) (domain.ActivitySeries, error)
}

// ChartInstance is an exclusively owned chart constructed on a render target.
type ChartInstance interface {
	Spec() domain.ChartSpec
	Stagger() domain.Stagger
	CompleteAnimation()
	Dispose()
}

// ChartFactory constructs a chart instance from a spec.
type ChartFactory interface {
	NewChart(spec domain.ChartSpec) (ChartInstance, error)
}

// ChartRenderer draws a chart spec onto an image.
type ChartRenderer interface {
	RenderPNG(w io.Writer, spec domain.ChartSpec) error
}
