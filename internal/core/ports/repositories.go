package ports

import (
	"context"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
)

// ActivitySource fetches the daily activity series the widget visualises.
type ActivitySource interface {
	FetchActivity(ctx context.Context) (domain.ActivitySeries, error)
}

// ContentRepository loads the primary CMS content.
type ContentRepository interface {
	GetHomePage(ctx context.Context) (*domain.HomePageProps, error)
	Ping(ctx context.Context) error
}

// PixWingContentRepository loads the PixWing CMS content.
type PixWingContentRepository interface {
	GetPixWing(ctx context.Context) (*domain.PixWingProps, error)
	Ping(ctx context.Context) error
}

// ContributionsSource reads a user's daily contribution counts, oldest first.
type ContributionsSource interface {
	GetContributionDays(ctx context.Context, login string) (domain.ActivitySeries, error)
}
