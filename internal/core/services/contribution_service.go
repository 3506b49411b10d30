package services

import (
	"context"
	"fmt"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	apperrors "github.com/pixwingai/pixwing-site/internal/core/errors"
	"github.com/pixwingai/pixwing-site/internal/core/ports"
)

// ContributionService serves the recent GitHub activity of one user.
type ContributionService struct {
	source ports.ContributionsSource
	login  string
	window int
}

var _ ports.ContributionService = (*ContributionService)(nil)

// NewContributionService creates a service reporting the last window days
// of login's contributions.
func NewContributionService(source ports.ContributionsSource, login string, window int) *ContributionService {
	return &ContributionService{
		source: source,
		login:  login,
		window: window,
	}
}

// GetRecentActivity returns the most recent days, oldest first.
func (s *ContributionService) GetRecentActivity(ctx context.Context) (domain.ActivitySeries, error) {
	days, err := s.source.GetContributionDays(ctx, s.login)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrContributionsUnavailable, err)
	}
	return LastDays(days, s.window), nil
}

// LastDays keeps the trailing n points of series. The result is never nil.
func LastDays(series domain.ActivitySeries, n int) domain.ActivitySeries {
	if n <= 0 || len(series) == 0 {
		return domain.ActivitySeries{}
	}
	if len(series) > n {
		series = series[len(series)-n:]
	}
	out := make(domain.ActivitySeries, len(series))
	copy(out, series)
	return out
}
