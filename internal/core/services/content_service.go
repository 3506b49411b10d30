package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	apperrors "github.com/pixwingai/pixwing-site/internal/core/errors"
	"github.com/pixwingai/pixwing-site/internal/core/ports"
)

// ContentService hydrates the landing page from both CMS endpoints.
type ContentService struct {
	primary ports.ContentRepository
	pixwing ports.PixWingContentRepository
	logger  *slog.Logger
}

var _ ports.ContentService = (*ContentService)(nil)

// NewContentService creates a new content service
func NewContentService(
	primary ports.ContentRepository,
	pixwing ports.PixWingContentRepository,
	logger *slog.Logger,
) *ContentService {
	return &ContentService{
		primary: primary,
		pixwing: pixwing,
		logger:  logger,
	}
}

// GetLandingPage queries both CMS endpoints concurrently. Either failing
// fails the whole page.
func (s *ContentService) GetLandingPage(ctx context.Context) (*domain.LandingPage, error) {
	var (
		home    *domain.HomePageProps
		pixwing *domain.PixWingProps
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		props, err := s.primary.GetHomePage(gctx)
		if err != nil {
			return fmt.Errorf("%w: primary: %w", apperrors.ErrCMSUnavailable, err)
		}
		home = props
		return nil
	})

	g.Go(func() error {
		props, err := s.pixwing.GetPixWing(gctx)
		if err != nil {
			return fmt.Errorf("%w: pixwing: %w", apperrors.ErrCMSUnavailable, err)
		}
		pixwing = props
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "failed to load landing page content", slog.String("error", err.Error()))
		return nil, err
	}

	page := &domain.LandingPage{}
	if home != nil {
		page.Home = *home
	}
	if pixwing != nil {
		page.PixWing = *pixwing
	}
	return page, nil
}
