package mocks

import (
	"context"
	"io"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	"github.com/pixwingai/pixwing-site/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// MockActivitySource is a mock implementation of ports.ActivitySource
type MockActivitySource struct {
	mock.Mock
}

func NewMockActivitySource() *MockActivitySource {
	return &MockActivitySource{}
}

func (m *MockActivitySource) FetchActivity(ctx context.Context) (domain.ActivitySeries, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ActivitySeries), args.Error(1)
}

// MockContentRepository is a mock implementation of ports.ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func NewMockContentRepository() *MockContentRepository {
	return &MockContentRepository{}
}

func (m *MockContentRepository) GetHomePage(ctx context.Context) (*domain.HomePageProps, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HomePageProps), args.Error(1)
}

func (m *MockContentRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPixWingContentRepository is a mock implementation of ports.PixWingContentRepository
type MockPixWingContentRepository struct {
	mock.Mock
}

func NewMockPixWingContentRepository() *MockPixWingContentRepository {
	return &MockPixWingContentRepository{}
}

func (m *MockPixWingContentRepository) GetPixWing(ctx context.Context) (*domain.PixWingProps, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PixWingProps), args.Error(1)
}

func (m *MockPixWingContentRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockContributionsSource is a mock implementation of ports.ContributionsSource
type MockContributionsSource struct {
	mock.Mock
}

func NewMockContributionsSource() *MockContributionsSource {
	return &MockContributionsSource{}
}

func (m *MockContributionsSource) GetContributionDays(ctx context.Context, login string) (domain.ActivitySeries, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ActivitySeries), args.Error(1)
}

// MockContentService is a mock implementation of ports.ContentService
type MockContentService struct {
	mock.Mock
}

func NewMockContentService() *MockContentService {
	return &MockContentService{}
}

func (m *MockContentService) GetLandingPage(ctx context.Context) (*domain.LandingPage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandingPage), args.Error(1)
}

// MockContributionService is a mock implementation of ports.ContributionService
type MockContributionService struct {
	mock.Mock
}

func NewMockContributionService() *MockContributionService {
	return &MockContributionService{}
}

func (m *MockContributionService) GetRecentActivity(ctx context.Context) (domain.ActivitySeries, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ActivitySeries), args.Error(1)
}

// MockChartFactory is a mock implementation of ports.ChartFactory
type MockChartFactory struct {
	mock.Mock
}

func NewMockChartFactory() *MockChartFactory {
	return &MockChartFactory{}
}

func (m *MockChartFactory) NewChart(spec domain.ChartSpec) (ports.ChartInstance, error) {
	args := m.Called(spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.ChartInstance), args.Error(1)
}

// MockChartInstance is a mock implementation of ports.ChartInstance
type MockChartInstance struct {
	mock.Mock
}

func NewMockChartInstance() *MockChartInstance {
	return &MockChartInstance{}
}

func (m *MockChartInstance) Spec() domain.ChartSpec {
	args := m.Called()
	return args.Get(0).(domain.ChartSpec)
}

func (m *MockChartInstance) Stagger() domain.Stagger {
	args := m.Called()
	return args.Get(0).(domain.Stagger)
}

func (m *MockChartInstance) CompleteAnimation() {
	m.Called()
}

func (m *MockChartInstance) Dispose() {
	m.Called()
}

// MockChartRenderer is a mock implementation of ports.ChartRenderer
type MockChartRenderer struct {
	mock.Mock
}

func NewMockChartRenderer() *MockChartRenderer {
	return &MockChartRenderer{}
}

func (m *MockChartRenderer) RenderPNG(w io.Writer, spec domain.ChartSpec) error {
	args := m.Called(w, spec)
	return args.Error(0)
}
