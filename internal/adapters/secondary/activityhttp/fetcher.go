// Package activityhttp fetches the activity series from the github status
// endpoint over HTTP.
package activityhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	apperrors "github.com/pixwingai/pixwing-site/internal/core/errors"
	"github.com/pixwingai/pixwing-site/internal/core/ports"
	"github.com/pixwingai/pixwing-site/internal/infrastructure/metrics"
)

// maxBodyBytes bounds the response size of a single fetch.
const maxBodyBytes = 1 << 20

// Fetcher issues one GET per call against a fixed endpoint.
type Fetcher struct {
	endpoint string
	client   *http.Client
}

var _ ports.ActivitySource = (*Fetcher)(nil)

// NewFetcher creates a fetcher for endpoint.
func NewFetcher(endpoint string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewFetcherWithClient creates a fetcher using an existing client.
func NewFetcherWithClient(endpoint string, client *http.Client) *Fetcher {
	return &Fetcher{endpoint: endpoint, client: client}
}

// FetchActivity retrieves the series. Every failure wraps
// ErrActivityUnavailable; a body that is not a list of points additionally
// wraps ErrMalformedSeries.
func (f *Fetcher) FetchActivity(ctx context.Context) (domain.ActivitySeries, error) {
	start := time.Now()

	series, err := f.fetch(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordActivityFetch(status, time.Since(start).Seconds())

	return series, err
}

func (f *Fetcher) fetch(ctx context.Context) (domain.ActivitySeries, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", apperrors.ErrActivityUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", apperrors.ErrActivityUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: endpoint returned status: %d", apperrors.ErrActivityUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %w", apperrors.ErrActivityUnavailable, err)
	}

	var points []domain.ActivityPoint
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", apperrors.ErrActivityUnavailable, apperrors.ErrMalformedSeries, err)
	}

	for i, p := range points {
		if p.NumEvents < 0 {
			return nil, fmt.Errorf("%w: %w: point %d has negative numEvents", apperrors.ErrActivityUnavailable, apperrors.ErrMalformedSeries, i)
		}
	}

	if points == nil {
		points = []domain.ActivityPoint{}
	}
	return domain.ActivitySeries(points), nil
}
