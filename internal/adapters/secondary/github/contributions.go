// Package github reads a user's contribution calendar from the GitHub
// GraphQL API.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/machinebox/graphql"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	"github.com/pixwingai/pixwing-site/internal/core/ports"
	"github.com/pixwingai/pixwing-site/internal/infrastructure/metrics"
)

const contributionsQuery = `
query Contributions($login: String!) {
  user(login: $login) {
    contributionsCollection {
      contributionCalendar {
        weeks {
          contributionDays {
            contributionCount
            date
          }
        }
      }
    }
  }
}`

type contributionsResponse struct {
	User *struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				Weeks []struct {
					ContributionDays []struct {
						ContributionCount int    `json:"contributionCount"`
						Date              string `json:"date"`
					} `json:"contributionDays"`
				} `json:"weeks"`
			} `json:"contributionCalendar"`
		} `json:"contributionsCollection"`
	} `json:"user"`
}

// ContributionsClient queries the contribution calendar.
type ContributionsClient struct {
	gql    *graphql.Client
	token  string
	logger *slog.Logger
}

var _ ports.ContributionsSource = (*ContributionsClient)(nil)

// NewContributionsClient creates a client for endpoint authenticated with
// token. An empty token sends unauthenticated requests.
func NewContributionsClient(endpoint, token string, timeout time.Duration, logger *slog.Logger) *ContributionsClient {
	gql := graphql.NewClient(endpoint, graphql.WithHTTPClient(&http.Client{Timeout: timeout}))
	return &ContributionsClient{gql: gql, token: token, logger: logger}
}

// GetContributionDays returns every day of the calendar, oldest first.
func (c *ContributionsClient) GetContributionDays(ctx context.Context, login string) (domain.ActivitySeries, error) {
	start := time.Now()

	req := graphql.NewRequest(contributionsQuery)
	req.Var("login", login)
	if c.token != "" {
		req.Header.Set("Authorization", "bearer "+c.token)
	}

	var resp contributionsResponse
	err := c.gql.Run(ctx, req, &resp)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordUpstream("github", status, time.Since(start).Seconds())

	if err != nil {
		c.logger.WarnContext(ctx, "github contributions query failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("contributions query failed: %w", err)
	}
	if resp.User == nil {
		return nil, fmt.Errorf("github user %q not found", login)
	}

	var series domain.ActivitySeries
	for _, week := range resp.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			series = append(series, domain.ActivityPoint{
				Date:      day.Date,
				NumEvents: day.ContributionCount,
			})
		}
	}
	if series == nil {
		series = domain.ActivitySeries{}
	}
	return series, nil
}
