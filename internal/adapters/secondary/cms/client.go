// Package cms loads landing page content from the headless CMS GraphQL
// endpoints.
package cms

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

// Client wraps a GraphQL client bound to one CMS endpoint.
type Client struct {
	name      string
	gql       *graphql.Client
	sanitizer *Sanitizer
	logger    *slog.Logger
}

// NewClient creates a client for endpoint. Name labels metrics and logs.
func NewClient(name, endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	httpClient := &http.Client{Timeout: timeout}
	gql := graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient))

	return &Client{
		name:      name,
		gql:       gql,
		sanitizer: NewSanitizer(),
		logger:    logger,
	}
}

func (c *Client) run(ctx context.Context, query string, resp any) error {
	start := time.Now()

	req := graphql.NewRequest(query)
	req.Header.Set("Cache-Control", "no-cache")

	err := c.gql.Run(ctx, req, resp)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordUpstream(c.name, status, time.Since(start).Seconds())

	if err != nil {
		c.logger.WarnContext(ctx, "cms query failed",
			slog.String("upstream", c.name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%s query failed: %w", c.name, err)
	}
	return nil
}

// Ping issues a trivial query against the endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var resp struct {
		Typename string `json:"__typename"`
	}
	return c.run(ctx, pingQuery, &resp)
}

// HomePageRepository reads the primary CMS.
type HomePageRepository struct {
	*Client
}

var _ ports.ContentRepository = (*HomePageRepository)(nil)

// NewHomePageRepository creates a repository for the primary CMS endpoint.
func NewHomePageRepository(endpoint string, timeout time.Duration, logger *slog.Logger) *HomePageRepository {
	return &HomePageRepository{Client: NewClient("cms", endpoint, timeout, logger)}
}

// GetHomePage runs the home page query.
func (r *HomePageRepository) GetHomePage(ctx context.Context) (*domain.HomePageProps, error) {
	var props domain.HomePageProps
	if err := r.run(ctx, homePageQuery, &props); err != nil {
		return nil, err
	}
	r.sanitizeHome(&props)
	return &props, nil
}

func (r *HomePageRepository) sanitizeHome(p *domain.HomePageProps) {
	s := r.sanitizer
	for i := range p.Stacks {
		sanitizeStack(s, &p.Stacks[i])
	}
	for i := range p.Applications {
		a := &p.Applications[i]
		a.Name = s.Text(a.Name)
		a.Description = s.Paragraphs(a.Description)
		for j := range a.Stacks {
			sanitizeStack(s, &a.Stacks[j])
		}
	}
	for i := range p.Achievements {
		a := &p.Achievements[i]
		a.Name = s.Text(a.Name)
		a.Description = s.Paragraphs(a.Description)
	}
	for i := range p.Volunteers {
		v := &p.Volunteers[i]
		v.Name = s.Text(v.Name)
		v.Description = s.Paragraphs(v.Description)
	}
	for i := range p.Responsibilities {
		res := &p.Responsibilities[i]
		res.Name = s.Text(res.Name)
		res.Location = s.Text(res.Location)
		res.Description = s.Paragraphs(res.Description)
	}
}

// PixWingRepository reads the PixWing CMS.
type PixWingRepository struct {
	*Client
}

var _ ports.PixWingContentRepository = (*PixWingRepository)(nil)

// NewPixWingRepository creates a repository for the PixWing CMS endpoint.
func NewPixWingRepository(endpoint string, timeout time.Duration, logger *slog.Logger) *PixWingRepository {
	return &PixWingRepository{Client: NewClient("cms_pixwing", endpoint, timeout, logger)}
}

type pixWingResponse struct {
	Stacks           []domain.Stack                         `json:"stacks"`
	Visions          []domain.Vision                        `json:"visions"`
	OurProducts      []domain.Product                       `json:"ourProducts"`
	CorprateSocialRs []domain.CorporateSocialResponsibility `json:"corprateSocialRs"`
	OurCultures      []domain.Culture                       `json:"ourCultures"`
}

// GetPixWing runs the PixWing query.
func (r *PixWingRepository) GetPixWing(ctx context.Context) (*domain.PixWingProps, error) {
	var resp pixWingResponse
	if err := r.run(ctx, pixWingQuery, &resp); err != nil {
		return nil, err
	}

	s := r.sanitizer
	props := &domain.PixWingProps{
		Stacks:                 resp.Stacks,
		Visions:                resp.Visions,
		Products:               resp.OurProducts,
		Cultures:               resp.OurCultures,
		CorporateSocialRespons: resp.CorprateSocialRs,
	}
	for i := range props.Stacks {
		sanitizeStack(s, &props.Stacks[i])
	}
	for i := range props.Visions {
		props.Visions[i].Description = s.Paragraphs(props.Visions[i].Description)
	}
	for i := range props.Products {
		props.Products[i].Description = s.Paragraphs(props.Products[i].Description)
		props.Products[i].ProductID = s.Text(props.Products[i].ProductID)
	}
	for i := range props.Cultures {
		props.Cultures[i].Title = s.Text(props.Cultures[i].Title)
		props.Cultures[i].Description = s.Paragraphs(props.Cultures[i].Description)
	}
	for i := range props.CorporateSocialRespons {
		csr := &props.CorporateSocialRespons[i]
		csr.Title = s.Text(csr.Title)
		csr.Description = s.Paragraphs(csr.Description)
	}
	return props, nil
}

func sanitizeStack(s *Sanitizer, st *domain.Stack) {
	st.Name = s.Text(st.Name)
	st.Image.FileName = s.Text(st.Image.FileName)
}
