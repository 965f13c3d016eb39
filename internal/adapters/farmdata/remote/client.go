package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"farm-records/internal/platform/httpclient"
	"farm-records/internal/ports/farmdata"
)

var (
	ErrNotConfigured = errors.New("farmdata: remote source not configured")
	ErrUnauthorized  = errors.New("farmdata: unauthorized")
	ErrUpstream      = errors.New("farmdata: upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	APIKeyHeader string
	Timeout      time.Duration
}

// Source habla con un servicio externo que expone /animals, /sales,
// /dashboard y /reports con la misma forma JSON que esta API.
type Source struct {
	http *httpclient.Client
}

var _ farmdata.Source = (*Source)(nil)

func New(cfg Config) (*Source, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	c, err := httpclient.New(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		h := strings.TrimSpace(cfg.APIKeyHeader)
		if h == "" {
			h = "X-Api-Key"
		}
		c.Headers = map[string]string{h: key}
	}
	return &Source{http: c}, nil
}

func (s *Source) FetchAnimals(ctx context.Context) ([]farmdata.Animal, error) {
	out := []farmdata.Animal{}
	if err := s.get(ctx, "/animals", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Source) FetchSales(ctx context.Context) ([]farmdata.Sale, error) {
	out := []farmdata.Sale{}
	if err := s.get(ctx, "/sales", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Source) FetchDashboardSummary(ctx context.Context) (farmdata.DashboardSummary, error) {
	var out farmdata.DashboardSummary
	err := s.get(ctx, "/dashboard", &out)
	return out, err
}

func (s *Source) FetchReportsSummary(ctx context.Context) (farmdata.ReportsSummary, error) {
	var out farmdata.ReportsSummary
	err := s.get(ctx, "/reports", &out)
	return out, err
}

func (s *Source) get(ctx context.Context, path string, out any) error {
	if s == nil || s.http == nil {
		return ErrNotConfigured
	}

	err := s.http.GetJSON(ctx, path, out)
	switch {
	case err == nil:
		return nil
	case httpclient.IsStatus(err, http.StatusUnauthorized), httpclient.IsStatus(err, http.StatusForbidden):
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: GET %s: %w", ErrUpstream, path, err)
	}
}
