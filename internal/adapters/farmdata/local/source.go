package local

import (
	"context"

	"farm-records/internal/domain/livestock"
	"farm-records/internal/domain/reports"
	"farm-records/internal/ports/farmdata"
)

// Source sirve snapshots desde el módulo livestock del mismo proceso.
// Los resúmenes se derivan con las funciones de agregación.
type Source struct {
	svc *livestock.Service
}

var _ farmdata.Source = (*Source)(nil)

func New(svc *livestock.Service) *Source {
	return &Source{svc: svc}
}

func (s *Source) FetchAnimals(ctx context.Context) ([]farmdata.Animal, error) {
	items, err := s.svc.ListAnimals(ctx)
	if err != nil {
		return nil, err
	}
	return livestock.AnimalSnapshots(items), nil
}

func (s *Source) FetchSales(ctx context.Context) ([]farmdata.Sale, error) {
	items, err := s.svc.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	return livestock.SaleSnapshots(items), nil
}

func (s *Source) FetchDashboardSummary(ctx context.Context) (farmdata.DashboardSummary, error) {
	animals, sales, err := s.snapshots(ctx)
	if err != nil {
		return farmdata.DashboardSummary{}, err
	}
	return reports.Dashboard(animals, sales), nil
}

func (s *Source) FetchReportsSummary(ctx context.Context) (farmdata.ReportsSummary, error) {
	animals, sales, err := s.snapshots(ctx)
	if err != nil {
		return farmdata.ReportsSummary{}, err
	}
	return reports.Reports(animals, sales), nil
}

func (s *Source) snapshots(ctx context.Context) ([]farmdata.Animal, []farmdata.Sale, error) {
	animals, err := s.FetchAnimals(ctx)
	if err != nil {
		return nil, nil, err
	}
	sales, err := s.FetchSales(ctx)
	if err != nil {
		return nil, nil, err
	}
	return animals, sales, nil
}
