package reports

import (
	"context"
	"time"

	"farm-records/internal/domain/records"
	"farm-records/internal/platform/logger"
	"farm-records/internal/ports/farmdata"
)

// Service arma las vistas agregadas. Si el colaborador de animales/ventas falla,
// se sigue con colecciones vacías (stats en cero) y se loguea.
type Service struct {
	source  farmdata.Source
	records *records.Store
	log     logger.Logger
	now     func() time.Time
}

func NewService(source farmdata.Source, store *records.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		source:  source,
		records: store,
		log:     log.With(map[string]any{"module": "reports"}),
		now:     time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context) DashboardSummary {
	if s.source != nil {
		sum, err := s.source.FetchDashboardSummary(ctx)
		if err == nil {
			return sum
		}
		s.degraded("dashboard", err)
	}
	return Dashboard(s.animals(ctx), s.sales(ctx))
}

func (s *Service) Reports(ctx context.Context) ReportsSummary {
	if s.source != nil {
		sum, err := s.source.FetchReportsSummary(ctx)
		if err == nil {
			if sum.SpeciesBreakdown == nil {
				sum.SpeciesBreakdown = []GroupCount{}
			}
			if sum.HealthBreakdown == nil {
				sum.HealthBreakdown = []GroupCount{}
			}
			return sum
		}
		s.degraded("reports", err)
	}
	return Reports(s.animals(ctx), s.sales(ctx))
}

func (s *Service) Profit(ctx context.Context) ProfitSummary {
	return Profit(s.sales(ctx))
}

func (s *Service) Tiles(ctx context.Context) Tiles {
	return QuickTiles(s.animals(ctx))
}

func (s *Service) WeeklyProduction(ctx context.Context) WeeklyProductionSummary {
	today := s.now()
	from, to := weekWindow(today)

	var entries []records.Entry
	if s.records != nil {
		entries = s.records.Load(ctx, records.KeyProduction)
	}
	return WeeklyProductionSummary{
		From:  from.Format(dateLayout),
		To:    to.Format(dateLayout),
		Total: WeeklyProduction(entries, today),
	}
}

func (s *Service) animals(ctx context.Context) []farmdata.Animal {
	if s.source == nil {
		return nil
	}
	items, err := s.source.FetchAnimals(ctx)
	if err != nil {
		s.degraded("animals", err)
		return nil
	}
	return items
}

func (s *Service) sales(ctx context.Context) []farmdata.Sale {
	if s.source == nil {
		return nil
	}
	items, err := s.source.FetchSales(ctx)
	if err != nil {
		s.degraded("sales", err)
		return nil
	}
	return items
}

func (s *Service) degraded(what string, err error) {
	s.log.Warn("farm data unavailable, rendering degraded view", map[string]any{
		"fetch": what,
		"err":   err,
	})
}
