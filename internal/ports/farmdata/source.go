package farmdata

import (
	"context"
	"time"
)

// Animal es el snapshot de solo lectura que consume la agregación.
// Temperature nil = sin lectura.
type Animal struct {
	ID           string    `json:"id"`
	TagID        string    `json:"tag_id"`
	Species      string    `json:"species"`
	Breed        string    `json:"breed,omitempty"`
	AgeMonths    int       `json:"age_months,omitempty"`
	WeightKg     float64   `json:"weight_kg,omitempty"`
	HealthStatus string    `json:"health_status"`
	Temperature  *float64  `json:"temperature"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Sale struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Quantity    float64   `json:"quantity"`
	Date        string    `json:"date"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
}

// GroupCount conserva la key `_id` del contrato original.
type GroupCount struct {
	ID    string `json:"_id"`
	Count int    `json:"count"`
}

type DashboardSummary struct {
	TotalAnimals       int     `json:"total_animals"`
	AverageTemperature float64 `json:"average_temperature"`
	UnhealthyCount     int     `json:"unhealthy_count"`
	SalesTotal         float64 `json:"sales_total"`
}

type ReportsSummary struct {
	TotalAnimals     int          `json:"total_animals"`
	TotalSalesCount  int          `json:"total_sales_count"`
	SalesTotalAmount float64      `json:"sales_total_amount"`
	SpeciesBreakdown []GroupCount `json:"species_breakdown"`
	HealthBreakdown  []GroupCount `json:"health_breakdown"`
}

// Source es el colaborador de animales/ventas. Puede estar en proceso o ser remoto.
type Source interface {
	FetchAnimals(ctx context.Context) ([]Animal, error)
	FetchSales(ctx context.Context) ([]Sale, error)
	FetchDashboardSummary(ctx context.Context) (DashboardSummary, error)
	FetchReportsSummary(ctx context.Context) (ReportsSummary, error)
}
