package reports

import (
	"math"
	"strconv"
	"strings"
	"time"

	"farm-records/internal/domain/records"
	"farm-records/internal/ports/farmdata"
)

type (
	DashboardSummary = farmdata.DashboardSummary
	ReportsSummary   = farmdata.ReportsSummary
	GroupCount       = farmdata.GroupCount
)

type ProfitSummary struct {
	SalesTotal float64 `json:"sales_total"`
	CostsTotal float64 `json:"costs_total"`
	Profit     float64 `json:"profit"`
}

type Tiles struct {
	HealthyCount int `json:"healthy_count"`
	SickCount    int `json:"sick_count"`
	AnimalCount  int `json:"animal_count"`
}

type WeeklyProductionSummary struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Total float64 `json:"total"`
}

const (
	healthHealthy = "healthy"

	// ventana inclusiva: hoy y los 6 días anteriores
	weekWindowDays = 6

	dateLayout = "2006-01-02"
)

// Dashboard resume inventario y ventas. Sin animales con lectura => promedio 0.
func Dashboard(animals []farmdata.Animal, sales []farmdata.Sale) DashboardSummary {
	var tempSum float64
	var tempN int
	unhealthy := 0
	for _, a := range animals {
		if t := a.Temperature; t != nil && *t != 0 && finite(*t) {
			tempSum += *t
			tempN++
		}
		if a.HealthStatus != healthHealthy {
			unhealthy++
		}
	}

	avg := 0.0
	if tempN > 0 {
		avg = round(tempSum/float64(tempN), 1)
	}

	return DashboardSummary{
		TotalAnimals:       len(animals),
		AverageTemperature: avg,
		UnhealthyCount:     unhealthy,
		SalesTotal:         round(salesTotal(sales), 2),
	}
}

// SpeciesBreakdown agrupa por especie en orden de aparición.
func SpeciesBreakdown(animals []farmdata.Animal) []GroupCount {
	return groupBy(animals, func(a farmdata.Animal) string { return a.Species })
}

func HealthBreakdown(animals []farmdata.Animal) []GroupCount {
	return groupBy(animals, func(a farmdata.Animal) string { return a.HealthStatus })
}

// CostsTotal no tiene modelo de costos todavía: siempre 0.
func CostsTotal() float64 { return 0 }

func Profit(sales []farmdata.Sale) ProfitSummary {
	total := round(salesTotal(sales), 2)
	costs := CostsTotal()
	return ProfitSummary{
		SalesTotal: total,
		CostsTotal: costs,
		Profit:     round(total-costs, 2),
	}
}

// WeeklyProduction suma quantity de las entradas con fecha en [today-6d, today].
// Fechas ilegibles se ignoran; quantity no numérica cuenta 0.
func WeeklyProduction(entries []records.Entry, today time.Time) float64 {
	from, to := weekWindow(today)

	var total float64
	for _, e := range entries {
		day, ok := entryDay(e["date"], today.Location())
		if !ok || day.Before(from) || day.After(to) {
			continue
		}
		total += quantity(e["quantity"])
	}
	return total
}

// QuickTiles: sick_count cuenta sick y unhealthy (critical no).
func QuickTiles(animals []farmdata.Animal) Tiles {
	t := Tiles{AnimalCount: len(animals)}
	for _, a := range animals {
		switch a.HealthStatus {
		case healthHealthy:
			t.HealthyCount++
		case "sick", "unhealthy":
			t.SickCount++
		}
	}
	return t
}

func Reports(animals []farmdata.Animal, sales []farmdata.Sale) ReportsSummary {
	return ReportsSummary{
		TotalAnimals:     len(animals),
		TotalSalesCount:  len(sales),
		SalesTotalAmount: round(salesTotal(sales), 2),
		SpeciesBreakdown: SpeciesBreakdown(animals),
		HealthBreakdown:  HealthBreakdown(animals),
	}
}

func weekWindow(today time.Time) (time.Time, time.Time) {
	to := startOfDay(today)
	return to.AddDate(0, 0, -weekWindowDays), to
}

func groupBy(animals []farmdata.Animal, key func(farmdata.Animal) string) []GroupCount {
	out := make([]GroupCount, 0)
	idx := map[string]int{}
	for _, a := range animals {
		k := key(a)
		if i, ok := idx[k]; ok {
			out[i].Count++
			continue
		}
		idx[k] = len(out)
		out = append(out, GroupCount{ID: k, Count: 1})
	}
	return out
}

func salesTotal(sales []farmdata.Sale) float64 {
	var total float64
	for _, s := range sales {
		if finite(s.Amount) {
			total += s.Amount
		}
	}
	return total
}

// entryDay acepta YYYY-MM-DD o RFC3339 y lo lleva al día calendario en loc.
func entryDay(v any, loc *time.Location) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return startOfDay(t.In(loc)), true
	}
	return time.Time{}, false
}

func quantity(v any) float64 {
	switch t := v.(type) {
	case float64:
		if finite(t) {
			return t
		}
	case int:
		return float64(t)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err == nil && finite(n) {
			return n
		}
	}
	return 0
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
