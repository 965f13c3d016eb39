package reports

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", dashboardHandler(svc))
	r.Get("/dashboard/tiles", tilesHandler(svc))
	r.Get("/reports", reportsHandler(svc))
	r.Get("/profit", profitHandler(svc))
	r.Get("/production/weekly", weeklyProductionHandler(svc))
}

// dashboardHandler godoc
// @Summary Resumen del dashboard
// @Description total de animales, temperatura promedio, animales no sanos y total de ventas. Si el origen de datos falla devuelve ceros.
// @Tags reports
// @Produce json
// @Success 200 {object} farmdata.DashboardSummary
// @Router /dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Dashboard(r.Context()))
	}
}

// tilesHandler godoc
// @Summary Contadores rápidos de salud
// @Tags reports
// @Produce json
// @Success 200 {object} Tiles
// @Router /dashboard/tiles [get]
func tilesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Tiles(r.Context()))
	}
}

// reportsHandler godoc
// @Summary Reporte de inventario y ventas
// @Description Incluye breakdown por especie y por estado de salud ({_id, count}).
// @Tags reports
// @Produce json
// @Success 200 {object} farmdata.ReportsSummary
// @Router /reports [get]
func reportsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Reports(r.Context()))
	}
}

// profitHandler godoc
// @Summary Ganancia
// @Description costs_total es 0 hasta que exista un modelo de costos.
// @Tags reports
// @Produce json
// @Success 200 {object} ProfitSummary
// @Router /profit [get]
func profitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Profit(r.Context()))
	}
}

// weeklyProductionHandler godoc
// @Summary Producción de los últimos 7 días
// @Tags reports
// @Produce json
// @Success 200 {object} WeeklyProductionSummary
// @Router /production/weekly [get]
func weeklyProductionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.WeeklyProduction(r.Context()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
