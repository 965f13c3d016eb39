package livestock

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"farm-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc))
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/tag/{tagID}", getAnimalByTagHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Patch("/{animalID}", updateAnimalHandler(svc))
	})

	r.Route("/sales", func(sr chi.Router) {
		sr.Get("/", listSalesHandler(svc))
		sr.Post("/", createSaleHandler(svc))
	})
}

type createAnimalRequest struct {
	TagID        string   `json:"tag_id"`
	Species      string   `json:"species"` // default Chicken
	Breed        string   `json:"breed"`
	AgeMonths    int      `json:"age_months"`
	WeightKg     float64  `json:"weight_kg"`
	HealthStatus string   `json:"health_status" enums:"healthy,unhealthy,sick,critical"`
	Temperature  *float64 `json:"temperature"` // default 40.0
	Notes        string   `json:"notes"`
}

type updateAnimalRequest struct {
	Species      *string  `json:"species"`
	Breed        *string  `json:"breed"`
	AgeMonths    *int     `json:"age_months"`
	WeightKg     *float64 `json:"weight_kg"`
	HealthStatus *string  `json:"health_status"`
	Temperature  *float64 `json:"temperature"`
	Notes        *string  `json:"notes"`
}

type createSaleRequest struct {
	Description string   `json:"description"` // default "Sale"
	Amount      *float64 `json:"amount"`
	Quantity    *float64 `json:"quantity"` // default 1
	Date        string   `json:"date"`     // YYYY-MM-DD, default hoy
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Tags livestock
// @Produce json
// @Success 200 {array} farmdata.Animal
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAnimals(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, AnimalSnapshots(items))
	}
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description tag_id es obligatorio y único. Requiere sesión.
// @Tags livestock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param payload body createAnimalRequest true "Datos del animal"
// @Success 201 {object} farmdata.Animal
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "tag_id already exists"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.CreateAnimal(r.Context(), CreateAnimalInput{
			TagID:        req.TagID,
			Species:      req.Species,
			Breed:        req.Breed,
			AgeMonths:    req.AgeMonths,
			WeightKg:     req.WeightKg,
			HealthStatus: req.HealthStatus,
			Temperature:  req.Temperature,
			Notes:        req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ToSnapshot(a))
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToSnapshot(a))
	}
}

// getAnimalByTagHandler godoc
// @Summary Buscar animal por tag
// @Tags livestock
// @Produce json
// @Param tagID path string true "Tag del animal"
// @Success 200 {object} farmdata.Animal
// @Failure 404 {string} string "animal not found"
// @Router /animals/tag/{tagID} [get]
func getAnimalByTagHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetAnimalByTag(r.Context(), chi.URLParam(r, "tagID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToSnapshot(a))
	}
}

// updateAnimalHandler godoc
// @Summary Actualizar animal
// @Description PATCH parcial; campos ausentes no se tocan. Requiere sesión.
// @Tags livestock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param animalID path string true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos a modificar"
// @Success 200 {object} farmdata.Animal
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [patch]
func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.UpdateAnimal(r.Context(), chi.URLParam(r, "animalID"), UpdateAnimalInput{
			Species:      req.Species,
			Breed:        req.Breed,
			AgeMonths:    req.AgeMonths,
			WeightKg:     req.WeightKg,
			HealthStatus: req.HealthStatus,
			Temperature:  req.Temperature,
			Notes:        req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToSnapshot(a))
	}
}

// listSalesHandler godoc
// @Summary Listar ventas
// @Description Orden por fecha descendente.
// @Tags livestock
// @Produce json
// @Success 200 {array} farmdata.Sale
// @Router /sales [get]
func listSalesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListSales(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, SaleSnapshots(items))
	}
}

// createSaleHandler godoc
// @Summary Registrar venta
// @Description amount obligatorio. Requiere sesión.
// @Tags livestock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param payload body createSaleRequest true "Datos de la venta"
// @Success 201 {object} farmdata.Sale
// @Failure 400 {string} string "invalid json / amount requerido / date inválida"
// @Failure 401 {string} string "unauthorized"
// @Router /sales [post]
func createSaleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var date *time.Time
		if strings.TrimSpace(req.Date) != "" {
			t, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = &t
		}

		s, err := svc.CreateSale(r.Context(), CreateSaleInput{
			Description: req.Description,
			Amount:      req.Amount,
			Quantity:    req.Quantity,
			Date:        date,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, SaleSnapshot(s))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrDuplicateTag):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
