package records

import (
	"encoding/json"
	"errors"
	"net/http"

	"farm-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/records", func(rr chi.Router) {
		rr.Get("/features", listFeaturesHandler())
		rr.Get("/{feature}", listRecordsHandler(svc))
		rr.Post("/{feature}", submitRecordHandler(svc))
	})

	r.Route("/medicines", func(mr chi.Router) {
		mr.Get("/", searchMedicinesHandler())
		mr.Get("/symptoms", listSymptomsHandler())
		mr.Get("/dosages", dosageOptionsHandler())
		mr.Get("/suggestions", listSuggestionsHandler(svc))
		mr.Post("/suggestions", suggestMedicineHandler(svc))
	})
}

// suggestMedicineRequest: un medicamento del catálogo aplicado a varios síntomas.
type suggestMedicineRequest struct {
	Symptoms      []string `json:"symptoms"`
	MedicineIndex *int     `json:"medicine_index"`
}

type validationErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// listFeaturesHandler godoc
// @Summary Listar formularios de registro
// @Description Devuelve cada feature con su key de almacenamiento y sus campos (tipo, requerido, opciones sugeridas).
// @Tags records
// @Produce json
// @Success 200 {array} Feature
// @Router /records/features [get]
func listFeaturesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Features())
	}
}

// listRecordsHandler godoc
// @Summary Listar registros de un feature
// @Description Más reciente primero. Un almacenamiento ausente o corrupto devuelve lista vacía.
// @Tags records
// @Produce json
// @Param feature path string true "temperature | feed | water | vaccination | production | suggestions"
// @Success 200 {array} object
// @Failure 404 {string} string "unknown feature"
// @Router /records/{feature} [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), chi.URLParam(r, "feature"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// submitRecordHandler godoc
// @Summary Registrar una entrada
// @Description Valida el formulario y agrega la entrada al frente de la colección. `date` vacío => hoy. Requiere sesión.
// @Tags records
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param feature path string true "Nombre del feature"
// @Param payload body object true "Campos del formulario"
// @Success 201 {array} object
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "unknown feature"
// @Failure 422 {object} validationErrorResponse
// @Router /records/{feature} [post]
func submitRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var in map[string]any
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in == nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		items, err := svc.Submit(r.Context(), chi.URLParam(r, "feature"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, items)
	}
}

// searchMedicinesHandler godoc
// @Summary Buscar en el catálogo de medicamentos
// @Tags medicines
// @Produce json
// @Param symptom query string false "Filtro por síntoma (contains)"
// @Success 200 {array} Medicine
// @Router /medicines [get]
func searchMedicinesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, SearchMedicines(r.URL.Query().Get("symptom")))
	}
}

func listSymptomsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Symptoms())
	}
}

// dosageOptionsHandler godoc
// @Summary Dosis sugeridas para un medicamento
// @Tags medicines
// @Produce json
// @Param medicine query string true "Nombre (contains, case-insensitive)"
// @Success 200 {array} string
// @Router /medicines/dosages [get]
func dosageOptionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, DosageOptions(r.URL.Query().Get("medicine")))
	}
}

func listSuggestionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), FeatureSuggestions)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// suggestMedicineHandler godoc
// @Summary Guardar sugerencias de medicamento
// @Description Una entrada por síntoma, todas en una sola escritura. Requiere sesión.
// @Tags medicines
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param payload body suggestMedicineRequest true "Síntomas + índice del catálogo"
// @Success 201 {array} object
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 422 {object} validationErrorResponse
// @Router /medicines/suggestions [post]
func suggestMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req suggestMedicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.MedicineIndex == nil {
			writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{Error: "required", Field: "medicine_index"})
			return
		}

		items, err := svc.SuggestMedicine(r.Context(), req.Symptoms, *req.MedicineIndex)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, items)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{Error: ve.Reason, Field: ve.Field})
	case errors.Is(err, ErrUnknownFeature):
		http.Error(w, "unknown feature", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
