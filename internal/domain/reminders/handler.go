package reminders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"farm-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, sched *Scheduler) {
	r.Route("/reminders/water", func(rr chi.Router) {
		rr.Get("/", statusHandler(sched))
		rr.Post("/ack", acknowledgeHandler(sched))
	})
}

type ackRequest struct {
	Action string `json:"action" enums:"dismiss,record_now"`
}

type ackResponse struct {
	State State `json:"state"`
	// Next es a dónde ir después de atender (solo record_now).
	Next string `json:"next,omitempty"`
}

// statusHandler godoc
// @Summary Estado del recordatorio de agua
// @Tags reminders
// @Produce json
// @Success 200 {object} Status
// @Router /reminders/water [get]
func statusHandler(sched *Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := sched.Status(r.Context(), time.Now())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// acknowledgeHandler godoc
// @Summary Atender el recordatorio
// @Description dismiss o record_now; vuelve a idle sin mover el último disparo. Requiere sesión.
// @Tags reminders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param payload body ackRequest true "Acción"
// @Success 200 {object} ackResponse
// @Failure 400 {string} string "invalid action"
// @Failure 401 {string} string "unauthorized"
// @Router /reminders/water/ack [post]
func acknowledgeHandler(sched *Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req ackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		action := Action(strings.ToLower(strings.TrimSpace(req.Action)))
		if err := sched.Acknowledge(r.Context(), action); err != nil {
			if errors.Is(err, ErrInvalidAction) {
				http.Error(w, "invalid action", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := ackResponse{State: StateIdle}
		if action == ActionRecordNow {
			resp.Next = "/records/water"
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
