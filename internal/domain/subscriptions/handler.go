package subscriptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"farm-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/subscriptions", func(sr chi.Router) {
		sr.Get("/", listSubscriptionsHandler(svc))
		sr.Post("/", subscribeHandler(svc))
		sr.Post("/{index}/pay", resumePaymentHandler(svc))
	})

	r.Route("/payments/pending", func(pr chi.Router) {
		pr.Get("/", getPendingHandler(svc))
		pr.Delete("/", clearPendingHandler(svc))
		pr.Post("/pay", payHandler(svc))
	})

	r.Get("/receipts/{txID}", getReceiptHandler(svc))
	r.Get("/receipts/{txID}/download", downloadReceiptHandler(svc))
}

type subscribeRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Plan          string `json:"plan" enums:"free,premium"`
	PaymentMethod string `json:"payment_method" enums:"gpay,phonepay,none"`
}

// listSubscriptionsHandler godoc
// @Summary Listar suscriptores
// @Description Más reciente primero. Las filas pagadas incluyen el recibo.
// @Tags subscriptions
// @Produce json
// @Success 200 {array} Subscription
// @Router /subscriptions [get]
func listSubscriptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.List(r.Context()))
	}
}

// subscribeHandler godoc
// @Summary Suscribir
// @Description Plan free se guarda directo (201). Premium deja un pago pendiente de 2000 Rs y responde 202 con payment_required=true. Requiere sesión.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param payload body subscribeRequest true "Datos del suscriptor"
// @Success 201 {object} SubscribeResult
// @Success 202 {object} SubscribeResult
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /subscriptions [post]
func subscribeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req subscribeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Subscribe(r.Context(), SubscribeInput{
			Name:          req.Name,
			Email:         req.Email,
			Plan:          req.Plan,
			PaymentMethod: req.PaymentMethod,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		status := http.StatusCreated
		if res.PaymentRequired {
			status = http.StatusAccepted
		}
		writeJSON(w, status, res)
	}
}

// resumePaymentHandler godoc
// @Summary Retomar pago de una fila premium sin pagar
// @Description Crea el pago pendiente solo si no existe otro; devuelve el pendiente vigente. Requiere sesión.
// @Tags subscriptions
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param index path int true "Posición en la lista (0 = más reciente)"
// @Success 200 {object} PendingPayment
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "subscription is not an unpaid premium plan"
// @Router /subscriptions/{index}/pay [post]
func resumePaymentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		idx, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			http.Error(w, "index must be an integer", http.StatusBadRequest)
			return
		}

		p, err := svc.ResumePayment(r.Context(), idx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// getPendingHandler godoc
// @Summary Ver pago pendiente
// @Tags payments
// @Produce json
// @Success 200 {object} PendingPayment
// @Failure 404 {string} string "no pending payment"
// @Router /payments/pending [get]
func getPendingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Pending(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// clearPendingHandler godoc
// @Summary Cancelar pago pendiente
// @Tags payments
// @Param Authorization header string true "Bearer <token>"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Router /payments/pending [delete]
func clearPendingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if err := svc.ClearPending(r.Context()); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// payHandler godoc
// @Summary Confirmar pago pendiente
// @Description Registra la suscripción pagada con su recibo y borra el pendiente, de forma atómica. Requiere sesión.
// @Tags payments
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Success 200 {object} Receipt
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "no pending payment"
// @Failure 500 {string} string "internal error"
// @Router /payments/pending/pay [post]
func payHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetSession(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rec, err := svc.Pay(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// getReceiptHandler godoc
// @Summary Buscar recibo por transacción
// @Tags payments
// @Produce json
// @Param txID path string true "ID de transacción (TX + 8 chars)"
// @Success 200 {object} Receipt
// @Failure 404 {string} string "receipt not found"
// @Router /receipts/{txID} [get]
func getReceiptHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.Receipt(r.Context(), chi.URLParam(r, "txID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// downloadReceiptHandler godoc
// @Summary Descargar recibo
// @Description JSON indentado como adjunto receipt-<txId>.json.
// @Tags payments
// @Produce json
// @Param txID path string true "ID de transacción"
// @Success 200 {object} Receipt
// @Failure 404 {string} string "receipt not found"
// @Router /receipts/{txID}/download [get]
func downloadReceiptHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.Receipt(r.Context(), chi.URLParam(r, "txID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		b, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="receipt-`+rec.TxID+`.json"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNoPendingPayment):
		http.Error(w, "no pending payment", http.StatusNotFound)
	case errors.Is(err, ErrReceiptNotFound):
		http.Error(w, "receipt not found", http.StatusNotFound)
	case errors.Is(err, ErrNotPayable):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
