package subscriptions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"farm-records/internal/adapters/storage/memory"
	"farm-records/internal/middleware"
	"farm-records/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func doReq(t *testing.T, h http.Handler, method, path string, body any, withSession bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if withSession {
		req = req.WithContext(middleware.WithSession(context.Background(), auth.Session{ID: "s", Username: "admin"}))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandler_PremiumPayAndDownload(t *testing.T) {
	svc := newTestService(memory.NewKV())
	svc.newID = func() (string, error) { return "TXDOWNLOAD", nil }
	r := chi.NewRouter()
	RegisterRoutes(r, svc)

	body := subscribeRequest{Name: "Ravi", Email: "ravi@farm.in", Plan: "premium", PaymentMethod: "gpay"}

	if rr := doReq(t, r, http.MethodPost, "/subscriptions", body, false); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rr.Code)
	}

	rr := doReq(t, r, http.MethodPost, "/subscriptions", body, true)
	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rr.Code, rr.Body.String())
	}

	if rr := doReq(t, r, http.MethodGet, "/payments/pending", nil, false); rr.Code != http.StatusOK {
		t.Fatalf("expected pending 200, got %d", rr.Code)
	}

	rr = doReq(t, r, http.MethodPost, "/payments/pending/pay", nil, true)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected pay 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doReq(t, r, http.MethodGet, "/receipts/TXDOWNLOAD/download", nil, false)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected download 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="receipt-TXDOWNLOAD.json"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	var rec Receipt
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil || rec.TxID != "TXDOWNLOAD" {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}

	if rr := doReq(t, r, http.MethodGet, "/receipts/TXNOPE000", nil, false); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if rr := doReq(t, r, http.MethodPost, "/payments/pending/pay", nil, true); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with nothing pending, got %d", rr.Code)
	}
}
