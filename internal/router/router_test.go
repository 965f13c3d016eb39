package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farm-records/internal/platform/config"
	"farm-records/internal/router"
)

func testConfig() config.Config {
	return config.Config{
		Port:              "0",
		SessionSecret:     "test-secret",
		SessionTTL:        time.Hour,
		ReminderThreshold: time.Hour,
		ReminderPoll:      time.Minute,
		LoginRate:         100,
		LoginBurst:        100,
	}
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	h, err := router.NewRouter(context.Background(), router.Options{Config: testConfig()})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_RecordsAndPremiumPayment(t *testing.T) {
	ts := newServer(t)

	// 1) Sin sesión no se puede registrar
	{
		st, _ := doReq(t, ts.URL, "POST", "/records/water", "", map[string]any{"liters": 20})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without session, got %d", st)
		}
	}

	// 2) Login con el usuario sembrado
	token := login(t, ts.URL, "admin", "1234")

	// 3) Registro de agua
	{
		st, body := doReq(t, ts.URL, "POST", "/records/water", token, map[string]any{"liters": 20})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 submit record, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "GET", "/records/water", "", nil)
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if st != http.StatusOK || len(items) != 1 {
			t.Fatalf("expected 1 water record, got %d body=%s", st, string(body))
		}
	}

	// 4) Suscripción premium => pendiente
	{
		st, body := doReq(t, ts.URL, "POST", "/subscriptions", token, map[string]any{
			"name":           "Asha",
			"email":          "asha@example.com",
			"plan":           "premium",
			"payment_method": "gpay",
		})
		if st != http.StatusAccepted {
			t.Fatalf("expected 202 premium subscribe, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "GET", "/payments/pending", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected pending payment, got %d", st)
		}
	}

	// 5) Pago => recibo
	var txID string
	{
		st, body := doReq(t, ts.URL, "POST", "/payments/pending/pay", token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pay, got %d body=%s", st, string(body))
		}
		var rec struct {
			TxID   string  `json:"txId"`
			Amount float64 `json:"amount"`
		}
		_ = json.Unmarshal(body, &rec)
		if len(rec.TxID) != 10 || rec.Amount != 2000 {
			t.Fatalf("unexpected receipt: %s", string(body))
		}
		txID = rec.TxID
	}

	// 6) El pendiente ya no existe y el recibo se encuentra
	{
		st, _ := doReq(t, ts.URL, "GET", "/payments/pending", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after paying, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", "/receipts/"+txID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 receipt lookup, got %d body=%s", st, string(body))
		}
	}

	// 7) Logout invalida el token
	{
		st, _ := doReq(t, ts.URL, "POST", "/auth/logout", token, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 logout, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/auth/me", token, nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 after logout, got %d", st)
		}
	}
}

func TestHTTP_LivestockFeedsDashboard(t *testing.T) {
	ts := newServer(t)
	token := login(t, ts.URL, "admin", "1234")

	for _, a := range []map[string]any{
		{"tag_id": "C-1", "species": "Chicken", "health_status": "healthy", "temperature": 41.0},
		{"tag_id": "G-1", "species": "Goat", "health_status": "sick", "temperature": 39.0},
	} {
		st, body := doReq(t, ts.URL, "POST", "/animals", token, a)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
		}
	}
	st, body := doReq(t, ts.URL, "POST", "/sales", token, map[string]any{"amount": 150.5, "date": "2024-03-01"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create sale, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/dashboard", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
	}
	var dash struct {
		TotalAnimals       int     `json:"total_animals"`
		AverageTemperature float64 `json:"average_temperature"`
		UnhealthyCount     int     `json:"unhealthy_count"`
		SalesTotal         float64 `json:"sales_total"`
	}
	_ = json.Unmarshal(body, &dash)
	if dash.TotalAnimals != 2 || dash.UnhealthyCount != 1 || dash.SalesTotal != 150.5 || dash.AverageTemperature != 40 {
		t.Fatalf("unexpected dashboard: %s", string(body))
	}
}

func TestHTTP_HealthAndReminderStatus(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health: %d %s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/reminders/water", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 reminder status, got %d body=%s", st, string(body))
	}
}

func login(t *testing.T, baseURL, username, password string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/auth/login", "", map[string]any{
		"username": username,
		"password": password,
	})
	if st != http.StatusOK {
		t.Fatalf("login failed: %d body=%s", st, string(body))
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Token == "" {
		t.Fatalf("missing token: %s", string(body))
	}
	return out.Token
}

func doReq(t *testing.T, baseURL, method, path, token string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
