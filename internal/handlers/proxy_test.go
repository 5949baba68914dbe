package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/laundromate/internal/config"
	"github.com/example/laundromate/internal/models"
)

func TestMeMirrorsUnauthorized(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Errorf("upstream path = %q, want /auth/me", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Not authenticated"}`))
	}))
	defer upstream.Close()

	app := newTestApp(upstream.URL)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: config.AccessTokenCookie, Value: "stale"})

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 mirrored", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Not authenticated") {
		t.Errorf("backend body not mirrored: %s", body)
	}
}

func TestMePrefersCookieOverHeader(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"auth":"` + r.Header.Get("Authorization") + `"}`))
	}))
	defer upstream.Close()

	app := newTestApp(upstream.URL)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: config.AccessTokenCookie, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Bearer cookie-token") {
		t.Errorf("cookie token not preferred, upstream saw: %s", body)
	}
}

func TestMeFallsBackToAuthorizationHeader(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"auth":"` + r.Header.Get("Authorization") + `"}`))
	}))
	defer upstream.Close()

	app := newTestApp(upstream.URL)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Bearer header-token") {
		t.Errorf("header token not forwarded, upstream saw: %s", body)
	}
}

func TestUpdateOrderStatusQueryMapping(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("upstream method = %q, want PUT", r.Method)
		}
		if r.URL.Path != "/orders/42/status" {
			t.Errorf("upstream path = %q, want /orders/42/status", r.URL.Path)
		}
		if got := r.URL.Query().Get("status_value"); got != "ready" {
			t.Errorf("status_value = %q, want ready", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"status":"ready"}`))
	}))
	defer upstream.Close()

	app := newTestApp(upstream.URL)
	req := httptest.NewRequest(http.MethodPut, "/api/orders/42/status",
		strings.NewReader(`{"status":"ready"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: config.AccessTokenCookie, Value: "tok123"})

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestUpdateOrderStatusRequiresStatus(t *testing.T) {
	app := newTestApp("http://localhost:1")

	req := httptest.NewRequest(http.MethodPut, "/api/orders/42/status",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	assertErrorJSON(t, resp)
}

// assertErrorJSON checks the uniform failure shape: JSON with a detail field.
func assertErrorJSON(t *testing.T, resp *http.Response) {
	t.Helper()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if payload.Detail == "" {
		t.Error("error body has no detail field")
	}
}

func TestMeBackendUnreachableReturnsJSONError(t *testing.T) {
	app := newTestApp("http://localhost:1")

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: config.AccessTokenCookie, Value: "tok123"})

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
	assertErrorJSON(t, resp)
}

func TestCreateOrderComputesLineTotals(t *testing.T) {
	var forwarded models.OrderCreateRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("upstream path = %q, want /orders", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&forwarded); err != nil {
			t.Errorf("decode forwarded order: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"order_number":"LM-7"}`))
	}))
	defer upstream.Close()

	app := newTestApp(upstream.URL)
	payload := `{
		"customer_id": 3,
		"pickup_address_id": 1,
		"delivery_address_id": 2,
		"pickup_date": "2026-09-01",
		"pickup_time_slot": "09:00-11:00",
		"delivery_date": "2026-09-03",
		"delivery_time_slot": "15:00-17:00",
		"items": [
			{"service_id": 1, "item_name": "Wash & Fold", "item_type": "wash_fold", "quantity": 4, "unit_price": 2.5}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders/", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: config.AccessTokenCookie, Value: "tok123"})

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if len(forwarded.Items) != 1 {
		t.Fatalf("forwarded %d items, want 1", len(forwarded.Items))
	}
	if forwarded.Items[0].TotalPrice != 10 {
		t.Errorf("forwarded total_price = %v, want 10", forwarded.Items[0].TotalPrice)
	}
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	app := newTestApp("http://localhost:1")

	req := httptest.NewRequest(http.MethodPost, "/api/orders/",
		strings.NewReader(`{"customer_id":3,"items":[]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestForwardStripsPrefixAndKeepsQuery(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/addresses" {
			t.Errorf("upstream path = %q, want /addresses", r.URL.Path)
		}
		if got := r.URL.Query().Get("customer_id"); got != "7" {
			t.Errorf("customer_id = %q, want 7", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	app := newTestApp(upstream.URL)
	req := httptest.NewRequest(http.MethodGet, "/api/addresses?customer_id=7", nil)
	req.AddCookie(&http.Cookie{Name: config.AccessTokenCookie, Value: "tok123"})

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestEmptyUpstreamBodyBecomesEmptyObject(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	app := newTestApp(upstream.URL)
	req := httptest.NewRequest(http.MethodGet, "/api/services", nil)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != "{}" {
		t.Errorf("body = %q, want {}", body)
	}
}
