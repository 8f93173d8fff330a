package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/supply-manager/config"
	"github.com/tair/supply-manager/internal/app"
	"github.com/tair/supply-manager/internal/testutil"
	usercommand "github.com/tair/supply-manager/internal/user/usecase/command"
	"github.com/tair/supply-manager/kafka"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/httpx"
	"github.com/tair/supply-manager/pkg/metrics"
	"github.com/tair/supply-manager/pkg/month"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type client struct {
	t      *testing.T
	router *mux.Router
}

func (c client) do(method, path, token string, body interface{}) (int, envelope) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		c.t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func (c client) expect(status int, method, path, token string, body interface{}, out interface{}) {
	c.t.Helper()
	code, env := c.do(method, path, token, body)
	if code != status {
		c.t.Fatalf("%s %s: status %d (%s), want %d", method, path, code, env.Error, status)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
}

func (c client) login(username, password string) string {
	c.t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	c.expect(http.StatusOK, "POST", "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	return resp.Token
}

func newClient(t *testing.T) client {
	t.Helper()
	auth.Configure("app-test-secret", time.Hour)

	db := testutil.NewDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	cfg := &config.Config{
		Redis: config.RedisConfig{
			LoginMaxRequests: 10,
			LoginWindow:      time.Minute,
			SummaryTTL:       time.Minute,
		},
	}

	server, err := app.InitializeServer(db, testutil.NewSqlx(t, db), sqlDB, nil,
		kafka.NopPublisher{}, metrics.New(prometheus.NewRegistry()), cfg)
	if err != nil {
		t.Fatalf("InitializeServer: %v", err)
	}
	if _, err := server.SeedAdmin.Handle(context.Background(), usercommand.SeedAdminCommand{
		Username: "admin",
		Password: "admin123",
	}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	router := server.Router(app.RouterOptions{
		Middleware: httpx.DefaultMiddlewareConfig([]string{"*"}, 0),
	})
	return client{t: t, router: router}
}

func TestLoginFailures(t *testing.T) {
	c := newClient(t)

	code, _ := c.do("POST", "/auth/login", "", map[string]string{"username": "admin", "password": "wrong-password"})
	if code != http.StatusUnauthorized {
		t.Fatalf("wrong password: status %d, want 401", code)
	}
	code, _ = c.do("POST", "/auth/login", "", map[string]string{"username": "nobody", "password": "admin123"})
	if code != http.StatusUnauthorized {
		t.Fatalf("unknown user: status %d, want 401", code)
	}
	code, _ = c.do("GET", "/users/me", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("no token: status %d, want 401", code)
	}
}

func TestStockRequestRoundTrip(t *testing.T) {
	c := newClient(t)
	adminToken := c.login("admin", "admin123")

	for _, u := range []map[string]string{
		{"username": "mrs.k", "password": "secret1", "full_name": "Mrs K", "role": "staff"},
		{"username": "sam", "password": "secret2", "full_name": "Sam", "role": "student"},
	} {
		c.expect(http.StatusCreated, "POST", "/admin/users", adminToken, u, nil)
	}
	staffToken := c.login("mrs.k", "secret1")
	studentToken := c.login("sam", "secret2")

	supply := map[string]interface{}{
		"name":         "Pencil",
		"category":     "Writing",
		"quantity":     12,
		"price":        "0.50",
		"min_quantity": 5,
	}
	if code, _ := c.do("POST", "/api/supplies", studentToken, supply); code != http.StatusForbidden {
		t.Fatalf("student add: status %d, want 403", code)
	}

	var item struct {
		ID       uint   `json:"id"`
		SKU      string `json:"sku"`
		Quantity int    `json:"quantity"`
	}
	c.expect(http.StatusCreated, "POST", "/api/supplies", staffToken, supply, &item)
	if item.SKU != "PEN-0012" {
		t.Fatalf("sku = %q, want PEN-0012", item.SKU)
	}

	var req struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	c.expect(http.StatusCreated, "POST", "/api/requests", studentToken, map[string]interface{}{
		"item_id":  item.ID,
		"quantity": 8,
		"reason":   "art class",
	}, &req)

	if code, _ := c.do("POST", fmt.Sprintf("/api/requests/%d/approve", req.ID), staffToken, nil); code != http.StatusForbidden {
		t.Fatalf("staff approve: status %d, want 403", code)
	}
	c.expect(http.StatusOK, "POST", fmt.Sprintf("/api/requests/%d/approve", req.ID), adminToken, nil, nil)
	if code, _ := c.do("POST", fmt.Sprintf("/api/requests/%d/approve", req.ID), adminToken, nil); code != http.StatusConflict {
		t.Fatalf("second approve: status %d, want 409", code)
	}

	c.expect(http.StatusOK, "GET", fmt.Sprintf("/api/supplies/%d", item.ID), studentToken, nil, &item)
	if item.Quantity != 4 {
		t.Fatalf("quantity after approval = %d, want 4", item.Quantity)
	}

	c.expect(http.StatusOK, "POST", fmt.Sprintf("/api/requests/%d/receive", req.ID), studentToken, nil, &req)
	if req.Status != "received" {
		t.Fatalf("status = %q, want received", req.Status)
	}

	var shopping []struct {
		Shortfall int `json:"shortfall"`
	}
	c.expect(http.StatusOK, "GET", "/api/supplies/shopping-list", staffToken, nil, &shopping)
	if len(shopping) != 1 || shopping[0].Shortfall != 1 {
		t.Fatalf("shopping list = %+v", shopping)
	}

	current := month.Current().String()
	if code, _ := c.do("POST", "/api/reports/"+current+"/generate", staffToken, nil); code != http.StatusForbidden {
		t.Fatalf("staff generate: status %d, want 403", code)
	}
	c.expect(http.StatusOK, "POST", "/api/reports/"+current+"/generate", adminToken, nil, nil)

	var lines []struct {
		Name         string `json:"name"`
		TotalIn      int    `json:"total_in"`
		TotalOut     int    `json:"total_out"`
		CurrentStock int    `json:"current_stock"`
	}
	c.expect(http.StatusOK, "GET", "/api/reports/"+current, studentToken, nil, &lines)
	if len(lines) != 1 {
		t.Fatalf("report lines = %+v", lines)
	}
	if l := lines[0]; l.Name != "Pencil" || l.TotalIn != 12 || l.TotalOut != 8 || l.CurrentStock != 4 {
		t.Fatalf("report line = %+v", l)
	}

	var summary struct {
		TotalUnits    int64 `json:"total_units"`
		LowStockCount int64 `json:"low_stock_count"`
	}
	c.expect(http.StatusOK, "GET", "/api/reports/"+current+"/summary", studentToken, nil, &summary)
	if summary.TotalUnits != 4 || summary.LowStockCount != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	if code, _ := c.do("GET", "/api/reports/2024-13", adminToken, nil); code != http.StatusBadRequest {
		t.Fatalf("bad month: status %d, want 400", code)
	}
}

func TestRecordTransactionOverHTTP(t *testing.T) {
	c := newClient(t)
	adminToken := c.login("admin", "admin123")

	var item struct {
		ID uint `json:"id"`
	}
	c.expect(http.StatusCreated, "POST", "/api/supplies", adminToken, map[string]interface{}{
		"name":     "Eraser",
		"quantity": 3,
		"price":    1,
	}, &item)

	path := fmt.Sprintf("/api/supplies/%d/transactions", item.ID)
	if code, env := c.do("POST", path, adminToken, map[string]interface{}{"type": "out", "quantity": 4}); code != http.StatusConflict {
		t.Fatalf("overdraw: status %d (%s), want 409", code, env.Error)
	}
	if code, _ := c.do("POST", path, adminToken, map[string]interface{}{"type": "sideways", "quantity": 1}); code != http.StatusBadRequest {
		t.Fatalf("bad type: status %d, want 400", code)
	}
	c.expect(http.StatusCreated, "POST", path, adminToken, map[string]interface{}{"type": "in", "quantity": 10}, nil)

	var page struct {
		Total int64 `json:"total"`
	}
	c.expect(http.StatusOK, "GET", fmt.Sprintf("/api/transactions?item_id=%d", item.ID), adminToken, nil, &page)
	// initial stock plus the IN movement
	if page.Total != 2 {
		t.Fatalf("transactions = %d, want 2", page.Total)
	}
}

func TestHealthEndpoint(t *testing.T) {
	c := newClient(t)
	c.expect(http.StatusOK, "GET", "/health", "", nil, nil)
}

func TestRevokedAccountLosesAccessImmediately(t *testing.T) {
	c := newClient(t)
	adminToken := c.login("admin", "admin123")

	var user struct {
		ID uint `json:"id"`
	}
	c.expect(http.StatusCreated, "POST", "/admin/users", adminToken, map[string]string{
		"username": "clerk", "password": "secret1", "full_name": "Clerk", "role": "staff",
	}, &user)
	token := c.login("clerk", "secret1")

	supply := map[string]interface{}{"name": "Stapler", "quantity": 2, "price": "4.00"}
	c.expect(http.StatusCreated, "POST", "/api/supplies", token, supply, nil)

	c.expect(http.StatusOK, "PUT", fmt.Sprintf("/admin/users/%d/role", user.ID), adminToken, map[string]string{"role": "student"}, nil)
	if code, _ := c.do("POST", "/api/supplies", token, supply); code != http.StatusForbidden {
		t.Fatalf("demoted user add: status %d, want 403", code)
	}
	c.expect(http.StatusOK, "GET", "/api/supplies", token, nil, nil)

	c.expect(http.StatusOK, "PUT", fmt.Sprintf("/admin/users/%d/active", user.ID), adminToken, map[string]bool{"is_active": false}, nil)
	if code, _ := c.do("GET", "/api/supplies", token, nil); code != http.StatusUnauthorized {
		t.Fatalf("deactivated user: status %d, want 401", code)
	}

	c.expect(http.StatusOK, "PUT", fmt.Sprintf("/admin/users/%d/active", user.ID), adminToken, map[string]bool{"is_active": true}, nil)
	c.expect(http.StatusOK, "DELETE", fmt.Sprintf("/admin/users/%d", user.ID), adminToken, nil, nil)
	if code, _ := c.do("GET", "/users/me", token, nil); code != http.StatusUnauthorized {
		t.Fatalf("deleted user: status %d, want 401", code)
	}
}
