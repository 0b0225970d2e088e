package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/database"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/notify"
	"github.com/yeremiapane/qrmenu-app/router"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/testutil"
	"github.com/yeremiapane/qrmenu-app/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger("error")
	utils.SetJWTSecret("integration_secret", time.Hour)
	os.Exit(m.Run())
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// TestEndToEndIntegration walks one table through a full service:
// 0. seed admin and login -> token
// 1. create table M1
// 2. two customer orders on M1 -> table closed
// 3. approve the first, approve the second -> merged
// 4. mark paid -> table open, orders gone, sale of 220 recorded today
func TestEndToEndIntegration(t *testing.T) {
	r, db := setupTestRouter(t)
	token := loginTest(t, r)

	call(t, r, http.MethodPost, "/tables", token, gin.H{"code": "M1"}, http.StatusCreated)

	orderA := createOrderTest(t, r)
	assertTableStatus(t, r, "M1", models.TableStatusClosed)
	orderB := createOrderTest(t, r)

	approveTest(t, r, token, orderA, false)
	approveTest(t, r, token, orderB, true)

	payTest(t, r, token, orderA)

	assertTableStatus(t, r, "M1", models.TableStatusOpen)
	var remaining int64
	db.Model(&models.Order{}).Where("table_code = ?", "M1").Count(&remaining)
	if remaining != 0 {
		t.Fatalf("expected all M1 orders to be removed, %d left", remaining)
	}

	salesTest(t, r, token, 220)
}

func TestStaffRoutesRequireToken(t *testing.T) {
	r, _ := setupTestRouter(t)

	call(t, r, http.MethodGet, "/orders", "", nil, http.StatusUnauthorized)
	call(t, r, http.MethodGet, "/accounting/daily-sales", "not-a-token", nil, http.StatusUnauthorized)
	call(t, r, http.MethodGet, "/tables", "", nil, http.StatusOK)
}

func TestWaiterCallFollowsVenuePreference(t *testing.T) {
	r, _ := setupTestRouter(t)
	token := loginTest(t, r)

	call(t, r, http.MethodPost, "/waiter-calls", "", gin.H{"table_code": "M1"}, http.StatusCreated)
	call(t, r, http.MethodPatch, "/preferences", token, gin.H{"waiter_system_enabled": false}, http.StatusOK)
	call(t, r, http.MethodPost, "/waiter-calls", "", gin.H{"table_code": "M1"}, http.StatusForbidden)
}

// setupTestRouter -> in-memory db, seeded admin, full router
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := testutil.NewDB(t)
	if err := database.SeedAdmin(db, "admin@example.com", "secret123"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	hub := notify.NewHub()
	prefs := services.NewPreferenceService(db)
	prefs.Sound = hub
	tables := services.NewTableRegistry(db, hub)
	ledger := services.NewLedgerService(db, hub)
	orders := services.NewOrderService(db, tables, ledger, hub)

	r := router.SetupRouter(router.Dependencies{
		DB:             db,
		Hub:            hub,
		Tables:         tables,
		Orders:         orders,
		Reservations:   services.NewReservationService(db),
		Ledger:         ledger,
		Prefs:          prefs,
		Campaigns:      services.NewCampaignService(db),
		Location:       time.Local,
		CORSOrigins:    []string{"http://localhost:3000"},
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	})
	return r, db
}

func call(t *testing.T, r *gin.Engine, method, path, token string, body interface{}, want int) envelope {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != want {
		t.Fatalf("%s %s: expected %d, got %d, body=%s", method, path, want, w.Code, w.Body.String())
	}

	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: invalid json: %v", method, path, err)
	}
	return resp
}

func loginTest(t *testing.T, r *gin.Engine) string {
	resp := call(t, r, http.MethodPost, "/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "secret123",
	}, http.StatusOK)

	var data struct {
		Token string `json:"token"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.Token == "" {
		t.Fatalf("loginTest: token empty")
	}
	return data.Token
}

// createOrderTest -> POST /orders (no token) => pending order of 110
func createOrderTest(t *testing.T, r *gin.Engine) uint {
	resp := call(t, r, http.MethodPost, "/orders", "", gin.H{
		"table_code": "M1",
		"items": []gin.H{
			{"id": "kebab", "name": "Adana Kebab", "quantity": 2, "price": 50},
		},
	}, http.StatusCreated)

	var order models.Order
	json.Unmarshal(resp.Data, &order)
	if order.Status != models.OrderStatusPending {
		t.Fatalf("createOrderTest: expected pending, got %s", order.Status)
	}
	if order.Total != 110 {
		t.Fatalf("createOrderTest: expected total 110, got %v", order.Total)
	}
	return order.ID
}

func approveTest(t *testing.T, r *gin.Engine, token string, orderID uint, wantMerged bool) {
	resp := call(t, r, http.MethodPatch, "/orders/"+strconv.Itoa(int(orderID)), token,
		gin.H{"action": "approve"}, http.StatusOK)

	var res services.ApproveResult
	json.Unmarshal(resp.Data, &res)
	if res.Merged != wantMerged {
		t.Fatalf("approveTest: order %d merged=%v, want %v", orderID, res.Merged, wantMerged)
	}
}

func payTest(t *testing.T, r *gin.Engine, token string, orderID uint) {
	resp := call(t, r, http.MethodPatch, "/orders/"+strconv.Itoa(int(orderID)), token,
		gin.H{"status": "paid"}, http.StatusOK)

	var res services.PaymentResult
	json.Unmarshal(resp.Data, &res)
	if res.Order == nil || res.Order.Total != 220 {
		t.Fatalf("payTest: expected paid total 220, got %+v", res.Order)
	}
}

func assertTableStatus(t *testing.T, r *gin.Engine, code, want string) {
	t.Helper()
	resp := call(t, r, http.MethodGet, "/tables", "", nil, http.StatusOK)

	var tables []models.Table
	json.Unmarshal(resp.Data, &tables)
	for _, tb := range tables {
		if tb.Code == code {
			if tb.Status != want {
				t.Fatalf("table %s: expected %s, got %s", code, want, tb.Status)
			}
			return
		}
	}
	t.Fatalf("table %s not found", code)
}

func salesTest(t *testing.T, r *gin.Engine, token string, wantTotal float64) {
	resp := call(t, r, http.MethodGet, "/accounting/daily-sales", token, nil, http.StatusOK)

	var days []services.DaySummary
	json.Unmarshal(resp.Data, &days)
	if len(days) != 1 {
		t.Fatalf("salesTest: expected 1 day, got %d", len(days))
	}
	if days[0].Date != time.Now().Format("2006-01-02") {
		t.Fatalf("salesTest: expected today, got %s", days[0].Date)
	}
	if days[0].TotalRevenue != wantTotal {
		t.Fatalf("salesTest: expected revenue %v, got %v", wantTotal, days[0].TotalRevenue)
	}
}
