package orderControllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	authControllers "github.com/Anuragpraj/Ecommerce-Backend/controllers/auth"
	"github.com/Anuragpraj/Ecommerce-Backend/models"
	"github.com/Anuragpraj/Ecommerce-Backend/routes"
)

const testAPIKey = "test-admin-key"

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_API_KEY", testAPIKey)
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	routes.SetupRoutes(r, db)
	return r, db
}

func createUser(t *testing.T, db *gorm.DB, username, email string) (models.User, map[string]string) {
	t.Helper()
	user := models.User{Username: username, Email: email, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := authControllers.CreateToken(user.ID)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return user, map[string]string{"Authorization": "Bearer " + token}
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, Description: name + " description", Price: decimal.NewFromFloat(price), Category: "Test"}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

// Pen at 2.00, three in the cart: cart total 6.00, order total 6.00,
// and the cart survives checkout with zero lines.
func TestPlaceOrderScenario(t *testing.T) {
	r, db := setupRouter(t)
	user, headers := createUser(t, db, "alice", "alice@example.com")
	pen := createProduct(t, db, "Pen", 2.00)

	doRequest(t, r, http.MethodPost, "/cart/add", gin.H{"product_id": pen.ID, "quantity": 3}, headers)

	w := doRequest(t, r, http.MethodGet, "/cart", nil, headers)
	if total := decodeBody(t, w)["total_amount"]; total != 6.0 {
		t.Fatalf("cart total = %v, want 6", total)
	}

	w = doRequest(t, r, http.MethodPost, "/placeorder", gin.H{"shipping_address": "123 Main St"}, headers)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["total_amount"] != 6.0 {
		t.Fatalf("order total = %v, want 6", body["total_amount"])
	}
	if body["order_id"] == nil {
		t.Fatal("response missing order_id")
	}

	var order models.Order
	if err := db.Preload("Items").Where("user_id = ?", user.ID).First(&order).Error; err != nil {
		t.Fatalf("order not stored: %v", err)
	}
	if order.Status != models.OrderStatusProcessing {
		t.Fatalf("status = %s, want Processing", order.Status)
	}
	if order.ShippingAddress != "123 Main St" {
		t.Fatalf("shipping address = %q", order.ShippingAddress)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 3 || !order.Items[0].Price.Equal(decimal.NewFromFloat(2.00)) {
		t.Fatalf("order items = %+v", order.Items)
	}

	// Cart is emptied, not deleted
	var cartCount, lineCount int64
	db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&cartCount)
	db.Model(&models.CartItem{}).Count(&lineCount)
	if cartCount != 1 || lineCount != 0 {
		t.Fatalf("carts = %d (want 1), lines = %d (want 0)", cartCount, lineCount)
	}
}

// A later catalog price change must not rewrite stored order history.
func TestOrderSnapshotSurvivesPriceChange(t *testing.T) {
	r, db := setupRouter(t)
	_, headers := createUser(t, db, "alice", "alice@example.com")
	pen := createProduct(t, db, "Pen", 2.00)

	doRequest(t, r, http.MethodPost, "/cart/add", gin.H{"product_id": pen.ID, "quantity": 3}, headers)
	w := doRequest(t, r, http.MethodPost, "/placeorder", gin.H{"shipping_address": "123 Main St"}, headers)
	if w.Code != http.StatusOK {
		t.Fatalf("placeorder: status = %d", w.Code)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", pen.ID).
		Update("price", decimal.NewFromFloat(5.00)).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}

	var item models.OrderItem
	if err := db.Where("product_id = ?", pen.ID).First(&item).Error; err != nil {
		t.Fatalf("order item missing: %v", err)
	}
	if !item.Price.Equal(decimal.NewFromFloat(2.00)) {
		t.Fatalf("snapshotted price = %s, want 2", item.Price)
	}

	// The order endpoint reports the snapshotted figures too
	w = doRequest(t, r, http.MethodGet, "/orders/customer/1", nil, map[string]string{"X-API-KEY": testAPIKey})
	if w.Code != http.StatusOK {
		t.Fatalf("orders by customer: status = %d", w.Code)
	}
	orders := decodeBody(t, w)["orders"].([]any)
	items := orders[0].(map[string]any)["items"].([]any)
	line := items[0].(map[string]any)
	if line["price"] != 2.0 || line["total_price"] != 6.0 {
		t.Fatalf("reported line = %v", line)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	r, db := setupRouter(t)
	user, headers := createUser(t, db, "alice", "alice@example.com")

	// No cart at all
	w := doRequest(t, r, http.MethodPost, "/placeorder", gin.H{"shipping_address": "123 Main St"}, headers)
	if w.Code != http.StatusNotFound {
		t.Fatalf("no cart: status = %d, want 404", w.Code)
	}

	// Cart exists but has zero lines
	db.Create(&models.Cart{UserID: user.ID})
	w = doRequest(t, r, http.MethodPost, "/placeorder", gin.H{"shipping_address": "123 Main St"}, headers)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty cart: status = %d, want 400", w.Code)
	}

	// Missing address
	w = doRequest(t, r, http.MethodPost, "/placeorder", gin.H{}, headers)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing address: status = %d, want 400", w.Code)
	}

	// None of the failures may leave partial order rows behind
	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	if orders != 0 || items != 0 {
		t.Fatalf("partial rows created: orders=%d items=%d", orders, items)
	}
}

func TestGetAllOrders(t *testing.T) {
	r, db := setupRouter(t)
	_, headers := createUser(t, db, "alice", "alice@example.com")
	pen := createProduct(t, db, "Pen", 2.00)

	doRequest(t, r, http.MethodPost, "/cart/add", gin.H{"product_id": pen.ID, "quantity": 2}, headers)
	doRequest(t, r, http.MethodPost, "/placeorder", gin.H{"shipping_address": "123 Main St"}, headers)

	w := doRequest(t, r, http.MethodGet, "/getallorders", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("without key: status = %d, want 401", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/getallorders", nil, map[string]string{"X-API-KEY": testAPIKey})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}
	orders := decodeBody(t, w)["orders"].([]any)
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	entry := orders[0].(map[string]any)
	if entry["customer"] != "alice" || entry["status"] != "Processing" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestGetOrdersByCustomerErrors(t *testing.T) {
	r, db := setupRouter(t)
	createUser(t, db, "alice", "alice@example.com")
	adminHeaders := map[string]string{"X-API-KEY": testAPIKey}

	w := doRequest(t, r, http.MethodGet, "/orders/customer/999", nil, adminHeaders)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown customer: status = %d, want 404", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "Customer not found" {
		t.Fatalf("error = %v", msg)
	}

	w = doRequest(t, r, http.MethodGet, "/orders/customer/1", nil, adminHeaders)
	if w.Code != http.StatusNotFound {
		t.Fatalf("zero orders: status = %d, want 404", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "No orders found for this customer" {
		t.Fatalf("error = %v", msg)
	}
}
