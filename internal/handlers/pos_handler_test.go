package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go-pos-client/internal/middleware"
	"go-pos-client/internal/models"
	"go-pos-client/internal/session"
	"go-pos-client/internal/storage"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func posRouter(t *testing.T) (*gin.Engine, *CartStore) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "client.db"))
	if err != nil {
		t.Fatal(err)
	}
	sessions := session.NewManager(session.NewRepository(store))
	if err := sessions.Establish(models.User{ID: 1, Name: "Amy", Role: models.RoleCashier}); err != nil {
		t.Fatal(err)
	}

	carts := NewCartStore()
	r := gin.New()
	r.Use(middleware.Authenticate(sessions))
	r.GET("/cart", POSCart(carts))
	r.POST("/cart/items", POSAddItem(carts))
	r.PUT("/cart/items/:grnItemsId/quantity", POSSetQuantity(carts))
	r.DELETE("/cart/items/:grnItemsId", POSRemoveItem(carts))
	r.PUT("/cart/invoice", POSAdjustInvoice(carts))
	return r, carts
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cartProduct(qty int) map[string]any {
	return map[string]any{
		"productId":      1,
		"productName":    "Widget",
		"productQty":     qty,
		"productSelling": 100.0,
		"grnItemsId":     7,
	}
}

func TestPOSAddItemAndTotals(t *testing.T) {
	r, _ := posRouter(t)

	for i := 0; i < 2; i++ {
		if w := doJSON(t, r, http.MethodPost, "/cart/items", cartProduct(5)); w.Code != http.StatusOK {
			t.Fatalf("add %d: code = %d body = %s", i+1, w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodPut, "/cart/invoice", map[string]any{"vat": 10.0, "discount": 20.0})
	if w.Code != http.StatusOK {
		t.Fatalf("adjust: code = %d", w.Code)
	}

	var resp struct {
		Totals struct {
			Subtotal   float64 `json:"subtotal"`
			GrandTotal float64 `json:"grandTotal"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Totals.Subtotal != 200 {
		t.Fatalf("subtotal = %v, want 200", resp.Totals.Subtotal)
	}
	// 200 + 10% VAT - 20 invoice discount
	if resp.Totals.GrandTotal != 200 {
		t.Fatalf("grand total = %v, want 200", resp.Totals.GrandTotal)
	}
}

func TestPOSAddItemOutOfStock(t *testing.T) {
	r, _ := posRouter(t)

	if w := doJSON(t, r, http.MethodPost, "/cart/items", cartProduct(1)); w.Code != http.StatusOK {
		t.Fatalf("first add: code = %d", w.Code)
	}
	w := doJSON(t, r, http.MethodPost, "/cart/items", cartProduct(1))
	if w.Code != http.StatusConflict {
		t.Fatalf("second add: code = %d, want 409", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] != "Out of Stock" {
		t.Fatalf("error = %q", resp["error"])
	}
}

func TestPOSSetQuantityZeroRemoves(t *testing.T) {
	r, carts := posRouter(t)

	if w := doJSON(t, r, http.MethodPost, "/cart/items", cartProduct(5)); w.Code != http.StatusOK {
		t.Fatalf("add: code = %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPut, "/cart/items/7/quantity", map[string]any{"quantity": 0}); w.Code != http.StatusOK {
		t.Fatalf("set quantity: code = %d", w.Code)
	}
	if carts.For(1).Len() != 0 {
		t.Fatal("line should be removed at quantity 0")
	}
}

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567.8, "1,234,568"},
		{-45000, "-45,000"},
	}
	for _, tc := range cases {
		if got := formatCount(tc.in); got != tc.want {
			t.Fatalf("formatCount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
