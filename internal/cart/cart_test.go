package cart

import (
	"errors"
	"testing"

	"go-pos-client/internal/models"
)

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func testProduct(grnItemsID, qty int, selling float64) models.Product {
	return models.Product{
		ProductID:      1,
		ProductName:    "Test Product",
		ProductNumber:  "P-001",
		ProductQty:     intp(qty),
		ProductSelling: selling,
		GrnItemsID:     grnItemsID,
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	c := New()
	p := testProduct(7, 5, 100)

	for i := 0; i < 5; i++ {
		if err := c.AddItem(p); err != nil {
			t.Fatalf("add %d: %v", i+1, err)
		}
	}
	if c.Len() != 1 {
		t.Fatalf("expected a single line, got %d", c.Len())
	}
	line := c.Lines()[0]
	if line.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", line.Quantity)
	}
	if line.Total != 500 {
		t.Fatalf("line total = %v, want 500", line.Total)
	}

	// The sixth unit exceeds stock.
	if err := c.AddItem(p); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if got := c.Lines()[0].Quantity; got != 5 {
		t.Fatalf("quantity after rejected add = %d, want 5", got)
	}
}

func TestAddItemZeroStockRejected(t *testing.T) {
	c := New()
	if err := c.AddItem(testProduct(1, 0, 100)); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("cart should stay empty, got %d lines", c.Len())
	}
}

func TestAddItemPrefersBatchPrice(t *testing.T) {
	c := New()
	p := testProduct(3, 2, 100)
	p.LatestPrice = floatp(120)

	if err := c.AddItem(p); err != nil {
		t.Fatal(err)
	}
	if got := c.Lines()[0].SellingPrice; got != 120 {
		t.Fatalf("selling price = %v, want the batch price 120", got)
	}
}

func TestSetQuantity(t *testing.T) {
	c := New()
	p := testProduct(4, 5, 100)
	if err := c.AddItem(p); err != nil {
		t.Fatal(err)
	}

	if err := c.SetQuantity(4, 3); err != nil {
		t.Fatal(err)
	}
	if got := c.Lines()[0].Total; got != 300 {
		t.Fatalf("total = %v, want 300", got)
	}

	if err := c.SetQuantity(4, 6); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if got := c.Lines()[0].Quantity; got != 3 {
		t.Fatalf("quantity after rejected set = %d, want 3", got)
	}

	// Zero removes the line.
	if err := c.SetQuantity(4, 0); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cart, got %d lines", c.Len())
	}
}

func TestSetDiscountClamps(t *testing.T) {
	c := New()
	if err := c.AddItem(testProduct(9, 5, 100)); err != nil {
		t.Fatal(err)
	}
	if err := c.SetQuantity(9, 2); err != nil {
		t.Fatal(err)
	}

	c.SetDiscount(9, 30)
	if got := c.Lines()[0].Total; got != 140 {
		t.Fatalf("total with discount = %v, want 140", got)
	}

	// Above the unit price clamps to the unit price, the line goes free.
	c.SetDiscount(9, 500)
	if got := c.Lines()[0].Total; got != 0 {
		t.Fatalf("total with oversized discount = %v, want 0", got)
	}

	c.SetDiscount(9, -10)
	if got := c.Lines()[0].Total; got != 200 {
		t.Fatalf("total with negative discount = %v, want 200", got)
	}
}

func TestTotals(t *testing.T) {
	c := New()
	if err := c.AddItem(testProduct(1, 10, 100)); err != nil {
		t.Fatal(err)
	}
	if err := c.SetQuantity(1, 5); err != nil {
		t.Fatal(err)
	}

	c.SetVatPercent(10)
	c.SetDiscountAmount(50)

	totals := c.Totals()
	if totals.Subtotal != 500 {
		t.Fatalf("subtotal = %v, want 500", totals.Subtotal)
	}
	if totals.VatAmount != 50 {
		t.Fatalf("vat = %v, want 50", totals.VatAmount)
	}
	if totals.GrandTotal != 500 {
		t.Fatalf("grand total = %v, want 500", totals.GrandTotal)
	}
}

func TestTotalsClampToZero(t *testing.T) {
	c := New()
	if err := c.AddItem(testProduct(1, 10, 100)); err != nil {
		t.Fatal(err)
	}
	c.SetDiscountAmount(10000)

	if got := c.Totals().GrandTotal; got != 0 {
		t.Fatalf("grand total = %v, want 0", got)
	}
}

func TestClearResetsAdjustments(t *testing.T) {
	c := New()
	if err := c.AddItem(testProduct(1, 10, 100)); err != nil {
		t.Fatal(err)
	}
	c.SetVatPercent(15)
	c.SetDiscountAmount(20)

	c.Clear()
	if c.Len() != 0 || c.VatPercent() != 0 || c.DiscountAmount() != 0 {
		t.Fatal("clear should empty the cart and reset vat and discount")
	}
}

func TestTwoBatchesOfSameProductAreTwoLines(t *testing.T) {
	c := New()
	a := testProduct(1, 5, 100)
	b := testProduct(2, 5, 110)
	b.ProductID = a.ProductID

	if err := c.AddItem(a); err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(b); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", c.Len())
	}
}
