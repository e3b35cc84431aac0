package cart

import (
	"errors"
	"sync"

	"go-pos-client/internal/models"
)

var (
	// ErrOutOfStock signals a quantity that would exceed the batch's stock.
	ErrOutOfStock = errors.New("out of stock")
	// ErrEmptyCart signals a submit with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// Totals is the computed bottom half of the invoice panel.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	VatAmount      float64 `json:"vatAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	GrandTotal     float64 `json:"grandTotal"`
}

// Cart is the working set of invoice lines at the point of sale. Lines are
// keyed by receiving batch (grnItemsId): the same product from two batches is
// two lines. Nothing here touches the network; Submit does.
type Cart struct {
	mu             sync.Mutex
	lines          []models.CartItem
	vatPercent     float64
	discountAmount float64
}

func New() *Cart {
	return &Cart{}
}

// AddItem puts one unit of the product's batch into the cart. An existing
// line for the batch is incremented instead. Exceeding the batch's available
// quantity, or adding a batch with nothing in stock, is rejected.
func (c *Cart) AddItem(p models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	available := p.AvailableQty()

	for i := range c.lines {
		if c.lines[i].GrnItemsID != p.GrnItemsID {
			continue
		}
		if c.lines[i].Quantity+1 > c.lines[i].AvailableQty {
			return ErrOutOfStock
		}
		c.lines[i].Quantity++
		c.lines[i].Total = (c.lines[i].SellingPrice - c.lines[i].Discount) * float64(c.lines[i].Quantity)
		return nil
	}

	if available <= 0 {
		return ErrOutOfStock
	}

	price := p.UnitPrice()
	c.lines = append(c.lines, models.CartItem{
		GrnItemsID:    p.GrnItemsID,
		ProductID:     p.ProductID,
		ProductName:   p.ProductName,
		ProductNumber: p.ProductNumber,
		Quantity:      1,
		SellingPrice:  price,
		Discount:      0,
		Total:         price,
		AvailableQty:  available,
	})
	return nil
}

// SetQuantity changes a line's quantity. Zero or less removes the line;
// more than the batch has in stock leaves the cart unchanged and reports
// ErrOutOfStock.
func (c *Cart) SetQuantity(grnItemsID, qty int) error {
	if qty <= 0 {
		c.Remove(grnItemsID)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].GrnItemsID != grnItemsID {
			continue
		}
		if qty > c.lines[i].AvailableQty {
			return ErrOutOfStock
		}
		c.lines[i].Quantity = qty
		c.lines[i].Total = (c.lines[i].SellingPrice - c.lines[i].Discount) * float64(qty)
		return nil
	}
	return nil
}

// SetDiscount applies a per-line discount, clamped to [0, unit price].
func (c *Cart) SetDiscount(grnItemsID int, discount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].GrnItemsID != grnItemsID {
			continue
		}
		if discount < 0 {
			discount = 0
		}
		if discount > c.lines[i].SellingPrice {
			discount = c.lines[i].SellingPrice
		}
		c.lines[i].Discount = discount
		c.lines[i].Total = (c.lines[i].SellingPrice - discount) * float64(c.lines[i].Quantity)
		return
	}
}

// Remove deletes the line for the batch. Unknown batches are a no-op.
func (c *Cart) Remove(grnItemsID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.GrnItemsID != grnItemsID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// SetVatPercent sets the invoice VAT percentage, never below zero.
func (c *Cart) SetVatPercent(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v < 0 {
		v = 0
	}
	c.vatPercent = v
}

// SetDiscountAmount sets the invoice-level discount, never below zero.
func (c *Cart) SetDiscountAmount(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v < 0 {
		v = 0
	}
	c.discountAmount = v
}

func (c *Cart) VatPercent() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vatPercent
}

func (c *Cart) DiscountAmount() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.discountAmount
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Totals computes subtotal, VAT and grand total. A discount larger than the
// rest of the invoice clamps the grand total to zero rather than going
// negative.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	var subtotal float64
	for _, line := range c.lines {
		subtotal += line.Total
	}
	vatAmount := subtotal * c.vatPercent / 100
	grandTotal := subtotal + vatAmount - c.discountAmount
	if grandTotal < 0 {
		grandTotal = 0
	}

	return Totals{
		Subtotal:       subtotal,
		VatAmount:      vatAmount,
		DiscountAmount: c.discountAmount,
		GrandTotal:     grandTotal,
	}
}

// Clear empties the cart and resets VAT and discount for the next sale.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.vatPercent = 0
	c.discountAmount = 0
}
