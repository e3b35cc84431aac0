package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"go-pos-client/internal/cart"
	"go-pos-client/internal/gateway"
	"go-pos-client/internal/middleware"
	"go-pos-client/internal/models"
	"go-pos-client/internal/schemas"

	"github.com/gin-gonic/gin"
)

// CartStore keeps one working cart per logged-in operator. The cart is pure
// client state: it only reaches the backend at checkout.
type CartStore struct {
	mu    sync.Mutex
	carts map[int]*cart.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: map[int]*cart.Cart{}}
}

// For returns the operator's cart, creating it on first use.
func (s *CartStore) For(userID int) *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[userID]; ok {
		return c
	}
	c := cart.New()
	s.carts[userID] = c
	return c
}

func currentCart(c *gin.Context, carts *CartStore) *cart.Cart {
	user := middleware.CurrentUser(c)
	if user == nil {
		// RequireRoles guards these routes, so this is belt and braces.
		return carts.For(0)
	}
	return carts.For(user.ID)
}

// POSSearchProducts is the quick search box: every priced batch matching the
// term. An empty term renders an empty result list, no request fired.
func POSSearchProducts(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := c.Query("q")
		if term == "" {
			c.JSON(http.StatusOK, gin.H{"data": []models.Product{}})
			return
		}
		products := gw.QuickSearchProducts(c.Request.Context(), term)
		if products == nil {
			products = []models.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

// POSLatestPrice looks up the newest batch price for a product number, the
// price the cart would charge right now.
func POSLatestPrice(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		productNumber := c.Query("productNumber")
		if productNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productNumber is required"})
			return
		}
		price := gw.LatestPrice(c.Request.Context(), productNumber)
		c.JSON(http.StatusOK, gin.H{"productNumber": productNumber, "latestPrice": price})
	}
}

// POSSearchCustomers finds customers for the checkout panel.
func POSSearchCustomers(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := c.Query("q")
		if term == "" {
			c.JSON(http.StatusOK, gin.H{"data": []models.Customer{}})
			return
		}
		page := gw.SearchCustomers(c.Request.Context(), term, gateway.ListQuery{Paginate: true, Page: 1, PerPage: 10})
		c.JSON(http.StatusOK, gin.H{"data": page.Data})
	}
}

// POSAddCustomer creates a customer without leaving the checkout screen.
func POSAddCustomer(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form schemas.CustomerForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		res := gw.CreateCustomer(c.Request.Context(), customerParams(form))
		if !res.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to add customer")})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// POSCart renders the cart lines with the running totals.
func POSCart(carts *CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		workingCart := currentCart(c, carts)
		c.JSON(http.StatusOK, gin.H{
			"items":  workingCart.Lines(),
			"totals": workingCart.Totals(),
		})
	}
}

// POSAddItem puts the selected search row into the cart.
func POSAddItem(carts *CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := c.ShouldBindJSON(&product); err != nil || product.GrnItemsID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product"})
			return
		}

		workingCart := currentCart(c, carts)
		if err := workingCart.AddItem(product); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Out of Stock"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":  workingCart.Lines(),
			"totals": workingCart.Totals(),
		})
	}
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// POSSetQuantity changes a line's quantity; zero removes the line.
func POSSetQuantity(carts *CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		grnItemsID, err := strconv.Atoi(c.Param("grnItemsId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart line"})
			return
		}
		var req quantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		workingCart := currentCart(c, carts)
		if err := workingCart.SetQuantity(grnItemsID, req.Quantity); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Out of Stock"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":  workingCart.Lines(),
			"totals": workingCart.Totals(),
		})
	}
}

type discountRequest struct {
	Discount float64 `json:"discount"`
}

// POSSetDiscount applies a per-line discount, clamped by the cart.
func POSSetDiscount(carts *CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		grnItemsID, err := strconv.Atoi(c.Param("grnItemsId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart line"})
			return
		}
		var req discountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		workingCart := currentCart(c, carts)
		workingCart.SetDiscount(grnItemsID, req.Discount)
		c.JSON(http.StatusOK, gin.H{
			"items":  workingCart.Lines(),
			"totals": workingCart.Totals(),
		})
	}
}

// POSRemoveItem deletes a cart line.
func POSRemoveItem(carts *CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		grnItemsID, err := strconv.Atoi(c.Param("grnItemsId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart line"})
			return
		}
		workingCart := currentCart(c, carts)
		workingCart.Remove(grnItemsID)
		c.JSON(http.StatusOK, gin.H{
			"items":  workingCart.Lines(),
			"totals": workingCart.Totals(),
		})
	}
}

type invoiceAdjustment struct {
	Vat      *float64 `json:"vat"`
	Discount *float64 `json:"discount"`
}

// POSAdjustInvoice sets the invoice-level VAT percent and discount amount.
func POSAdjustInvoice(carts *CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req invoiceAdjustment
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		workingCart := currentCart(c, carts)
		if req.Vat != nil {
			workingCart.SetVatPercent(*req.Vat)
		}
		if req.Discount != nil {
			workingCart.SetDiscountAmount(*req.Discount)
		}
		c.JSON(http.StatusOK, gin.H{"totals": workingCart.Totals()})
	}
}

type checkoutRequest struct {
	Customer *models.Customer `json:"customer"`
}

// POSCheckout runs the invoice submission sequence. The customer is optional;
// the sale goes through as a guest checkout without one. A failure partway
// surfaces a single generic message and leaves the cart untouched for retry.
func POSCheckout(gw *gateway.Client, carts *CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		workingCart := currentCart(c, carts)
		invoiceID, err := workingCart.Submit(c.Request.Context(), gw, req.Customer)
		if err != nil {
			if errors.Is(err, cart.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Please add items to cart"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create invoice. Please try again."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"invoiceId":     invoiceID,
			"invoiceNumber": invoiceID + models.InvoiceNumberOffset,
		})
	}
}

// POSClearCart abandons the working cart.
func POSClearCart(carts *CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentCart(c, carts).Clear()
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func fallbackMessage(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
