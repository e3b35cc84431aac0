package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"go-pos-client/internal/gateway"
	"go-pos-client/internal/models"

	"github.com/gin-gonic/gin"
)

// Invoice status values as stored by the backend.
const (
	InvoiceStatusDraft     = 0
	InvoiceStatusCompleted = 1
	InvoiceStatusPaid      = 2
)

// ListInvoices returns the sales history, newest first, optionally filtered
// by a term matched against the client name and the display number. The
// backend sends the whole list, so filtering happens locally.
func ListInvoices(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		invoices, err := gw.InvoiceList(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load invoices"})
			return
		}

		term := strings.ToLower(strings.TrimSpace(c.Query("q")))
		if term != "" {
			filtered := make([]models.Invoice, 0, len(invoices))
			for _, inv := range invoices {
				number := strconv.Itoa(inv.InvoiceNumber)
				if strings.Contains(strings.ToLower(inv.ClientName), term) || strings.Contains(number, term) {
					filtered = append(filtered, inv)
				}
			}
			invoices = filtered
		}
		if invoices == nil {
			invoices = []models.Invoice{}
		}
		c.JSON(http.StatusOK, gin.H{"data": invoices, "total": len(invoices)})
	}
}

// InvoiceDetails fetches one invoice with its line items.
func InvoiceDetails(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice"})
			return
		}
		res := gw.InvoiceDetails(c.Request.Context(), id)
		if !res.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to load invoice")})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// DeleteInvoice removes an invoice and restores its stock on the backend.
func DeleteInvoice(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice"})
			return
		}
		res := gw.DeleteInvoice(c.Request.Context(), id)
		if !res.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to delete invoice")})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

type invoiceItemUpdate struct {
	PriceBatchID     int     `json:"priceBatchId" binding:"required"`
	InvoiceProductID int     `json:"invoiceProductId" binding:"required"`
	ProductQty       int     `json:"productQty" binding:"required,min=1"`
	Discount         float64 `json:"discount"`
	Quantity         int     `json:"quantity" binding:"required,min=1"`
}

// UpdateInvoiceItem changes the quantity of a line on a saved invoice.
func UpdateInvoiceItem(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice"})
			return
		}
		var req invoiceItemUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		res := gw.UpdateItemQuantity(c.Request.Context(), id, req.PriceBatchID, req.InvoiceProductID, req.ProductQty, req.Discount, req.Quantity)
		if !res.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to update item")})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

type invoiceItemRemove struct {
	PriceBatchID     int `json:"priceBatchId" binding:"required"`
	InvoiceProductID int `json:"invoiceProductId" binding:"required"`
	ProductQty       int `json:"productQty" binding:"required,min=1"`
}

// RemoveInvoiceItem drops a line from a saved invoice.
func RemoveInvoiceItem(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice"})
			return
		}
		var req invoiceItemRemove
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		res := gw.RemoveItemFromCart(c.Request.Context(), id, req.PriceBatchID, req.InvoiceProductID, req.ProductQty)
		if !res.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to remove item")})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
