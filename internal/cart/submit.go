package cart

import (
	"context"
	"errors"
	"strings"

	"go-pos-client/internal/gateway"
	"go-pos-client/internal/models"
)

// ErrSubmitFailed is the single error the cashier sees when invoice creation
// dies partway. The remote invoice may be partially built; there is no
// compensation, the cart stays intact so the sale can be retried.
var ErrSubmitFailed = errors.New("failed to create invoice")

// Gateway is the slice of the remote client Submit needs.
type Gateway interface {
	OpenInvoice(ctx context.Context, invoiceType, clientName, clientEmail, clientTel string, clientID int) (int, error)
	AddItemToCart(ctx context.Context, invoiceID, productID, qty int, discount, sellPrice float64) gateway.Result
	UpdateInvoiceVat(ctx context.Context, invoiceID int, vat float64) gateway.Result
	UpdateInvoiceDiscount(ctx context.Context, invoiceID int, discount float64) gateway.Result
	SaveInvoice(ctx context.Context, invoiceID int, receiptType string) gateway.Result
}

// Submit drives the invoice through the backend's multi-step sequence:
// open the draft, add every line, apply VAT and discount when set, save.
// The customer is optional; a nil customer is a guest sale. On success the
// cart is cleared and the new invoice id returned.
func (c *Cart) Submit(ctx context.Context, gw Gateway, customer *models.Customer) (int, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return 0, ErrEmptyCart
	}

	var clientName, clientEmail, clientTel string
	var clientID int
	if customer != nil {
		clientName = strings.TrimSpace(customer.ClientFirstName + " " + customer.ClientLastName)
		clientEmail = customer.Email
		clientTel = customer.ContactNumber
		clientID = customer.ClientID
	}

	invoiceID, err := gw.OpenInvoice(ctx, "Regular", clientName, clientEmail, clientTel, clientID)
	if err != nil {
		return 0, ErrSubmitFailed
	}

	for _, line := range lines {
		res := gw.AddItemToCart(ctx, invoiceID, line.ProductID, line.Quantity, line.Discount, line.SellingPrice)
		if !res.Success {
			return 0, ErrSubmitFailed
		}
	}

	if vat := c.VatPercent(); vat > 0 {
		if res := gw.UpdateInvoiceVat(ctx, invoiceID, vat); !res.Success {
			return 0, ErrSubmitFailed
		}
	}
	if discount := c.DiscountAmount(); discount > 0 {
		if res := gw.UpdateInvoiceDiscount(ctx, invoiceID, discount); !res.Success {
			return 0, ErrSubmitFailed
		}
	}

	if res := gw.SaveInvoice(ctx, invoiceID, "Regular"); !res.Success {
		return 0, ErrSubmitFailed
	}

	c.Clear()
	return invoiceID, nil
}
