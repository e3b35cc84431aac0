package handlers

import (
	"net/http"

	"go-pos-client/internal/gateway"
	"go-pos-client/internal/schemas"
	"go-pos-client/internal/session"

	"github.com/gin-gonic/gin"
)

const grnDraftKey = "grn_form"

// GRNWorkspace loads the goods-received screen: the supplier list to pick
// from plus whatever half-filled form was autosaved last time.
func GRNWorkspace(gw *gateway.Client, drafts *session.Drafts) gin.HandlerFunc {
	return func(c *gin.Context) {
		suppliers := gw.Suppliers(c.Request.Context())
		payload := gin.H{"suppliers": suppliers}
		if fields, ok := drafts.Load(grnDraftKey); ok {
			payload["draft"] = fields
		}
		c.JSON(http.StatusOK, payload)
	}
}

// CompleteGRN accepts a finished goods-received form. Here the form is fully
// validated, unlike the draft path, and a good one retires the autosave.
func CompleteGRN(drafts *session.Drafts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form schemas.GRNForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if err := drafts.Clear(grnDraftKey); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear draft"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "grnNumber": form.GrnNumber})
	}
}

// grnDraft is the autosave shape. Unlike schemas.GRNForm nothing is
// required here: a draft is by definition incomplete.
type grnDraft struct {
	SupplierName  string `json:"supplierName"`
	InvoiceNumber string `json:"invoiceNumber"`
	GrnNumber     string `json:"grnNumber"`
	GrnNote       string `json:"grnNote"`
	GrnDate       string `json:"grnDate"`
}

// SaveGRNDraft autosaves the in-progress goods-received form.
func SaveGRNDraft(drafts *session.Drafts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form grnDraft
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		fields := map[string]any{
			"supplierName":  form.SupplierName,
			"invoiceNumber": form.InvoiceNumber,
			"grnNumber":     form.GrnNumber,
			"grnNote":       form.GrnNote,
			"grnDate":       form.GrnDate,
		}
		if err := drafts.Save(grnDraftKey, fields); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
