package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go-pos-client/internal/export"
	"go-pos-client/internal/gateway"
	"go-pos-client/internal/models"
	"go-pos-client/internal/schemas"

	"github.com/gin-gonic/gin"
)

// Suppliers come back from the backend as one unpaginated list, so the page
// filters locally instead of going through the list controller.

func supplierParams(form schemas.SupplierForm) gateway.Params {
	return gateway.Params{
		"supplier_name":           form.SupplierName,
		"supplier_contact_number": form.SupplierContactNumber,
		"supplier_address":        form.SupplierAddress,
	}
}

// ListSuppliers returns every supplier, optionally filtered by a term matched
// against name, contact number and address.
func ListSuppliers(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		suppliers := gw.Suppliers(c.Request.Context())

		term := strings.ToLower(strings.TrimSpace(c.Query("q")))
		if term != "" {
			filtered := make([]models.Supplier, 0, len(suppliers))
			for _, s := range suppliers {
				haystack := strings.ToLower(s.SupplierName + " " + s.SupplierContactNumber + " " + s.SupplierAddress)
				if strings.Contains(haystack, term) {
					filtered = append(filtered, s)
				}
			}
			suppliers = filtered
		}
		if suppliers == nil {
			suppliers = []models.Supplier{}
		}
		c.JSON(http.StatusOK, gin.H{"data": suppliers, "total": len(suppliers)})
	}
}

func CreateSupplier(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form schemas.SupplierForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		res := gw.CreateSupplier(c.Request.Context(), supplierParams(form))
		if !res.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to add supplier")})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func UpdateSupplier(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		var form schemas.SupplierForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		res := gw.UpdateSupplier(c.Request.Context(), id, supplierParams(form))
		if !res.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to update supplier")})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// ExportSuppliers downloads the full supplier list as CSV or XLSX.
func ExportSuppliers(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := export.Format(c.DefaultQuery("format", "csv"))
		if format != export.FormatCSV && format != export.FormatXLSX {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported export format"})
			return
		}

		suppliers := gw.Suppliers(c.Request.Context())
		data, err := export.Encode(format, "Suppliers", export.SupplierRows(suppliers))
		if err != nil {
			if errors.Is(err, export.ErrNoData) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No data to export"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename="+export.Filename("suppliers", format))
		c.Data(http.StatusOK, format.ContentType(), data)
	}
}
