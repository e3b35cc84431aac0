package gateway

import (
	"github.com/spf13/cast"

	"go-pos-client/internal/models"
)

// The backend serializes almost every number as a string, so all row mapping
// goes through cast. A row without a positive id is dropped by its mapper.

func intPtr(v any) *int {
	if v == nil {
		return nil
	}
	n := cast.ToInt(v)
	return &n
}

func floatPtr(v any) *float64 {
	if v == nil {
		return nil
	}
	f := cast.ToFloat64(v)
	return &f
}

// mapProduct handles the camelCase rows of the products listing and the
// search-with-grn endpoint, including the nested receiving batches.
func mapProduct(fields map[string]any) (models.Product, bool) {
	p := models.Product{
		ProductID:       cast.ToInt(fields["productId"]),
		ProductName:     cast.ToString(fields["productName"]),
		ProductNumber:   cast.ToString(fields["productNumber"]),
		ProductLocation: cast.ToString(fields["productLocation"]),
		ProductDetails:  cast.ToString(fields["productDetails"]),
		ProductType:     cast.ToString(fields["productType"]),
		ProductCost:     cast.ToFloat64(fields["productCost"]),
		ProductSelling:  cast.ToFloat64(fields["productSelling"]),
		GrnItemsID:      cast.ToInt(fields["grnItemsId"]),
	}
	if p.ProductID <= 0 {
		return models.Product{}, false
	}
	if p.ProductType == "" {
		p.ProductType = "unit"
	}
	if fields["productQty"] != nil {
		p.ProductQty = intPtr(fields["productQty"])
	}
	if fields["latestPrice"] != nil {
		p.LatestPrice = floatPtr(fields["latestPrice"])
	}

	if brand, ok := fields["productBrand"].(map[string]any); ok {
		if b, ok := mapBrand(brand); ok {
			p.ProductBrand = &b
		}
	}
	if category, ok := fields["productCategory"].(map[string]any); ok {
		if c, ok := mapCategory(category); ok {
			p.ProductCategory = &c
		}
	}

	if batches, ok := fields["grnData"].([]any); ok {
		for _, raw := range batches {
			batch, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			p.GrnData = append(p.GrnData, models.GrnItem{
				GrnItemsID:   cast.ToInt(batch["grnItemsId"]),
				CostPrice:    floatPtr(batch["costPrice"]),
				SellingPrice: floatPtr(batch["sellingPrice"]),
				OrderedQty:   intPtr(batch["orderedQty"]),
				Quantity:     intPtr(batch["quantity"]),
			})
		}
	}

	return p, true
}

// mapQuickProduct handles the PascalCase rows of the POS quick search.
func mapQuickProduct(fields map[string]any) (models.Product, bool) {
	p := models.Product{
		ProductID:       cast.ToInt(fields["ProductId"]),
		ProductName:     cast.ToString(fields["ProductName"]),
		ProductNumber:   cast.ToString(fields["ProductNumber"]),
		ProductLocation: cast.ToString(fields["ProductLocation"]),
		ProductDetails:  cast.ToString(fields["ProductDetails"]),
		ProductType:     cast.ToString(fields["ProductType"]),
		ProductCost:     cast.ToFloat64(fields["ProductCost"]),
		ProductSelling:  cast.ToFloat64(fields["ProductSelling"]),
		GrnItemsID:      cast.ToInt(fields["grnItemsId"]),
	}
	if p.ProductID <= 0 {
		return models.Product{}, false
	}
	if fields["ProductQty"] != nil {
		p.ProductQty = intPtr(fields["ProductQty"])
	}
	if fields["latestPrice"] != nil {
		p.LatestPrice = floatPtr(fields["latestPrice"])
	}
	return p, true
}

func mapCustomer(fields map[string]any) (models.Customer, bool) {
	c := models.Customer{
		ClientID:        cast.ToInt(fields["id"]),
		ClientFirstName: cast.ToString(fields["first_name"]),
		ClientLastName:  cast.ToString(fields["last_name"]),
		Email:           cast.ToString(fields["email"]),
		ContactNumber:   cast.ToString(fields["contact_no"]),
		Address:         cast.ToString(fields["address"]),
	}
	if c.ClientID <= 0 {
		return models.Customer{}, false
	}
	return c, true
}

func mapBrand(fields map[string]any) (models.ProductBrand, bool) {
	b := models.ProductBrand{
		ProductBrandID:   cast.ToInt(fields["product_brand_id"]),
		ProductBrandName: cast.ToString(fields["brand_name"]),
	}
	if b.ProductBrandID <= 0 {
		return models.ProductBrand{}, false
	}
	return b, true
}

func mapCategory(fields map[string]any) (models.ProductCategory, bool) {
	c := models.ProductCategory{
		ProductCategoryID:   cast.ToInt(fields["product_cat_id"]),
		ProductCategoryName: cast.ToString(fields["category_name"]),
	}
	if c.ProductCategoryID <= 0 {
		return models.ProductCategory{}, false
	}
	return c, true
}

func mapSupplier(fields map[string]any) (models.Supplier, bool) {
	s := models.Supplier{
		SupplierID:            cast.ToInt(fields["supplier_id"]),
		SupplierName:          cast.ToString(fields["supplier_name"]),
		SupplierContactNumber: cast.ToString(fields["supplier_contact_number"]),
		SupplierAddress:       cast.ToString(fields["supplier_address"]),
	}
	if s.SupplierID <= 0 {
		return models.Supplier{}, false
	}
	return s, true
}

// mapInvoice handles the PascalCase rows of the invoice list download.
func mapInvoice(fields map[string]any) (models.Invoice, bool) {
	inv := models.Invoice{
		InvoiceID:       cast.ToInt(fields["InvoiceId"]),
		ClientID:        cast.ToInt(fields["ClientId"]),
		ClientName:      cast.ToString(fields["ClientName"]),
		InvoiceDateTime: cast.ToString(fields["InvoiceDateTime"]),
		Vat:             cast.ToFloat64(fields["Vat"]),
		VatPrice:        cast.ToFloat64(fields["VatPrice"]),
		Discount:        cast.ToFloat64(fields["Discount"]),
		DiscountPrice:   cast.ToFloat64(fields["DiscountPrice"]),
		GrandTotal:      cast.ToFloat64(fields["GrandTotal"]),
		Status:          cast.ToInt(fields["Status"]),
		UserID:          cast.ToInt(fields["UserId"]),
	}
	if inv.InvoiceID <= 0 {
		return models.Invoice{}, false
	}
	inv.InvoiceNumber = inv.InvoiceID + models.InvoiceNumberOffset
	return inv, true
}

func mapRecentOrder(fields map[string]any) (models.RecentOrder, bool) {
	o := models.RecentOrder{
		InvoiceID:    cast.ToInt(fields["invoice_id"]),
		CustomerName: cast.ToString(fields["customer_name"]),
		GrandTotal:   cast.ToString(fields["grand_total"]),
	}
	if o.InvoiceID <= 0 {
		return models.RecentOrder{}, false
	}
	return o, true
}
