// Package schemas holds the form binding structs for every view. Validation
// runs through gin's binding tags, so a bad form never reaches the network.
package schemas

import (
	"errors"
	"time"
)

type LoginForm struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

type CustomerForm struct {
	ClientFirstName string `form:"clientFirstName" json:"clientFirstName" binding:"required"`
	ClientLastName  string `form:"clientLastName" json:"clientLastName" binding:"required"`
	Email           string `form:"email" json:"email" binding:"required,email"`
	ContactNumber   string `form:"contactNumber" json:"contactNumber" binding:"required"`
	Address         string `form:"address" json:"address" binding:"required"`
	CompanyName     string `form:"companyName" json:"companyName"`
	ClientType      string `form:"clientType" json:"clientType"`
	NIC             string `form:"nic" json:"nic"`
}

type ProductForm struct {
	ProductName     string `form:"productName" json:"productName" binding:"required"`
	ProductLocation string `form:"productLocation" json:"productLocation" binding:"required"`
	ProductDetails  string `form:"productDetails" json:"productDetails"`
	ProductType     string `form:"productType" json:"productType" binding:"required"`
	ProductCost     string `form:"productCost" json:"productCost" binding:"required"`
	ProductSelling  string `form:"productSelling" json:"productSelling" binding:"required"`
	ProductQty      string `form:"productQty" json:"productQty" binding:"required"`
	BrandID         int    `form:"brandId" json:"brandId"`
	CategoryID      int    `form:"categoryId" json:"categoryId"`
}

type BrandForm struct {
	ProductBrandName string `form:"productBrandName" json:"productBrandName" binding:"required"`
}

type CategoryForm struct {
	ProductCategoryName string `form:"productCategoryName" json:"productCategoryName" binding:"required"`
}

type SupplierForm struct {
	SupplierName          string `form:"supplier_name" json:"supplier_name" binding:"required"`
	SupplierContactNumber string `form:"supplier_contact_number" json:"supplier_contact_number" binding:"required"`
	SupplierAddress       string `form:"supplier_address" json:"supplier_address" binding:"required"`
}

type GRNForm struct {
	SupplierName  string `form:"supplierName" json:"supplierName" binding:"required"`
	InvoiceNumber string `form:"invoiceNumber" json:"invoiceNumber" binding:"required"`
	GrnNumber     string `form:"grnNumber" json:"grnNumber" binding:"required"`
	GrnNote       string `form:"grnNote" json:"grnNote"`
	GrnDate       string `form:"grnDate" json:"grnDate" binding:"required"`
}

type SettingsForm struct {
	Name  string `form:"name" json:"name" binding:"required,min=2"`
	Email string `form:"email" json:"email" binding:"required,email"`
	Role  string `form:"role" json:"role" binding:"required,oneof=admin cashier storekeeper"`
}

type DateRangeForm struct {
	StartDate string `form:"startDate" json:"startDate" binding:"required"`
	EndDate   string `form:"endDate" json:"endDate" binding:"required"`
}

// Validate enforces the cross-field rule the tag syntax can't express:
// the range must run forward.
func (f DateRangeForm) Validate() error {
	start, err := time.Parse("2006-01-02", f.StartDate)
	if err != nil {
		return errors.New("start date is invalid")
	}
	end, err := time.Parse("2006-01-02", f.EndDate)
	if err != nil {
		return errors.New("end date is invalid")
	}
	if end.Before(start) {
		return errors.New("end date must be after start date")
	}
	return nil
}
