package export

import "go-pos-client/internal/models"

// The flat tabular projections each entity exports. Column sets are fixed;
// the csv tags are the header names in both CSV and XLSX output.

type CustomerRow struct {
	FirstName     string `csv:"First Name"`
	LastName      string `csv:"Last Name"`
	Address       string `csv:"Address"`
	ContactNumber string `csv:"Contact Number"`
	Email         string `csv:"Email"`
}

func CustomerRows(customers []models.Customer) []CustomerRow {
	rows := make([]CustomerRow, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, CustomerRow{
			FirstName:     c.ClientFirstName,
			LastName:      c.ClientLastName,
			Address:       c.Address,
			ContactNumber: c.ContactNumber,
			Email:         c.Email,
		})
	}
	return rows
}

type ProductRow struct {
	ProductName   string `csv:"Product Name"`
	ProductNumber string `csv:"Product Number"`
	Location      string `csv:"Location"`
	Details       string `csv:"Details"`
	Type          string `csv:"Type"`
	Quantity      int    `csv:"Quantity"`
	Brand         string `csv:"Brand"`
	Category      string `csv:"Category"`
}

func ProductRows(products []models.Product) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		row := ProductRow{
			ProductName:   p.ProductName,
			ProductNumber: p.ProductNumber,
			Location:      p.ProductLocation,
			Details:       p.ProductDetails,
			Type:          p.ProductType,
			Quantity:      p.AvailableQty(),
			Brand:         "Not specified",
			Category:      "Not specified",
		}
		if row.Type == "" {
			row.Type = "unit"
		}
		if p.ProductBrand != nil {
			row.Brand = p.ProductBrand.ProductBrandName
		}
		if p.ProductCategory != nil {
			row.Category = p.ProductCategory.ProductCategoryName
		}
		rows = append(rows, row)
	}
	return rows
}

type BrandRow struct {
	BrandID   int    `csv:"Brand ID"`
	BrandName string `csv:"Brand Name"`
}

func BrandRows(brands []models.ProductBrand) []BrandRow {
	rows := make([]BrandRow, 0, len(brands))
	for _, b := range brands {
		rows = append(rows, BrandRow{BrandID: b.ProductBrandID, BrandName: b.ProductBrandName})
	}
	return rows
}

type CategoryRow struct {
	CategoryID   int    `csv:"Category ID"`
	CategoryName string `csv:"Category Name"`
}

func CategoryRows(categories []models.ProductCategory) []CategoryRow {
	rows := make([]CategoryRow, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, CategoryRow{CategoryID: c.ProductCategoryID, CategoryName: c.ProductCategoryName})
	}
	return rows
}

type SupplierRow struct {
	SupplierName  string `csv:"Supplier Name"`
	ContactNumber string `csv:"Contact Number"`
	Address       string `csv:"Address"`
}

func SupplierRows(suppliers []models.Supplier) []SupplierRow {
	rows := make([]SupplierRow, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, SupplierRow{
			SupplierName:  s.SupplierName,
			ContactNumber: s.SupplierContactNumber,
			Address:       s.SupplierAddress,
		})
	}
	return rows
}
