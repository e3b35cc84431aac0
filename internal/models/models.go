package models

// Role values the backend hands out at login.
const (
	RoleAdmin       = "admin"
	RoleCashier     = "cashier"
	RoleStorekeeper = "storekeeper"
)

// InvoiceNumberOffset turns a raw invoice id into the number printed on receipts.
const InvoiceNumberOffset = 10000

// User - the logged-in operator, persisted locally between sessions
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"` // admin, cashier, storekeeper
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// GrnItem - one priced lot of a product received from a supplier.
// The backend sends these fields as strings; nil means the lot never recorded it.
type GrnItem struct {
	GrnItemsID   int      `json:"grnItemsId"`
	CostPrice    *float64 `json:"costPrice"`
	SellingPrice *float64 `json:"sellingPrice"`
	OrderedQty   *int     `json:"orderedQty"`
	Quantity     *int     `json:"quantity"`
}

// Product - the inventory view the cashier searches over.
// ProductQty is nil when the backend does not know the stock level.
type Product struct {
	ProductID       int              `json:"productId"`
	ProductName     string           `json:"productName"`
	ProductNumber   string           `json:"productNumber"`
	ProductLocation string           `json:"productLocation"`
	ProductDetails  string           `json:"productDetails,omitempty"`
	ProductQty      *int             `json:"productQty"`
	ProductType     string           `json:"productType"`
	ProductCost     float64          `json:"productCost"`
	ProductSelling  float64          `json:"productSelling"`
	LatestPrice     *float64         `json:"latestPrice,omitempty"`
	GrnItemsID      int              `json:"grnItemsId"`
	ProductBrand    *ProductBrand    `json:"productBrand,omitempty"`
	ProductCategory *ProductCategory `json:"productCategory,omitempty"`
	GrnData         []GrnItem        `json:"grnData,omitempty"`
}

// AvailableQty is the stock the cart may draw from. nil quantity counts as zero.
func (p Product) AvailableQty() int {
	if p.ProductQty == nil {
		return 0
	}
	return *p.ProductQty
}

// UnitPrice prefers the receiving-batch price over the standard selling price.
func (p Product) UnitPrice() float64 {
	if p.LatestPrice != nil && *p.LatestPrice > 0 {
		return *p.LatestPrice
	}
	return p.ProductSelling
}

type Customer struct {
	ClientID        int    `json:"clientId"`
	ClientFirstName string `json:"clientFirstName"`
	ClientLastName  string `json:"clientLastName"`
	Email           string `json:"email,omitempty"`
	ContactNumber   string `json:"contactNumber,omitempty"`
	Address         string `json:"address,omitempty"`
}

type Supplier struct {
	SupplierID            int    `json:"supplier_id"`
	SupplierName          string `json:"supplier_name"`
	SupplierContactNumber string `json:"supplier_contact_number"`
	SupplierAddress       string `json:"supplier_address"`
}

type ProductBrand struct {
	ProductBrandID   int    `json:"productBrandId"`
	ProductBrandName string `json:"productBrandName"`
}

type ProductCategory struct {
	ProductCategoryID   int    `json:"productCategoryId"`
	ProductCategoryName string `json:"productCategoryName"`
}

// Invoice - a sale record as listed by the backend.
// InvoiceNumber is the display number (id + InvoiceNumberOffset).
type Invoice struct {
	InvoiceID       int     `json:"invoiceId"`
	InvoiceNumber   int     `json:"invoiceNumber"`
	ClientID        int     `json:"clientId"`
	ClientName      string  `json:"clientName"`
	InvoiceDateTime string  `json:"invoiceDateTime"`
	Vat             float64 `json:"vat"`
	VatPrice        float64 `json:"vatPrice"`
	Discount        float64 `json:"discount"`
	DiscountPrice   float64 `json:"discountPrice"`
	GrandTotal      float64 `json:"grandTotal"`
	Status          int     `json:"status"`
	UserID          int     `json:"userId"`
}

type InvoiceItem struct {
	InvoiceItemID int     `json:"invoiceItemId"`
	InvoiceID     int     `json:"invoiceId"`
	PriceBatchID  int     `json:"priceBatchId"`
	ProductQty    int     `json:"productQty"`
	SellingPrice  float64 `json:"sellingPrice"`
	ItemDiscount  float64 `json:"itemDiscount"`
	ItemSubTotal  float64 `json:"itemSubTotal"`
	ProductName   string  `json:"productName"`
	ProductNumber string  `json:"productNumber"`
}

// CartItem - one line of the working cart, keyed by the receiving batch.
type CartItem struct {
	GrnItemsID    int     `json:"grnItemsId"`
	ProductID     int     `json:"productId"`
	ProductName   string  `json:"productName"`
	ProductNumber string  `json:"productNumber"`
	Quantity      int     `json:"quantity"`
	SellingPrice  float64 `json:"sellingPrice"`
	Discount      float64 `json:"discount"`
	Total         float64 `json:"total"`
	AvailableQty  int     `json:"productQty"`
}

type RecentOrder struct {
	InvoiceID    int    `json:"invoice_id"`
	CustomerName string `json:"customer_name"`
	GrandTotal   string `json:"grand_total"`
}

// DashboardStats - the six aggregates shown on the dashboard.
// Counts are pre-formatted with digit grouping, matching what the view renders.
type DashboardStats struct {
	InvoiceCount      string        `json:"invoiceCount"`
	CustomerCount     string        `json:"customerCount"`
	SoldItemCount     string        `json:"soldItemCount"`
	TodayRevenue      string        `json:"todayRevenue"`
	MonthlyRevenue    string        `json:"monthlyRevenue"`
	TodayRecentOrders []RecentOrder `json:"todayRecentOrders"`
}

// Pagination mirrors the backend's paginator block field for field.
type Pagination struct {
	CurrentPage      int     `json:"current_page"`
	PerPage          int     `json:"per_page"`
	Total            int     `json:"total"`
	LastPage         int     `json:"last_page"`
	From             *int    `json:"from"`
	To               *int    `json:"to"`
	HasMorePages     bool    `json:"has_more_pages"`
	HasPreviousPages bool    `json:"has_previous_pages"`
	NextPageURL      *string `json:"next_page_url"`
	PreviousPageURL  *string `json:"previous_page_url"`
}
