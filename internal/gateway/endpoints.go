package gateway

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/spf13/cast"

	"go-pos-client/internal/models"
)

// ---- Authentication ----

// Login posts the credential form and returns the backend's user record.
// The backend replies with the legacy {result, user, msg} envelope.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	body, err := c.request(ctx, http.MethodPost, "user_login", Params{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return models.User{}, err
	}

	if !cast.ToBool(body["result"]) {
		msg := cast.ToString(body["msg"])
		if msg == "" {
			msg = "Login failed"
		}
		return models.User{}, errors.New(msg)
	}

	fields, ok := body["user"].(map[string]any)
	if !ok {
		return models.User{}, errors.New("Login failed")
	}
	user := models.User{
		ID:        cast.ToInt(fields["id"]),
		Name:      cast.ToString(fields["name"]),
		Email:     cast.ToString(fields["email"]),
		Role:      cast.ToString(fields["role"]),
		AvatarURL: cast.ToString(fields["avatar_url"]),
	}
	if user.ID <= 0 {
		return models.User{}, errors.New("Login failed")
	}
	return user, nil
}

// ---- Dashboard ----

// DashboardCount fetches a single numeric aggregate. The second return is
// false when the backend flagged the aggregate as failed; the dashboard
// degrades that tile to zero instead of failing the page.
func (c *Client) DashboardCount(ctx context.Context, reqType string) (float64, bool) {
	body, err := c.request(ctx, http.MethodPost, "getDashboard", Params{"reqType": reqType})
	if err != nil {
		return 0, false
	}
	inner, ok := body["data"].(map[string]any)
	if !ok || !cast.ToBool(inner["result"]) {
		return 0, false
	}
	return cast.ToFloat64(inner["count"]), true
}

// DashboardRecentOrders fetches today's recent order rows.
func (c *Client) DashboardRecentOrders(ctx context.Context) []models.RecentOrder {
	body, err := c.request(ctx, http.MethodPost, "getDashboard", Params{"reqType": "todayrecentOrders"})
	if err != nil {
		return nil
	}
	inner, ok := body["data"].(map[string]any)
	if !ok || !cast.ToBool(inner["result"]) {
		return nil
	}
	items, ok := inner["data"].([]any)
	if !ok {
		return nil
	}
	orders := make([]models.RecentOrder, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if order, ok := mapRecentOrder(fields); ok {
			orders = append(orders, order)
		}
	}
	return orders
}

// ---- Products ----

func (c *Client) ListProducts(ctx context.Context, q ListQuery) Page[models.Product] {
	body, err := c.request(ctx, http.MethodGet, "products", q.params())
	return pageFrom(body, err, "Failed to retrieve products", mapProduct)
}

func (c *Client) SearchProductsWithGRN(ctx context.Context, term string, q ListQuery) Page[models.Product] {
	params := q.params()
	params["searchTerm"] = term
	body, err := c.request(ctx, http.MethodPost, "products/search-with-grn", params)
	return pageFrom(body, err, "Failed to search products", mapProduct)
}

// QuickSearchProducts is the POS search box: every priced batch matching the
// term, no pagination. Any failure comes back as zero rows.
func (c *Client) QuickSearchProducts(ctx context.Context, term string) []models.Product {
	body, err := c.request(ctx, http.MethodPost, "products/search", Params{
		"search_value":    term,
		"search_cat_name": "All",
	})
	if err != nil {
		return nil
	}
	items, ok := body["data"].([]any)
	if !ok {
		return nil
	}
	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if p, ok := mapQuickProduct(fields); ok {
			products = append(products, p)
		}
	}
	return products
}

// LatestPrice asks for the newest batch price of a product, 0 when unknown.
func (c *Client) LatestPrice(ctx context.Context, productNumber string) float64 {
	body, err := c.request(ctx, http.MethodPost, "get_product_latest_price.php", Params{
		"product_id": productNumber,
	})
	if err != nil || !cast.ToBool(body["result"]) {
		return 0
	}
	return cast.ToFloat64(body["data"])
}

func (c *Client) CreateProduct(ctx context.Context, form Params) Result {
	body, err := c.request(ctx, http.MethodPost, "products", form)
	return resultFrom(body, err, "Failed to add product")
}

func (c *Client) UpdateProduct(ctx context.Context, id int, form Params) Result {
	body, err := c.request(ctx, http.MethodPut, "products/"+strconv.Itoa(id), form)
	return resultFrom(body, err, "Failed to update product")
}

func (c *Client) DeleteProduct(ctx context.Context, id int) Result {
	body, err := c.request(ctx, http.MethodDelete, "products/"+strconv.Itoa(id), nil)
	return resultFrom(body, err, "Failed to delete product")
}

// ---- Customers ----

func (c *Client) ListCustomers(ctx context.Context, q ListQuery) Page[models.Customer] {
	body, err := c.request(ctx, http.MethodGet, "customers", q.params())
	return pageFrom(body, err, "Failed to retrieve customers", mapCustomer)
}

func (c *Client) SearchCustomers(ctx context.Context, term string, q ListQuery) Page[models.Customer] {
	params := q.params()
	params["searchTerm"] = term
	body, err := c.request(ctx, http.MethodPost, "customers/search", params)
	return pageFrom(body, err, "Failed to search customers", mapCustomer)
}

func (c *Client) CreateCustomer(ctx context.Context, form Params) Result {
	body, err := c.request(ctx, http.MethodPost, "customers", form)
	return resultFrom(body, err, "Failed to add customer")
}

func (c *Client) UpdateCustomer(ctx context.Context, id int, form Params) Result {
	body, err := c.request(ctx, http.MethodPut, "customers/"+strconv.Itoa(id), form)
	return resultFrom(body, err, "Failed to update customer")
}

func (c *Client) DeleteCustomer(ctx context.Context, id int) Result {
	body, err := c.request(ctx, http.MethodDelete, "customers/"+strconv.Itoa(id), nil)
	return resultFrom(body, err, "Failed to delete customer")
}

// ---- Brands ----

func (c *Client) ListBrands(ctx context.Context, q ListQuery) Page[models.ProductBrand] {
	body, err := c.request(ctx, http.MethodGet, "products/brands", q.params())
	return pageFrom(body, err, "Failed to retrieve product brands", mapBrand)
}

func (c *Client) SearchBrands(ctx context.Context, term string, q ListQuery) Page[models.ProductBrand] {
	params := q.params()
	params["searchTerm"] = term
	body, err := c.request(ctx, http.MethodPost, "products/brands/search", params)
	return pageFrom(body, err, "Failed to search product brands", mapBrand)
}

func (c *Client) CreateBrand(ctx context.Context, form Params) Result {
	body, err := c.request(ctx, http.MethodPost, "products/brands", form)
	return resultFrom(body, err, "Failed to create brand")
}

func (c *Client) UpdateBrand(ctx context.Context, id int, form Params) Result {
	body, err := c.request(ctx, http.MethodPut, "products/brands/"+strconv.Itoa(id), form)
	return resultFrom(body, err, "Failed to update brand")
}

func (c *Client) DeleteBrand(ctx context.Context, id int) Result {
	body, err := c.request(ctx, http.MethodDelete, "products/brands/"+strconv.Itoa(id), nil)
	return resultFrom(body, err, "Failed to delete brand")
}

// ---- Categories ----

func (c *Client) ListCategories(ctx context.Context, q ListQuery) Page[models.ProductCategory] {
	body, err := c.request(ctx, http.MethodGet, "products/categories", q.params())
	return pageFrom(body, err, "Failed to retrieve product categories", mapCategory)
}

func (c *Client) SearchCategories(ctx context.Context, term string, q ListQuery) Page[models.ProductCategory] {
	params := q.params()
	params["searchTerm"] = term
	body, err := c.request(ctx, http.MethodPost, "products/categories/search", params)
	return pageFrom(body, err, "Failed to search product categories", mapCategory)
}

func (c *Client) CreateCategory(ctx context.Context, form Params) Result {
	body, err := c.request(ctx, http.MethodPost, "products/categories", form)
	return resultFrom(body, err, "Failed to create category")
}

func (c *Client) UpdateCategory(ctx context.Context, id int, form Params) Result {
	body, err := c.request(ctx, http.MethodPut, "products/categories/"+strconv.Itoa(id), form)
	return resultFrom(body, err, "Failed to update category")
}

func (c *Client) DeleteCategory(ctx context.Context, id int) Result {
	body, err := c.request(ctx, http.MethodDelete, "products/categories/"+strconv.Itoa(id), nil)
	return resultFrom(body, err, "Failed to delete category")
}

// ---- Suppliers ----

// Suppliers returns the full supplier list; the backend has no pagination here.
func (c *Client) Suppliers(ctx context.Context) []models.Supplier {
	body, err := c.request(ctx, http.MethodPost, "getSupplierList", Params{"s": "all"})
	if err != nil {
		return nil
	}
	items, ok := body["data"].([]any)
	if !ok {
		return nil
	}
	suppliers := make([]models.Supplier, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if s, ok := mapSupplier(fields); ok {
			suppliers = append(suppliers, s)
		}
	}
	return suppliers
}

func (c *Client) CreateSupplier(ctx context.Context, form Params) Result {
	body, err := c.request(ctx, http.MethodPost, "addNewSupplier", form)
	return legacyFrom(body, err, "Failed to add supplier")
}

func (c *Client) UpdateSupplier(ctx context.Context, id int, form Params) Result {
	body, err := c.request(ctx, http.MethodPut, "suppliers/"+strconv.Itoa(id), form)
	return resultFrom(body, err, "Failed to update supplier")
}

// ---- Invoice lifecycle ----

// OpenInvoice creates the draft invoice record and returns its id.
// The customer fields may be empty: guest checkout is tolerated.
func (c *Client) OpenInvoice(ctx context.Context, invoiceType, clientName, clientEmail, clientTel string, clientID int) (int, error) {
	body, err := c.request(ctx, http.MethodPost, "openinvoice", Params{
		"invoice_type": invoiceType,
		"client_name":  clientName,
		"client_email": clientEmail,
		"client_tel":   clientTel,
		"client_id":    strconv.Itoa(clientID),
	})
	if err != nil {
		return 0, err
	}
	if !cast.ToBool(body["result"]) {
		return 0, errors.New("Invalid response from server")
	}
	invoiceID := cast.ToInt(body["invoiceId"])
	if invoiceID <= 0 {
		return 0, errors.New("Invalid response from server")
	}
	return invoiceID, nil
}

func (c *Client) AddItemToCart(ctx context.Context, invoiceID, productID, qty int, discount, sellPrice float64) Result {
	body, err := c.request(ctx, http.MethodPost, "add_item_to_cart.php", Params{
		"invoice_id": strconv.Itoa(invoiceID),
		"product_id": strconv.Itoa(productID),
		"qty":        strconv.Itoa(qty),
		"discount":   strconv.FormatFloat(discount, 'f', -1, 64),
		"sellPrice":  strconv.FormatFloat(sellPrice, 'f', -1, 64),
		"reqType":    "AddToCart",
	})
	return legacyFrom(body, err, "Failed to add item to invoice")
}

func (c *Client) UpdateItemQuantity(ctx context.Context, invoiceID, priceBatchID, invoiceProductID, productQty int, discount float64, qty int) Result {
	body, err := c.request(ctx, http.MethodPost, "update_item_qty_cart.php", Params{
		"invoice_id":         strconv.Itoa(invoiceID),
		"price_batch_id":     strconv.Itoa(priceBatchID),
		"invoice_product_id": strconv.Itoa(invoiceProductID),
		"product_qty":        strconv.Itoa(productQty),
		"product_discount":   strconv.FormatFloat(discount, 'f', -1, 64),
		"qty":                strconv.Itoa(qty),
	})
	return legacyFrom(body, err, "Failed to update invoice item")
}

func (c *Client) RemoveItemFromCart(ctx context.Context, invoiceID, priceBatchID, invoiceProductID, productQty int) Result {
	body, err := c.request(ctx, http.MethodPost, "remove_item_qty_cart.php", Params{
		"invoice_id":         strconv.Itoa(invoiceID),
		"price_batch_id":     strconv.Itoa(priceBatchID),
		"invoice_product_id": strconv.Itoa(invoiceProductID),
		"product_qty":        strconv.Itoa(productQty),
	})
	return legacyFrom(body, err, "Failed to remove invoice item")
}

func (c *Client) UpdateInvoiceDiscount(ctx context.Context, invoiceID int, discount float64) Result {
	body, err := c.request(ctx, http.MethodPost, "update_invoice_discount.php", Params{
		"invoice_id":     strconv.Itoa(invoiceID),
		"discount_value": strconv.FormatFloat(discount, 'f', -1, 64),
	})
	return legacyFrom(body, err, "Failed to update invoice discount")
}

func (c *Client) UpdateInvoiceVat(ctx context.Context, invoiceID int, vat float64) Result {
	body, err := c.request(ctx, http.MethodPost, "update_invoice_vat.php", Params{
		"invoice_id": strconv.Itoa(invoiceID),
		"vat_value":  strconv.FormatFloat(vat, 'f', -1, 64),
	})
	return legacyFrom(body, err, "Failed to update invoice VAT")
}

func (c *Client) SaveInvoice(ctx context.Context, invoiceID int, receiptType string) Result {
	body, err := c.request(ctx, http.MethodPost, "saveinvoice", Params{
		"invoice_id":  strconv.Itoa(invoiceID),
		"recept_type": receiptType,
	})
	return legacyFrom(body, err, "Failed to save invoice")
}

func (c *Client) DeleteInvoice(ctx context.Context, invoiceID int) Result {
	body, err := c.request(ctx, http.MethodPost, "delete_invoice.php", Params{
		"invoice_id": strconv.Itoa(invoiceID),
	})
	return legacyFrom(body, err, "Failed to delete invoice")
}

// InvoiceList downloads every invoice. Rows arrive PascalCase under the
// legacy envelope.
func (c *Client) InvoiceList(ctx context.Context) ([]models.Invoice, error) {
	body, err := c.request(ctx, http.MethodPost, "download_invoice_list.php", Params{"I": "all"})
	if err != nil {
		return nil, err
	}
	if !cast.ToBool(body["result"]) {
		return nil, errors.New("Invalid response format")
	}
	items, ok := body["data"].([]any)
	if !ok {
		return nil, errors.New("Invalid response format")
	}
	invoices := make([]models.Invoice, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if inv, ok := mapInvoice(fields); ok {
			invoices = append(invoices, inv)
		}
	}
	return invoices, nil
}

func (c *Client) InvoiceDetails(ctx context.Context, invoiceID int) Result {
	body, err := c.request(ctx, http.MethodPost, "download_invoice_details.php", Params{
		"invoice_id": strconv.Itoa(invoiceID),
	})
	return legacyFrom(body, err, "Failed to load invoice details")
}

// ---- Reports ----

func (c *Client) TodayReport(ctx context.Context) Result {
	body, err := c.request(ctx, http.MethodPost, "download_today_report.php", Params{"r": "today"})
	return legacyFrom(body, err, "Failed to load today's report")
}

func (c *Client) RangeReport(ctx context.Context, startDate, endDate string) Result {
	body, err := c.request(ctx, http.MethodPost, "download_all_report.php", Params{
		"start_date": startDate,
		"end_date":   endDate,
	})
	return legacyFrom(body, err, "Failed to load report")
}

// ---- Profile ----

func (c *Client) UpdateAuthUser(ctx context.Context, name, email, role string) Result {
	body, err := c.request(ctx, http.MethodPost, "updateAuthUser", Params{
		"name":  name,
		"email": email,
		"role":  role,
	})
	return resultFrom(body, err, "Failed to update profile")
}

// UploadAvatar sends the image as a multipart part and returns the relative
// avatar URL the backend stored it under.
func (c *Client) UploadAvatar(ctx context.Context, filename string, contents []byte, userID int) (string, Result) {
	body, err := c.request(ctx, http.MethodPost, "users/upload-avatar", Params{
		"user_id": strconv.Itoa(userID),
	}, File{Field: "avatar", Name: filename, Contents: contents})

	res := resultFrom(body, err, "Avatar upload failed")
	if !res.Success {
		return "", res
	}
	data, ok := res.Data.(map[string]any)
	if !ok {
		return "", Result{Success: false, Message: "Avatar upload failed"}
	}
	avatarURL := cast.ToString(data["avatar_url"])
	if avatarURL == "" {
		return "", Result{Success: false, Message: "Avatar upload failed"}
	}
	return avatarURL, res
}
