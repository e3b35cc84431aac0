package handlers

import (
	"context"

	"go-pos-client/internal/export"
	"go-pos-client/internal/gateway"
	"go-pos-client/internal/listctl"
	"go-pos-client/internal/models"
	"go-pos-client/internal/schemas"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// The four managed collections share the Collection plumbing; only the
// gateway calls, the form shape and the export projection differ.

func customerParams(form schemas.CustomerForm) gateway.Params {
	return gateway.Params{
		"clientFirstName": form.ClientFirstName,
		"clientLastName":  form.ClientLastName,
		"email":           form.Email,
		"contactNumber":   form.ContactNumber,
		"address":         form.Address,
		"companyName":     form.CompanyName,
		"clientType":      form.ClientType,
		"nic":             form.NIC,
	}
}

func NewCustomersCollection(gw *gateway.Client) *Collection[models.Customer] {
	return &Collection[models.Customer]{
		Entity: "customers",
		Controller: listctl.New(listctl.Source[models.Customer]{
			List:   gw.ListCustomers,
			Search: gw.SearchCustomers,
		}),
		BindForm: func(c *gin.Context) (gateway.Params, error) {
			var form schemas.CustomerForm
			if err := c.ShouldBind(&form); err != nil {
				return nil, err
			}
			return customerParams(form), nil
		},
		Create: gw.CreateCustomer,
		Update: gw.UpdateCustomer,
		Delete: gw.DeleteCustomer,
		Export: func(ctx context.Context, format export.Format) ([]byte, error) {
			page := gw.ListCustomers(ctx, gateway.ListQuery{Paginate: false})
			return export.Encode(format, "Customers", export.CustomerRows(page.Data))
		},
	}
}

func productParams(form schemas.ProductForm) gateway.Params {
	params := gateway.Params{
		"productName":     form.ProductName,
		"productLocation": form.ProductLocation,
		"productDetails":  form.ProductDetails,
		"productType":     form.ProductType,
		"productCost":     form.ProductCost,
		"productSelling":  form.ProductSelling,
		"productQty":      form.ProductQty,
	}
	if form.BrandID > 0 {
		params["brandId"] = cast.ToString(form.BrandID)
	}
	if form.CategoryID > 0 {
		params["categoryId"] = cast.ToString(form.CategoryID)
	}
	return params
}

func NewProductsCollection(gw *gateway.Client) *Collection[models.Product] {
	return &Collection[models.Product]{
		Entity: "products",
		Controller: listctl.New(listctl.Source[models.Product]{
			List:   gw.ListProducts,
			Search: gw.SearchProductsWithGRN,
		}),
		BindForm: func(c *gin.Context) (gateway.Params, error) {
			var form schemas.ProductForm
			if err := c.ShouldBind(&form); err != nil {
				return nil, err
			}
			return productParams(form), nil
		},
		Create: gw.CreateProduct,
		Update: gw.UpdateProduct,
		Delete: gw.DeleteProduct,
		Export: func(ctx context.Context, format export.Format) ([]byte, error) {
			page := gw.ListProducts(ctx, gateway.ListQuery{Paginate: false})
			return export.Encode(format, "Products", export.ProductRows(page.Data))
		},
	}
}

func NewBrandsCollection(gw *gateway.Client) *Collection[models.ProductBrand] {
	return &Collection[models.ProductBrand]{
		Entity: "brands",
		Controller: listctl.New(listctl.Source[models.ProductBrand]{
			List:   gw.ListBrands,
			Search: gw.SearchBrands,
		}),
		BindForm: func(c *gin.Context) (gateway.Params, error) {
			var form schemas.BrandForm
			if err := c.ShouldBind(&form); err != nil {
				return nil, err
			}
			return gateway.Params{"productBrandName": form.ProductBrandName}, nil
		},
		Create: gw.CreateBrand,
		Update: gw.UpdateBrand,
		Delete: gw.DeleteBrand,
		Export: func(ctx context.Context, format export.Format) ([]byte, error) {
			page := gw.ListBrands(ctx, gateway.ListQuery{Paginate: false})
			return export.Encode(format, "Brands", export.BrandRows(page.Data))
		},
	}
}

func NewCategoriesCollection(gw *gateway.Client) *Collection[models.ProductCategory] {
	return &Collection[models.ProductCategory]{
		Entity: "categories",
		Controller: listctl.New(listctl.Source[models.ProductCategory]{
			List:   gw.ListCategories,
			Search: gw.SearchCategories,
		}),
		BindForm: func(c *gin.Context) (gateway.Params, error) {
			var form schemas.CategoryForm
			if err := c.ShouldBind(&form); err != nil {
				return nil, err
			}
			return gateway.Params{"productCategoryName": form.ProductCategoryName}, nil
		},
		Create: gw.CreateCategory,
		Update: gw.UpdateCategory,
		Delete: gw.DeleteCategory,
		Export: func(ctx context.Context, format export.Format) ([]byte, error) {
			page := gw.ListCategories(ctx, gateway.ListQuery{Paginate: false})
			return export.Encode(format, "Categories", export.CategoryRows(page.Data))
		},
	}
}
