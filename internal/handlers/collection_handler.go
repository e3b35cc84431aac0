package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go-pos-client/internal/export"
	"go-pos-client/internal/gateway"
	"go-pos-client/internal/listctl"

	"github.com/gin-gonic/gin"
)

// Collection wires one entity's list page: the shared list/search/paginate
// controller plus the entity-specific create, update, delete and export
// hooks. Every management page (customers, products, brands, categories)
// registers through the same route shape.
type Collection[T any] struct {
	Entity     string
	Controller *listctl.Controller[T]

	BindForm func(*gin.Context) (gateway.Params, error)
	Create   func(context.Context, gateway.Params) gateway.Result
	Update   func(context.Context, int, gateway.Params) gateway.Result
	Delete   func(context.Context, int) gateway.Result
	Export   func(context.Context, export.Format) ([]byte, error)
}

// Register mounts the collection routes on the group.
func (col *Collection[T]) Register(rg *gin.RouterGroup) {
	rg.GET("", col.view)
	rg.POST("/reload", col.reload)
	rg.POST("/page", col.setPage)
	rg.POST("/page-size", col.setPageSize)
	rg.POST("/sort", col.setSort)
	rg.POST("/search", col.search)
	if col.Create != nil {
		rg.POST("", col.create)
	}
	if col.Update != nil {
		rg.PUT("/:id", col.update)
	}
	if col.Delete != nil {
		rg.DELETE("/:id", col.remove)
	}
	if col.Export != nil {
		rg.GET("/export", col.download)
	}
}

func (col *Collection[T]) view(c *gin.Context) {
	c.JSON(http.StatusOK, col.Controller.View())
}

func (col *Collection[T]) reload(c *gin.Context) {
	c.JSON(http.StatusOK, col.Controller.Load(c.Request.Context()))
}

type pageRequest struct {
	Page int `json:"page" binding:"required,min=1"`
}

func (col *Collection[T]) setPage(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
		return
	}
	c.JSON(http.StatusOK, col.Controller.SetPage(c.Request.Context(), req.Page))
}

type pageSizeRequest struct {
	PerPage int `json:"perPage" binding:"required,min=1"`
	Page    int `json:"page"`
}

func (col *Collection[T]) setPageSize(c *gin.Context) {
	var req pageSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page size"})
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	c.JSON(http.StatusOK, col.Controller.SetPerPage(c.Request.Context(), req.PerPage, req.Page))
}

type sortRequest struct {
	SortBy    string `json:"sortBy" binding:"required"`
	SortOrder string `json:"sortOrder" binding:"required,oneof=asc desc"`
}

func (col *Collection[T]) setSort(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort"})
		return
	}
	c.JSON(http.StatusOK, col.Controller.SetSort(c.Request.Context(), req.SortBy, req.SortOrder))
}

type searchRequest struct {
	Term string `json:"term"`
}

func (col *Collection[T]) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search"})
		return
	}
	c.JSON(http.StatusOK, col.Controller.SetTerm(c.Request.Context(), req.Term))
}

func (col *Collection[T]) create(c *gin.Context) {
	form, err := col.BindForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	res := col.Controller.Mutate(c.Request.Context(), func(ctx context.Context) gateway.Result {
		return col.Create(ctx, form)
	})
	if !res.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to create "+col.Entity)})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (col *Collection[T]) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	form, err := col.BindForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	res := col.Controller.Mutate(c.Request.Context(), func(ctx context.Context) gateway.Result {
		return col.Update(ctx, id, form)
	})
	if !res.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to update "+col.Entity)})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (col *Collection[T]) remove(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	res := col.Controller.Mutate(c.Request.Context(), func(ctx context.Context) gateway.Result {
		return col.Delete(ctx, id)
	})
	if !res.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to delete "+col.Entity)})
		return
	}
	c.JSON(http.StatusOK, res)
}

// download streams the full unpaginated collection as a CSV or XLSX file.
func (col *Collection[T]) download(c *gin.Context) {
	format := export.Format(c.DefaultQuery("format", "csv"))
	if format != export.FormatCSV && format != export.FormatXLSX {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported export format"})
		return
	}

	data, err := col.Export(c.Request.Context(), format)
	if err != nil {
		if errors.Is(err, export.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No data to export"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
		return
	}

	filename := export.Filename(col.Entity, format)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, format.ContentType(), data)
}
