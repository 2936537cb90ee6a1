package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aavkar_pos/internal/catalog"
	"aavkar_pos/internal/models"
)

// GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	page, err := h.catalog.ListCategories(c.Request.Context(),
		queryInt(c, "page", 1),
		queryInt(c, "limit", catalog.POSCategoryLimit),
		c.Query("search"),
	)
	if err != nil {
		h.fail(c, err, "could not load categories")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/products
//
// With a category (or pos=true) the POS grid is served: the whole catalog
// filtered by category tab and search box. Otherwise the request is the
// paginated admin listing.
func (h *Handler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")
	if category != "" || c.Query("pos") == "true" {
		if category == "all" {
			category = ""
		}
		products, err := h.catalog.POSProducts(ctx, category, strings.TrimSpace(c.Query("search")))
		if err != nil {
			h.fail(c, err, "could not load products")
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": products, "total": len(products)})
		return
	}

	page, err := h.catalog.List(ctx, catalog.ListParams{
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 10),
		Search:    c.Query("search"),
		IsPremium: queryBool(c, "isPremium"),
		IsPopular: queryBool(c, "isPopular"),
	})
	if err != nil {
		h.fail(c, err, "could not load products")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	p, ok := h.product(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// POST /api/admin/products
func (h *Handler) CreateProduct(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		p   models.Product
		err error
	)
	if isMultipart(c) {
		form, ferr := c.MultipartForm()
		if ferr != nil {
			badRequest(c, "invalid form data")
			return
		}
		p, err = h.catalog.CreateMultipart(ctx, form)
	} else {
		var in models.ProductInput
		if berr := c.ShouldBindJSON(&in); berr != nil {
			badRequest(c, "category and name are required")
			return
		}
		p, err = h.catalog.Create(ctx, in)
	}
	if err != nil {
		h.fail(c, err, "could not create product")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": p})
}

// PUT /api/admin/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	var (
		p   models.Product
		err error
	)
	if isMultipart(c) {
		form, ferr := c.MultipartForm()
		if ferr != nil {
			badRequest(c, "invalid form data")
			return
		}
		p, err = h.catalog.UpdateMultipart(ctx, id, form)
	} else {
		var in models.ProductInput
		if berr := c.ShouldBindJSON(&in); berr != nil {
			badRequest(c, "category and name are required")
			return
		}
		p, err = h.catalog.Update(ctx, id, in)
	}
	if err != nil {
		h.fail(c, err, "could not update product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": p})
}

// DELETE /api/admin/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "could not delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
