package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type ProductHandler struct {
	service CatalogService
}

func NewProductHandler(service CatalogService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		abortWithError(c, "Error fetching products", err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseProductID(c.Param("id"))
	if err != nil {
		abortWithError(c, "Invalid product id", err)
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, "Error fetching product", err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, "Name, price, and currency are required", err)
		return
	}

	product, err := req.toDomain(uuid.Nil)
	if err != nil {
		abortWithError(c, "Error creating product", err)
		return
	}

	created, err := h.service.CreateProduct(c.Request.Context(), product)
	if err != nil {
		abortWithError(c, "Error creating product", err)
		return
	}

	resp := toProductResponse(created)
	c.JSON(http.StatusCreated, productMessageResponse{Message: "Product created successfully", Product: &resp})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseProductID(c.Param("id"))
	if err != nil {
		abortWithError(c, "Invalid product id", err)
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, "Name, price, and currency are required", err)
		return
	}

	product, err := req.toDomain(id)
	if err != nil {
		abortWithError(c, "Error updating product", err)
		return
	}

	updated, err := h.service.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		abortWithError(c, "Error updating product", err)
		return
	}

	resp := toProductResponse(updated)
	c.JSON(http.StatusOK, productMessageResponse{Message: "Product updated successfully", Product: &resp})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseProductID(c.Param("id"))
	if err != nil {
		abortWithError(c, "Invalid product id", err)
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		abortWithError(c, "Error deleting product", err)
		return
	}

	c.JSON(http.StatusOK, productMessageResponse{Message: "Product deleted successfully"})
}
