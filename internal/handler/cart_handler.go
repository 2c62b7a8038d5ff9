package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
)

type CartService interface {
	AddItem(ctx context.Context, userID string, productID uuid.UUID, delta int) (domain.Cart, error)
	RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (domain.Cart, error)
	View(ctx context.Context, userID string) (domain.CartView, error)
	Availability(ctx context.Context, userID string, productID uuid.UUID) (int, error)
}

type CartHandler struct {
	service CartService
}

func NewCartHandler(service CartService) *CartHandler {
	return &CartHandler{service: service}
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, "productId and non-zero quantity required", err)
		return
	}

	productID, err := parseProductID(req.ProductID)
	if err != nil {
		abortWithError(c, "productId and non-zero quantity required", err)
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), c.GetString(ctxUserID), productID, int(req.Quantity))
	if err != nil {
		abortWithError(c, "Error adding item to cart", err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Cart updated", Cart: toCartResponse(cart)})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req removeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, "productId required", err)
		return
	}

	productID, err := parseProductID(req.ProductID)
	if err != nil {
		abortWithError(c, "productId required", err)
		return
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), c.GetString(ctxUserID), productID)
	if err != nil {
		abortWithError(c, "Error removing item from cart", err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Item removed from cart", Cart: toCartResponse(cart)})
}

func (h *CartHandler) View(c *gin.Context) {
	view, err := h.service.View(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		abortWithError(c, "Error retrieving cart", err)
		return
	}

	c.JSON(http.StatusOK, toCartViewResponse(view))
}

func (h *CartHandler) Availability(c *gin.Context) {
	productID, err := parseProductID(c.Param("productId"))
	if err != nil {
		abortWithError(c, "Invalid product id", err)
		return
	}

	available, err := h.service.Availability(c.Request.Context(), c.GetString(ctxUserID), productID)
	if err != nil {
		abortWithError(c, "Error checking availability", err)
		return
	}

	c.JSON(http.StatusOK, availabilityResponse{ProductID: productID.String(), Available: available})
}

func parseProductID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: productId[%s] is not a valid uuid", domain.ErrInvalidRequest, raw)
	}

	return id, nil
}
