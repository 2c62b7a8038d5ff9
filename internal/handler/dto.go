package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type addItemRequest struct {
	ProductID string   `json:"productId" binding:"required,uuid"`
	Quantity  quantity `json:"quantity" binding:"required,min=-2147483647,max=2147483647"`
}

// quantity is a JSON integer or a string holding one, the storefront client sends both.
type quantity int

func (q *quantity) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("quantity %s is not an integer", data)
	}

	*q = quantity(n)

	return nil
}

type removeItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
}

type productRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Currency    string           `json:"currency" binding:"required,iso4217"`
	Stock       int              `json:"stock" binding:"min=0,max=2147483647"`
}

func (r productRequest) toDomain(id uuid.UUID) (domain.Product, error) {
	unit, err := currency.ParseISO(r.Currency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: currency[%s] is not valid", domain.ErrInvalidRequest, r.Currency)
	}

	return domain.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Price:       domain.Money{Amount: *r.Price, Currency: unit},
		Stock:       r.Stock,
	}, nil
}

type productMessageResponse struct {
	Message string           `json:"message"`
	Product *productResponse `json:"product,omitempty"`
}

type moneyResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type cartLineResponse struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	UserID    string             `json:"userId"`
	Items     []cartLineResponse `json:"items"`
	Version   int64              `json:"version"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty"`
}

type productResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       moneyResponse `json:"price"`
	Stock       int           `json:"stock"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type cartViewLineResponse struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *productResponse `json:"product"`
	LineTotal moneyResponse    `json:"lineTotal"`
	Available int              `json:"available"`
}

type cartViewResponse struct {
	UserID string                 `json:"userId"`
	Items  []cartViewLineResponse `json:"items"`
	Total  moneyResponse          `json:"total"`
	Totals []moneyResponse        `json:"totals"`
}

type availabilityResponse struct {
	ProductID string `json:"productId"`
	Available int    `json:"available"`
}

func toMoneyResponse(m domain.Money) moneyResponse {
	return moneyResponse{
		Amount:   m.Amount,
		Currency: m.Currency.String(),
	}
}

func toCartResponse(cart domain.Cart) cartResponse {
	items := make([]cartLineResponse, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, cartLineResponse{
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
		})
	}

	resp := cartResponse{
		UserID:  cart.UserID,
		Items:   items,
		Version: cart.Version,
	}
	if !cart.UpdatedAt.IsZero() {
		updatedAt := cart.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       toMoneyResponse(p.Price),
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}

func toCartViewResponse(view domain.CartView) cartViewResponse {
	items := make([]cartViewLineResponse, 0, len(view.Lines))
	for _, line := range view.Lines {
		item := cartViewLineResponse{
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			LineTotal: toMoneyResponse(line.LineTotal),
			Available: line.Available,
		}
		if line.Product != nil {
			product := toProductResponse(*line.Product)
			item.Product = &product
		}
		items = append(items, item)
	}

	totals := make([]moneyResponse, 0, len(view.Totals))
	for _, total := range view.Totals {
		totals = append(totals, toMoneyResponse(total))
	}

	return cartViewResponse{
		UserID: view.UserID,
		Items:  items,
		Total:  toMoneyResponse(view.Total),
		Totals: totals,
	}
}
