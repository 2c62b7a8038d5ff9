package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/storefront-cart/internal/domain"
)

type errorResponse struct {
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string       `json:"message"`
	Cart    cartResponse `json:"cart"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrConcurrentModification),
		errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes err under message. Internal failures do not leak their cause.
func abortWithError(c *gin.Context, message string, err error) {
	status := statusFor(err)

	resp := errorResponse{Message: message}
	if status == http.StatusInternalServerError {
		resp.Error = http.StatusText(status)
	} else {
		resp.Error = err.Error()
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

func abortWithBindError(c *gin.Context, message string, err error) {
	resp := errorResponse{Message: message, Error: "malformed request body"}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		resp.Error = "validation failed"
		resp.Fields = make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			resp.Fields[fe.Field()] = fe.Tag()
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}
