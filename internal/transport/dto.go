package transport

import (
	"time"

	"github.com/kmalyshev/webshop/internal/models"
)

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
	Stock       uint    `json:"stock"`
}

// Pointer fields distinguish "not supplied" from a supplied zero value.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Stock       *uint    `json:"stock"`
}

type AddItemRequest struct {
	ProductID uint  `json:"product_id"`
	Quantity  *uint `json:"quantity"`
}

type CartItemResponse struct {
	ID        uint           `json:"id"`
	ProductID uint           `json:"product_id"`
	Quantity  uint           `json:"quantity"`
	Product   models.Product `json:"product"`
	CreatedAt time.Time      `json:"created_at"`
}

type CartResponse struct {
	ID        uint               `json:"id"`
	Items     []CartItemResponse `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}

type SearchResponse struct {
	Total    int64            `json:"total"`
	Products []models.Product `json:"products"`
}
