package models

import (
	"time"
)

// Product.Name carries a unique index: two products may never share a name.
type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null"     json:"name"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Description *string   `json:"description"`
	Stock       uint      `gorm:"not null;default:0"       json:"stock"`
	CreatedAt   time.Time `json:"-"`
}

type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Items     []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
}

// At most one row per (cart_id, product_id); repeated adds merge quantity.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"              json:"id"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  uint      `gorm:"not null;check:quantity>0"             json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
