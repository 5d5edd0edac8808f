package domain

import "errors"

var (
	ErrValidation        = errors.New("validation")
	ErrProductNotFound   = errors.New("product not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrItemNotFound      = errors.New("cart item not found")
	ErrNameTaken         = errors.New("product name already exists")
	ErrInsufficientStock = errors.New("not enough stock")
)
