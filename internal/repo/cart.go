package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kmalyshev/webshop/internal/domain"
	"github.com/kmalyshev/webshop/internal/models"
)

func (r *GormRepo) CreateCart(ctx context.Context) (*models.Cart, error) {
	cart := models.Cart{}
	if err := r.DB.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) GetCart(ctx context.Context, cartID uint) (*models.Cart, error) {
	cart := models.Cart{}
	if err := r.DB.WithContext(ctx).First(&cart, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) GetCartItems(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem merges quantity into an existing (cart, product) row or creates a
// new one, and decrements product stock, all in one transaction. The final
// guarded UPDATE re-checks stock so concurrent adds cannot oversell.
func (r *GormRepo) AddItem(ctx context.Context, cartID, productID, quantity uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Cart{}, cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCartNotFound
			}
			return err
		}

		var prod models.Product
		if err := tx.First(&prod, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}

		var item models.CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
		exists := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		needed := quantity
		if exists {
			needed += item.Quantity
		}
		if prod.Stock < needed {
			return domain.ErrInsufficientStock
		}

		if exists {
			if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity + ?", quantity)).Error; err != nil {
				return err
			}
		} else {
			item = models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", productID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInsufficientStock
		}

		return nil
	})
}

// RemoveItem deletes the cart item and restores the reserved stock to its
// product in one transaction.
func (r *GormRepo) RemoveItem(ctx context.Context, cartID, itemID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Cart{}, cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCartNotFound
			}
			return err
		}

		var item models.CartItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrItemNotFound
			}
			return err
		}
		if item.CartID != cartID {
			return domain.ErrItemNotFound
		}

		if err := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
			return err
		}

		return tx.Delete(&item).Error
	})
}
